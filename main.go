package main

import "github.com/agentic-research/a11yname/cmd"

func main() {
	cmd.Execute()
}
