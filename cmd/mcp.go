package cmd

import (
	"context"
	"os"

	"github.com/agentic-research/a11yname/internal/catalog"
	"github.com/agentic-research/a11yname/internal/linter"
	"github.com/agentic-research/a11yname/internal/report"
	"github.com/agentic-research/a11yname/internal/writeback"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(mcpCmd)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the checks as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cmd, dir)
		if err != nil {
			return err
		}
		return server.ServeStdio(newMCPServer(cat))
	},
}

const defaultSnippetName = "snippet.tsx"

type mcpTools struct {
	cat *catalog.Catalog
}

func newMCPServer(cat *catalog.Catalog) *server.MCPServer {
	s := server.NewMCPServer("a11yname", version, server.WithToolCapabilities(false))
	t := &mcpTools{cat: cat}

	source := mcp.WithString("source", mcp.Required(), mcp.Description("JSX or TSX source text"))
	filename := mcp.WithString("filename", mcp.Description("File name; its extension picks the grammar (default "+defaultSnippetName+")"))

	s.AddTool(mcp.NewTool("check_source",
		mcp.WithDescription("Report elements without an accessible name in a JSX/TSX source text. Returns a JSON document."),
		source, filename,
	), t.checkSource)
	s.AddTool(mcp.NewTool("fix_source",
		mcp.WithDescription("Apply the suggested accessible-name fixes to a JSX/TSX source text and return the result."),
		source, filename,
	), t.fixSource)
	s.AddTool(mcp.NewTool("list_rules",
		mcp.WithDescription("List the active rules as JSON."),
	), t.listRules)
	return s
}

func (t *mcpTools) lint(ctx context.Context, req mcp.CallToolRequest) (*linter.Result, []byte, string, error) {
	src, err := req.RequireString("source")
	if err != nil {
		return nil, nil, "", err
	}
	name := req.GetString("filename", defaultSnippetName)
	diags, err := linter.LintSource(ctx, []byte(src), name, t.cat.Rules,
		linter.Options{CheckDuplicateIDs: t.cat.Settings.CheckDuplicateIDs})
	if err != nil {
		return nil, nil, "", err
	}
	return &linter.Result{Files: []string{name}, Diagnostics: diags}, []byte(src), name, nil
}

func (t *mcpTools) checkSource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, _, _, err := t.lint(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(oj.JSON(report.Document(res), &oj.Options{Indent: 2, Sort: true})), nil
}

func (t *mcpTools) fixSource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, src, name, err := t.lint(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var edits []writeback.Edit
	for _, d := range res.Fixable() {
		edits = append(edits, writeback.Edit{Start: d.Fix.Start, End: d.Fix.End, Text: d.Fix.Text})
	}
	fixed, err := writeback.Splice(src, edits)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := writeback.Validate(ctx, name, src, fixed); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(fixed)), nil
}

func (t *mcpTools) listRules(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(oj.JSON(ruleRecords(t.cat), &oj.Options{Indent: 2, Sort: true})), nil
}
