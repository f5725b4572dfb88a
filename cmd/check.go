package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentic-research/a11yname/internal/ctxlog"
	"github.com/agentic-research/a11yname/internal/linter"
	"github.com/agentic-research/a11yname/internal/report"
	"github.com/agentic-research/a11yname/internal/store"
	"github.com/agentic-research/a11yname/internal/writeback"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// ErrProblems is returned by check when diagnostics were reported.
var ErrProblems = errors.New("accessibility problems found")

type checkOptions struct {
	format  string
	query   string
	dbPath  string
	color   string
	workers int
	fix     bool
	diff    bool
	watch   bool
}

var checkOpts checkOptions

func init() {
	f := checkCmd.Flags()
	f.StringVar(&checkOpts.format, "format", "text", "Output format: text or json")
	f.StringVar(&checkOpts.query, "query", "", "JSONPath filter over diagnostics (json format), e.g. $[?(@.rule == 'image-needs-alt')]")
	f.StringVar(&checkOpts.dbPath, "db", "", "Append the run to this SQLite database")
	f.StringVar(&checkOpts.color, "color", "auto", "Color text output: auto, always or never")
	f.IntVar(&checkOpts.workers, "workers", 0, "Files linted in parallel (default: settings.workers or CPU count)")
	f.BoolVar(&checkOpts.fix, "fix", false, "Apply suggested fixes in place")
	f.BoolVar(&checkOpts.diff, "diff", false, "Print suggested fixes as a unified diff")
	f.BoolVar(&checkOpts.watch, "watch", false, "Re-check files as they change until interrupted")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check JSX/TSX files for elements without an accessible name",
	RunE: func(cmd *cobra.Command, args []string) error {
		if checkOpts.format != "text" && checkOpts.format != "json" {
			return fmt.Errorf("unknown format %q", checkOpts.format)
		}
		if checkOpts.query != "" && checkOpts.format != "json" {
			return errors.New("--query requires --format json")
		}
		if len(args) == 0 {
			args = []string{"."}
		}

		root, err := os.Getwd()
		if err != nil {
			return err
		}
		paths, err := relativePaths(root, args)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cmd, root)
		if err != nil {
			return err
		}
		if checkOpts.workers > 0 {
			cat.Settings.Workers = checkOpts.workers
		}

		runner := linter.NewRunner(osfs.New(root), cat)
		out := cmd.OutOrStdout()
		res, err := check(cmd.Context(), runner, paths, out, checkOpts)
		if err != nil {
			return err
		}

		if checkOpts.watch {
			w := &linter.Watcher{Runner: runner, Root: root}
			return w.Watch(cmd.Context(), paths, func(res *linter.Result) {
				if err := render(out, res, checkOpts); err != nil {
					ctxlog.FromContext(cmd.Context()).Error("Render failed.", "error", err)
				}
			})
		}
		if len(res.Diagnostics) > 0 {
			return fmt.Errorf("%w: %s", ErrProblems, report.Summary(res))
		}
		return nil
	},
}

// check runs one pass: lint, optionally preview or apply fixes, render and
// record the run.
func check(ctx context.Context, runner *linter.Runner, paths []string, out io.Writer, opts checkOptions) (*linter.Result, error) {
	logger := ctxlog.FromContext(ctx)
	started := time.Now()

	res, err := runner.Run(ctx, paths)
	if err != nil {
		return nil, err
	}

	if opts.diff {
		fds, err := runner.Diff(ctx, res)
		if err != nil {
			return nil, err
		}
		if len(fds) > 0 {
			patch, err := writeback.PrintDiffs(fds)
			if err != nil {
				return nil, err
			}
			if _, err := out.Write(patch); err != nil {
				return nil, err
			}
		}
	}

	if opts.fix {
		changed, err := runner.Fix(ctx, res)
		if err != nil {
			return nil, err
		}
		if len(changed) > 0 {
			logger.Info("Re-checking fixed files.", "files", len(changed))
			if res, err = runner.Run(ctx, paths); err != nil {
				return nil, err
			}
		}
	}

	if err := render(out, res, opts); err != nil {
		return nil, err
	}

	if opts.dbPath != "" {
		id, err := store.Record(opts.dbPath, res, started, time.Now())
		if err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
		logger.Info("Recorded run.", "id", id, "db", opts.dbPath)
	}
	return res, nil
}

func render(w io.Writer, res *linter.Result, opts checkOptions) error {
	if opts.format == "json" {
		return report.JSON(w, res, opts.query)
	}
	return report.Text(w, res, report.TextOptions{Color: useColor(w, opts.color)})
}

func useColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// relativePaths maps args onto paths relative to root, the directory the
// runner's filesystem is rooted at.
func relativePaths(root string, args []string) ([]string, error) {
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		p := arg
		if filepath.IsAbs(p) {
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return nil, err
			}
			p = rel
		}
		p = filepath.Clean(p)
		if p == ".." || strings.HasPrefix(p, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("path %s is outside the working directory", arg)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
