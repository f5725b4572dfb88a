package linter

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/agentic-research/a11yname/internal/catalog"
	"github.com/agentic-research/a11yname/internal/ctxlog"
	"github.com/agentic-research/a11yname/internal/markup"
	"github.com/agentic-research/a11yname/internal/writeback"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/sourcegraph/go-diff/diff"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one run.
type Result struct {
	Files       []string
	Diagnostics []Diagnostic
}

// Fixable returns the diagnostics that carry a fix.
func (r *Result) Fixable() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Fix != nil {
			out = append(out, d)
		}
	}
	return out
}

// Runner lints files read from FS.
type Runner struct {
	FS      billy.Filesystem
	Catalog *catalog.Catalog
}

// NewRunner returns a Runner over fsys. A nil catalog means catalog.Default().
func NewRunner(fsys billy.Filesystem, c *catalog.Catalog) *Runner {
	if c == nil {
		c = catalog.Default()
	}
	return &Runner{FS: fsys, Catalog: c}
}

// Run lints every matching file under paths. Directories are walked;
// excluded directory names are skipped.
func (r *Runner) Run(ctx context.Context, paths []string) (*Result, error) {
	files, err := r.Discover(paths)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, files)
}

// RunFiles lints exactly the given files in parallel. Files that vanished
// since they were listed are skipped.
func (r *Runner) RunFiles(ctx context.Context, files []string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Linting files.", "count", len(files), "workers", r.Catalog.Settings.Workers)

	perFile := make([][]Diagnostic, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, r.Catalog.Settings.Workers))
	for i, path := range files {
		g.Go(func() error {
			diags, err := r.lintFile(gctx, path)
			if err != nil {
				return err
			}
			perFile[i] = diags
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Files: files}
	for _, diags := range perFile {
		res.Diagnostics = append(res.Diagnostics, diags...)
	}
	sortDiagnostics(res.Diagnostics)
	logger.Info("Check complete.", "files", len(res.Files), "problems", len(res.Diagnostics))
	return res, nil
}

func (r *Runner) lintFile(ctx context.Context, path string) ([]Diagnostic, error) {
	logger := ctxlog.FromContext(ctx)
	src, err := util.ReadFile(r.FS, path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("File vanished before linting.", "file", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	file, err := markup.Parse(ctx, src, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(file.SyntaxErrors) > 0 {
		logger.Warn("File has syntax errors.", "file", path, "errors", len(file.SyntaxErrors))
	}

	diags := Lint(ctx, file, r.Catalog.Rules, Options{CheckDuplicateIDs: r.Catalog.Settings.CheckDuplicateIDs})
	logger.Debug("Linted file.", "file", path, "elements", len(file.Elements()), "problems", len(diags))
	return diags, ctx.Err()
}

// Discover expands paths into the sorted list of files to lint. Files named
// explicitly only need a supported extension; files found while walking
// must also match the configured extensions.
func (r *Runner) Discover(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, root := range paths {
		root = filepath.Clean(root)
		info, err := r.FS.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", root, err)
		}
		if !info.IsDir() {
			if markup.Supported(root) {
				seen[root] = struct{}{}
			}
			continue
		}

		err = util.Walk(r.FS, root, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if p != root && r.excluded(info.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if r.matches(p) {
				seen[p] = struct{}{}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return slices.Sorted(maps.Keys(seen)), nil
}

// Wants reports whether a file found at path should be linted: it matches
// the configured extensions and no directory on the way is excluded.
func (r *Runner) Wants(path string) bool {
	for dir := filepath.Dir(path); dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		if r.excluded(filepath.Base(dir)) {
			return false
		}
	}
	return r.matches(path)
}

func (r *Runner) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(r.Catalog.Settings.Extensions, ext) && markup.Supported(path)
}

func (r *Runner) excluded(name string) bool {
	return slices.Contains(r.Catalog.Settings.Exclude, name)
}

// Fix applies every suggested fix in res and returns the changed files.
func (r *Runner) Fix(ctx context.Context, res *Result) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	edits := groupEdits(res)
	var changed []string
	for _, path := range slices.Sorted(maps.Keys(edits)) {
		if err := writeback.ApplyEdits(ctx, r.FS, path, edits[path]); err != nil {
			return changed, fmt.Errorf("fix %s: %w", path, err)
		}
		logger.Info("Applied fixes.", "file", path, "edits", len(edits[path]))
		changed = append(changed, path)
	}
	return changed, nil
}

// Diff renders the fixes in res as unified diffs without writing them.
func (r *Runner) Diff(ctx context.Context, res *Result) ([]*diff.FileDiff, error) {
	edits := groupEdits(res)
	var fds []*diff.FileDiff
	for _, path := range slices.Sorted(maps.Keys(edits)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := util.ReadFile(r.FS, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		fd, err := writeback.Diff(path, src, edits[path])
		if err != nil {
			return nil, fmt.Errorf("diff %s: %w", path, err)
		}
		fds = append(fds, fd)
	}
	return fds, nil
}

func groupEdits(res *Result) map[string][]writeback.Edit {
	edits := make(map[string][]writeback.Edit)
	for _, d := range res.Fixable() {
		f := d.Fix
		edits[f.File] = append(edits[f.File], writeback.Edit{Start: f.Start, End: f.End, Text: f.Text})
	}
	return edits
}
