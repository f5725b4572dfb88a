// Package writeback applies suggested fixes to source files.
package writeback

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Edit replaces the source bytes [Start, End) with Text.
type Edit struct {
	Start uint32
	End   uint32
	Text  string
}

// ErrOverlappingEdits is returned when two distinct edits touch the same bytes.
var ErrOverlappingEdits = errors.New("overlapping edits")

// Splice returns src with every edit applied. Identical edits collapse into
// one; src is not modified.
func Splice(src []byte, edits []Edit) ([]byte, error) {
	sorted, err := normalize(len(src), edits)
	if err != nil {
		return nil, err
	}

	size := len(src)
	for _, e := range sorted {
		size += len(e.Text) - int(e.End-e.Start)
	}
	result := make([]byte, 0, size)
	var pos uint32
	for _, e := range sorted {
		result = append(result, src[pos:e.Start]...)
		result = append(result, e.Text...)
		pos = e.End
	}
	return append(result, src[pos:]...), nil
}

// normalize sorts a copy of edits, drops exact duplicates and checks the
// ranges against a source of length n.
func normalize(n int, edits []Edit) ([]Edit, error) {
	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b Edit) int {
		if a.Start != b.Start {
			return int(a.Start) - int(b.Start)
		}
		return int(a.End) - int(b.End)
	})
	sorted = slices.Compact(sorted)

	for i, e := range sorted {
		if int(e.End) > n || e.Start > e.End {
			return nil, fmt.Errorf("invalid byte range [%d:%d] for file of length %d", e.Start, e.End, n)
		}
		if i > 0 && e.Start < sorted[i-1].End {
			return nil, fmt.Errorf("%w: [%d:%d] and [%d:%d]", ErrOverlappingEdits,
				sorted[i-1].Start, sorted[i-1].End, e.Start, e.End)
		}
	}
	return sorted, nil
}

// ApplyEdits splices edits into path on fsys. The result must not add
// syntax errors to the file. The write is atomic: content goes to a temp
// file first, then is renamed over path.
func ApplyEdits(ctx context.Context, fsys billy.Filesystem, path string, edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}
	src, err := util.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("read source %s: %w", path, err)
	}

	result, err := Splice(src, edits)
	if err != nil {
		return fmt.Errorf("splice %s: %w", path, err)
	}
	if err := Validate(ctx, path, src, result); err != nil {
		return err
	}

	tmp, err := fsys.TempFile(filepath.Dir(path), ".a11yname-splice-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(result); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("close temp: %w", err)
	}

	// Preserve original file permissions
	if ch, ok := fsys.(billy.Change); ok {
		if info, err := fsys.Stat(path); err == nil {
			_ = ch.Chmod(tmpName, info.Mode()) // best-effort permission sync
		}
	}

	if err := fsys.Rename(tmpName, path); err != nil {
		_ = fsys.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("rename temp to %s: %w", path, err)
	}
	return nil
}
