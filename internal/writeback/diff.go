package writeback

import (
	"bytes"

	"github.com/sourcegraph/go-diff/diff"
)

// Diff renders edits to src as a unified diff without context lines. Edits
// on the same lines share a hunk.
func Diff(path string, src []byte, edits []Edit) (*diff.FileDiff, error) {
	sorted, err := normalize(len(src), edits)
	if err != nil {
		return nil, err
	}

	fd := &diff.FileDiff{OrigName: "a/" + path, NewName: "b/" + path}
	var shift int32 // lines added so far
	for i := 0; i < len(sorted); {
		start, end := lineBounds(src, sorted[i])
		j := i + 1
		for ; j < len(sorted); j++ {
			s, e := lineBounds(src, sorted[j])
			if s >= end {
				break
			}
			end = max(end, e)
		}

		rel := make([]Edit, 0, j-i)
		for _, e := range sorted[i:j] {
			rel = append(rel, Edit{Start: e.Start - start, End: e.End - start, Text: e.Text})
		}
		orig := src[start:end]
		repl, err := Splice(orig, rel)
		if err != nil {
			return nil, err
		}

		h := &diff.Hunk{
			OrigStartLine: int32(bytes.Count(src[:start], []byte("\n"))) + 1,
			OrigLines:     lineCount(orig),
			NewLines:      lineCount(repl),
		}
		h.NewStartLine = h.OrigStartLine + shift
		shift += h.NewLines - h.OrigLines

		var body bytes.Buffer
		writeLines(&body, '-', orig)
		writeLines(&body, '+', repl)
		h.Body = body.Bytes()
		fd.Hunks = append(fd.Hunks, h)
		i = j
	}
	return fd, nil
}

// PrintDiffs renders file diffs in unified format.
func PrintDiffs(fds []*diff.FileDiff) ([]byte, error) {
	return diff.PrintMultiFileDiff(fds)
}

// lineBounds widens e to the whole lines it touches, newline included.
func lineBounds(src []byte, e Edit) (uint32, uint32) {
	start := uint32(bytes.LastIndexByte(src[:e.Start], '\n') + 1)
	end := uint32(len(src))
	if i := bytes.IndexByte(src[e.End:], '\n'); i >= 0 {
		end = e.End + uint32(i) + 1
	}
	return start, end
}

func lineCount(b []byte) int32 {
	if len(b) == 0 {
		return 0
	}
	n := int32(bytes.Count(b, []byte("\n")))
	if b[len(b)-1] != '\n' {
		n++
	}
	return n
}

func writeLines(buf *bytes.Buffer, prefix byte, b []byte) {
	for line := range bytes.Lines(b) {
		buf.WriteByte(prefix)
		buf.Write(line)
		if line[len(line)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
}
