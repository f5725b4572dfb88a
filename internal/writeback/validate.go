package writeback

import (
	"context"
	"fmt"

	"github.com/agentic-research/a11yname/internal/markup"
)

// ValidationError contains structured information about a syntax error.
type ValidationError struct {
	FilePath string
	Line     uint32 // 0-indexed
	Column   uint32 // 0-indexed
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line+1, e.Column+1, e.Message)
}

// Validate parses after and returns a *ValidationError when it has more
// syntax errors than before. Files Parse does not understand pass through.
func Validate(ctx context.Context, path string, before, after []byte) error {
	if !markup.Supported(path) {
		return nil
	}
	next, err := markup.Parse(ctx, after, path)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if len(next.SyntaxErrors) == 0 {
		return nil
	}

	var had int
	if before != nil {
		prev, err := markup.Parse(ctx, before, path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		had = len(prev.SyntaxErrors)
	}
	if len(next.SyntaxErrors) <= had {
		return nil
	}

	first := next.SyntaxErrors[0]
	return &ValidationError{
		FilePath: path,
		Line:     first.Line,
		Column:   first.Column,
		Message:  first.Message,
	}
}
