// Package linter turns rule verdicts into diagnostics, one file at a time,
// and runs that over a tree of files.
package linter

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/agentic-research/a11yname/internal/accname"
	"github.com/agentic-research/a11yname/internal/catalog"
	"github.com/agentic-research/a11yname/internal/markup"
)

// Checks reported outside the rule catalog.
const (
	RuleSyntaxError = "syntax-error"
	RuleDuplicateID = "duplicate-id"
)

// Diagnostic is a single problem found in a file.
type Diagnostic struct {
	File      string
	Rule      string
	MessageID string
	Message   string
	Line      uint32 // 0-indexed
	Column    uint32 // 0-indexed
	StartByte uint32
	EndByte   uint32
	Fix       *accname.Fix
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s (%s)", d.File, d.Line+1, d.Column+1, d.Message, d.Rule)
}

// Options tunes Lint.
type Options struct {
	CheckDuplicateIDs bool
}

// Lint evaluates rules against every element of file. Diagnostics are
// ordered by position. Lint stops early, returning what it has, when ctx is
// cancelled.
func Lint(ctx context.Context, file *markup.File, rules []catalog.Rule, opts Options) []Diagnostic {
	var diags []Diagnostic
	for _, se := range file.SyntaxErrors {
		diags = append(diags, Diagnostic{
			File:      file.Path,
			Rule:      RuleSyntaxError,
			MessageID: "syntaxError",
			Message:   "Parse: " + se.Message + "; results for this file may be incomplete.",
			Line:      se.Line,
			Column:    se.Column,
		})
	}

	byTag := make(map[string][]catalog.Rule, len(rules))
	for _, r := range rules {
		byTag[r.Policy.Component] = append(byTag[r.Policy.Component], r)
	}

	actx := accname.NewContext(file)
	accname.WalkWith(actx, func(el *markup.Element, c accname.Context) bool {
		if ctx.Err() != nil {
			return false
		}
		for _, r := range byTag[el.Tag] {
			v := accname.Evaluate(el, r.Policy, c, r.Predicate)
			if v.Outcome != accname.Rejected {
				continue
			}
			d := at(file, el, r.Name, v.MessageID, r.Message)
			if r.Predicate == nil {
				d.Fix = accname.SuggestFix(el, r.Policy, c)
			}
			diags = append(diags, d)
		}
		return true
	})

	if opts.CheckDuplicateIDs {
		for _, dup := range actx.Index().Duplicates() {
			first := dup.Elements[0]
			for _, el := range dup.Elements[1:] {
				msg := fmt.Sprintf("Accessibility: id %q is already used on line %d; references resolve to that element.",
					dup.ID, first.Span.Line+1)
				diags = append(diags, at(file, el, RuleDuplicateID, "duplicateId", msg))
			}
		}
	}

	sortDiagnostics(diags)
	return diags
}

// LintSource parses src as path and lints it.
func LintSource(ctx context.Context, src []byte, path string, rules []catalog.Rule, opts Options) ([]Diagnostic, error) {
	file, err := markup.Parse(ctx, src, path)
	if err != nil {
		return nil, err
	}
	return Lint(ctx, file, rules, opts), nil
}

func at(file *markup.File, el *markup.Element, rule, messageID, message string) Diagnostic {
	return Diagnostic{
		File:      file.Path,
		Rule:      rule,
		MessageID: messageID,
		Message:   message,
		Line:      el.Span.Line,
		Column:    el.Span.Column,
		StartByte: el.Span.Start,
		EndByte:   el.Span.End,
	}
}

func sortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.File, b.File),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
			cmp.Compare(a.Rule, b.Rule),
		)
	})
}
