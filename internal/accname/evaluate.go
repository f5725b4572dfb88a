package accname

import (
	"github.com/agentic-research/a11yname/internal/markup"
)

// Outcome is the result class of an evaluation.
type Outcome int

const (
	NotApplicable Outcome = iota
	Accepted
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return "not-applicable"
	}
}

// Verdict is the decision for one element under one policy.
type Verdict struct {
	Outcome Outcome
	// MessageID is set when Outcome is Rejected.
	MessageID string
	// Strategy is set when Outcome is Accepted.
	Strategy Strategy
}

// Evaluate decides whether el is accessibly named under p.
//
// Elements of another component are NotApplicable. A non-nil override is
// authoritative. Otherwise RequiredProps, when present, must all be
// non-empty; without them the enabled strategies are tried in turn and the
// first success accepts. Evaluation only reads el and ctx, so it is
// idempotent and safe to run concurrently on different files.
func Evaluate(el *markup.Element, p Policy, ctx Context, override Predicate) Verdict {
	if el.Tag != p.Component {
		return Verdict{Outcome: NotApplicable}
	}
	if p.ExemptNested && HasSameKindAncestor(ctx, p.Component) {
		return Verdict{Outcome: NotApplicable}
	}

	if override != nil {
		if override(el, ctx) {
			return accept(StrategyOverride)
		}
		return reject(p)
	}

	if len(p.RequiredProps) > 0 {
		for _, prop := range p.RequiredProps {
			if !HasNonEmptyAttribute(el.Attrs, prop) {
				return reject(p)
			}
		}
		return accept(StrategyRequiredProps)
	}

	for _, s := range strategies {
		if s.enabled(&p) && s.check(&p, el, ctx) {
			return accept(s.name)
		}
	}
	return reject(p)
}

func accept(s Strategy) Verdict {
	return Verdict{Outcome: Accepted, Strategy: s}
}

func reject(p Policy) Verdict {
	return Verdict{Outcome: Rejected, MessageID: p.MessageID}
}
