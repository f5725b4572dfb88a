package accname

import (
	"errors"

	"github.com/agentic-research/a11yname/internal/markup"
)

var (
	// ErrNoComponent is returned by Policy.Validate for a policy without a target.
	ErrNoComponent = errors.New("policy has no component")
	// ErrNoStrategy is returned by Policy.Validate for a policy that can
	// never accept an element.
	ErrNoStrategy = errors.New("policy enables no labelling strategy")
)

// Policy declares which labelling strategies name a component.
// Policies are plain values; nothing in this package mutates them.
type Policy struct {
	Component string
	MessageID string

	// LabelProps each name the element on their own.
	LabelProps []string
	// RequiredProps must all be present and non-empty. When set, the
	// strategies below are not consulted.
	RequiredProps []string

	AllowFieldParent      bool
	AllowHTMLFor          bool
	AllowLabelledBy       bool
	AllowWrappingLabel    bool
	AllowTooltipParent    bool
	AllowDescribedBy      bool
	AllowLabeledChild     bool
	AllowTextContentChild bool

	// ExemptNested skips instances nested inside another instance of the
	// same component; only the outermost one must be named.
	ExemptNested bool
}

// Predicate replaces the strategy evaluation of a policy.
type Predicate func(el *markup.Element, ctx Context) bool

// Strategy names the way an element was found to be named.
type Strategy string

const (
	StrategyOverride      Strategy = "override"
	StrategyRequiredProps Strategy = "required-props"
	StrategyLabelProp     Strategy = "label-prop"
	StrategyTextContent   Strategy = "text-content"
	StrategyLabeledChild  Strategy = "labeled-child"
	StrategyLabelledBy    Strategy = "aria-labelledby"
	StrategyDescribedBy   Strategy = "aria-describedby"
	StrategyHTMLFor       Strategy = "html-for"
	StrategyWrappingLabel Strategy = "wrapping-label"
	StrategyFieldParent   Strategy = "field-parent"
	StrategyTooltipParent Strategy = "tooltip-parent"
)

type strategy struct {
	name    Strategy
	enabled func(p *Policy) bool
	check   func(p *Policy, el *markup.Element, ctx Context) bool
}

var strategies = []strategy{
	{
		name:    StrategyLabelProp,
		enabled: func(p *Policy) bool { return len(p.LabelProps) > 0 },
		check: func(p *Policy, el *markup.Element, _ Context) bool {
			for _, prop := range p.LabelProps {
				if HasNonEmptyAttribute(el.Attrs, prop) {
					return true
				}
			}
			return false
		},
	},
	{
		name:    StrategyTextContent,
		enabled: func(p *Policy) bool { return p.AllowTextContentChild },
		check:   func(_ *Policy, el *markup.Element, _ Context) bool { return HasTextContent(el) },
	},
	{
		name:    StrategyLabeledChild,
		enabled: func(p *Policy) bool { return p.AllowLabeledChild },
		check:   func(_ *Policy, el *markup.Element, _ Context) bool { return HasLabelledChildMedia(el) },
	},
	{
		name:    StrategyLabelledBy,
		enabled: func(p *Policy) bool { return p.AllowLabelledBy },
		check:   func(_ *Policy, el *markup.Element, ctx Context) bool { return ResolveLabelledBy(el, ctx) },
	},
	{
		name:    StrategyDescribedBy,
		enabled: func(p *Policy) bool { return p.AllowDescribedBy },
		check:   func(_ *Policy, el *markup.Element, ctx Context) bool { return ResolveDescribedBy(el, ctx) },
	},
	{
		name:    StrategyHTMLFor,
		enabled: func(p *Policy) bool { return p.AllowHTMLFor },
		check:   func(_ *Policy, el *markup.Element, ctx Context) bool { return ResolveHTMLFor(el, ctx) },
	},
	{
		name:    StrategyWrappingLabel,
		enabled: func(p *Policy) bool { return p.AllowWrappingLabel },
		check:   func(_ *Policy, _ *markup.Element, ctx Context) bool { return IsWrappedInLabel(ctx) },
	},
	{
		name:    StrategyFieldParent,
		enabled: func(p *Policy) bool { return p.AllowFieldParent },
		check:   func(_ *Policy, _ *markup.Element, ctx Context) bool { return HasFieldAncestor(ctx) },
	},
	{
		name:    StrategyTooltipParent,
		enabled: func(p *Policy) bool { return p.AllowTooltipParent },
		check:   func(_ *Policy, _ *markup.Element, ctx Context) bool { return HasTooltipAncestor(ctx) },
	},
}

// Strategies lists the strategies p enables, in evaluation order.
func (p Policy) Strategies() []Strategy {
	if len(p.RequiredProps) > 0 {
		return []Strategy{StrategyRequiredProps}
	}
	var out []Strategy
	for _, s := range strategies {
		if s.enabled(&p) {
			out = append(out, s.name)
		}
	}
	return out
}

// Validate reports policies that cannot work. A policy without any
// strategy still evaluates; it rejects every matching element.
func (p Policy) Validate() error {
	if p.Component == "" {
		return ErrNoComponent
	}
	if len(p.Strategies()) == 0 {
		return ErrNoStrategy
	}
	return nil
}
