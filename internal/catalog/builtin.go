// Package catalog holds the per-component accessibility rules: the built-in
// set and the configuration that tunes it.
package catalog

import (
	"errors"

	"github.com/agentic-research/a11yname/internal/accname"
	"github.com/agentic-research/a11yname/internal/markup"
)

// Rule binds a policy to a name and a message.
type Rule struct {
	Name        string
	Description string
	Message     string
	Policy      accname.Policy
	// Predicate, when set, replaces the policy strategies.
	Predicate accname.Predicate
}

// Validate reports rules that can never accept an element.
func (r Rule) Validate() error {
	if r.Predicate != nil {
		if r.Policy.Component == "" {
			return accname.ErrNoComponent
		}
		return nil
	}
	return r.Policy.Validate()
}

// Strategies lists how the rule accepts an element.
func (r Rule) Strategies() []accname.Strategy {
	if r.Predicate != nil {
		return []accname.Strategy{accname.StrategyOverride}
	}
	return r.Policy.Strategies()
}

// ErrMissingComponent is returned for a custom rule without a component.
var ErrMissingComponent = errors.New("custom rule needs a component")

// formControl is the policy shared by inputs that take a visible label.
func formControl(component, messageID string, labelProps ...string) accname.Policy {
	return accname.Policy{
		Component:          component,
		MessageID:          messageID,
		LabelProps:         labelProps,
		AllowFieldParent:   true,
		AllowHTMLFor:       true,
		AllowLabelledBy:    true,
		AllowWrappingLabel: true,
	}
}

// pressable is the policy shared by buttons and links.
func pressable(component, messageID string) accname.Policy {
	return accname.Policy{
		Component:             component,
		MessageID:             messageID,
		LabelProps:            []string{"aria-label", "title"},
		AllowLabelledBy:       true,
		AllowLabeledChild:     true,
		AllowTextContentChild: true,
	}
}

// Builtin returns the built-in rules, sorted by name.
func Builtin() []Rule {
	button := pressable("Button", "noEmptyButton")
	button.AllowTooltipParent = true
	toggle := pressable("ToggleButton", "noEmptyButton")
	toggle.AllowTooltipParent = true

	checkbox := formControl("Checkbox", "noUnlabelledCheckbox", "label", "aria-label")
	checkbox.AllowTooltipParent = true

	radio := formControl("Radio", "noUnlabelledRadio", "label", "aria-label")
	// A Field labels the RadioGroup, not each Radio.
	radio.AllowFieldParent = false

	return []Rule{
		{
			Name:        "avatar-needs-name",
			Description: "Avatar needs a name, an aria-label or aria-labelledby.",
			Message:     "Accessibility: Avatar must have an accessible name. Add a name or aria-label property.",
			Policy: accname.Policy{
				Component:       "Avatar",
				MessageID:       "missingAriaLabel",
				LabelProps:      []string{"name", "aria-label"},
				AllowLabelledBy: true,
			},
		},
		{
			Name:        "badge-needs-accessibility",
			Description: "Badge conveys information that must be available as text.",
			Message:     "Accessibility: Badge must have text content, a labelled icon or an aria-label.",
			Policy: accname.Policy{
				Component:             "Badge",
				MessageID:             "missingBadgeLabel",
				LabelProps:            []string{"aria-label"},
				AllowLabelledBy:       true,
				AllowLabeledChild:     true,
				AllowTextContentChild: true,
			},
		},
		{
			Name:        "button-needs-name",
			Description: "Button needs text content, a labelled icon, aria-label, title or a Tooltip.",
			Message:     "Accessibility: Button must have an accessible name.",
			Policy:      button,
		},
		{
			Name:        "checkbox-needs-labelling",
			Description: "Checkbox needs a label property, a Field, a label element or aria-labelledby.",
			Message:     "Accessibility: Checkbox must have an accessible name.",
			Policy:      checkbox,
		},
		{
			Name:        "combobox-needs-labelling",
			Description: "Combobox needs a Field, a label element, aria-label or aria-labelledby.",
			Message:     "Accessibility: Combobox must have an accessible name.",
			Policy:      formControl("Combobox", "noUnlabelledCombobox", "aria-label"),
		},
		{
			Name:        "dialog-title-needs-text",
			Description: "DialogTitle must contain its text directly.",
			Message:     "Accessibility: DialogTitle must have text content.",
			Policy:      accname.Policy{Component: "DialogTitle", MessageID: "noEmptyDialogTitle"},
			Predicate: func(el *markup.Element, _ accname.Context) bool {
				return accname.HasDirectText(el)
			},
		},
		{
			Name:        "dropdown-needs-labelling",
			Description: "Dropdown needs a Field, a label element, aria-label or aria-labelledby.",
			Message:     "Accessibility: Dropdown must have an accessible name.",
			Policy:      formControl("Dropdown", "noUnlabelledDropdown", "aria-label"),
		},
		{
			Name:        "image-needs-alt",
			Description: "Image needs non-empty alternative text.",
			Message:     "Accessibility: Image must have a non-empty alt property.",
			Policy: accname.Policy{
				Component:     "Image",
				MessageID:     "missingAlt",
				RequiredProps: []string{"alt"},
			},
		},
		{
			Name:        "input-needs-labelling",
			Description: "Input needs a Field, a label element, aria-label or aria-labelledby.",
			Message:     "Accessibility: Input must have an accessible name.",
			Policy:      formControl("Input", "noUnlabelledInput", "aria-label"),
		},
		{
			Name:        "link-needs-name",
			Description: "Link needs text content, a labelled image, aria-label or title.",
			Message:     "Accessibility: Link must have an accessible name.",
			Policy:      pressable("Link", "noEmptyLink"),
		},
		{
			Name:        "progressbar-needs-labelling",
			Description: "ProgressBar needs a Field, aria-label or aria-labelledby.",
			Message:     "Accessibility: ProgressBar must have an accessible name.",
			Policy: accname.Policy{
				Component:        "ProgressBar",
				MessageID:        "noUnlabelledProgressBar",
				LabelProps:       []string{"aria-label"},
				AllowFieldParent: true,
				AllowLabelledBy:  true,
			},
		},
		{
			Name:        "radio-needs-labelling",
			Description: "Radio needs a label property, a label element, aria-label or aria-labelledby.",
			Message:     "Accessibility: Radio must have an accessible name.",
			Policy:      radio,
		},
		{
			Name:        "slider-needs-labelling",
			Description: "Slider needs a Field, a label element, aria-label or aria-labelledby.",
			Message:     "Accessibility: Slider must have an accessible name.",
			Policy:      formControl("Slider", "noUnlabelledSlider", "aria-label"),
		},
		{
			Name:        "spinbutton-needs-labelling",
			Description: "SpinButton needs a Field, a label element, aria-label or aria-labelledby.",
			Message:     "Accessibility: SpinButton must have an accessible name.",
			Policy:      formControl("SpinButton", "noUnlabelledSpinButton", "aria-label"),
		},
		{
			Name:        "spinner-needs-labelling",
			Description: "Spinner needs a label, aria-label or aria-labelledby.",
			Message:     "Accessibility: Spinner must have an accessible name.",
			Policy: accname.Policy{
				Component:       "Spinner",
				MessageID:       "noUnlabelledSpinner",
				LabelProps:      []string{"label", "aria-label"},
				AllowLabelledBy: true,
			},
		},
		{
			Name:        "switch-needs-labelling",
			Description: "Switch needs a label property, a Field, a label element or aria-labelledby.",
			Message:     "Accessibility: Switch must have an accessible name.",
			Policy:      formControl("Switch", "noUnlabelledSwitch", "label", "aria-label"),
		},
		{
			Name:        "textarea-needs-labelling",
			Description: "Textarea needs a Field, a label element, aria-label or aria-labelledby.",
			Message:     "Accessibility: Textarea must have an accessible name.",
			Policy:      formControl("Textarea", "noUnlabelledTextarea", "aria-label"),
		},
		{
			Name:        "toggle-button-needs-name",
			Description: "ToggleButton needs text content, a labelled icon, aria-label, title or a Tooltip.",
			Message:     "Accessibility: ToggleButton must have an accessible name.",
			Policy:      toggle,
		},
		{
			Name:        "tree-needs-labelling",
			Description: "The outermost Tree needs aria-label or aria-labelledby.",
			Message:     "Accessibility: Tree must have an accessible name.",
			Policy: accname.Policy{
				Component:       "Tree",
				MessageID:       "missingTreeLabel",
				LabelProps:      []string{"aria-label"},
				AllowLabelledBy: true,
				ExemptNested:    true,
			},
		},
	}
}
