package api

// Config represents the root of an a11yname configuration file.
// It tunes the built-in rules and declares rules for custom components.
type Config struct {
	// Version of the configuration schema.
	Version string `hcl:"version,optional" yaml:"version"`
	// Settings tunes the runner.
	Settings *Settings `hcl:"settings,block" yaml:"settings"`
	// Rules overrides built-in rules by name or declares new ones.
	Rules []RuleConfig `hcl:"rule,block" yaml:"rules"`
}

// Settings holds runner options. Zero values keep the defaults.
type Settings struct {
	CheckDuplicateIDs *bool    `hcl:"check_duplicate_ids,optional" yaml:"check_duplicate_ids"`
	Workers           int      `hcl:"workers,optional" yaml:"workers"`
	Extensions        []string `hcl:"extensions,optional" yaml:"extensions"`
	Exclude           []string `hcl:"exclude,optional" yaml:"exclude"` // directory names skipped while walking
}

// RuleConfig overrides a built-in rule or, when Name is unknown, declares a
// custom one (Component is then required). Unset fields keep the built-in
// values.
type RuleConfig struct {
	Name      string  `hcl:"name,label" yaml:"name"`
	Enabled   *bool   `hcl:"enabled,optional" yaml:"enabled"`
	Component *string `hcl:"component,optional" yaml:"component"`
	MessageID *string `hcl:"message_id,optional" yaml:"message_id"`
	Message   *string `hcl:"message,optional" yaml:"message"`

	LabelProps    []string `hcl:"label_props,optional" yaml:"label_props"`
	RequiredProps []string `hcl:"required_props,optional" yaml:"required_props"`

	AllowFieldParent      *bool `hcl:"allow_field_parent,optional" yaml:"allow_field_parent"`
	AllowHTMLFor          *bool `hcl:"allow_html_for,optional" yaml:"allow_html_for"`
	AllowLabelledBy       *bool `hcl:"allow_labelled_by,optional" yaml:"allow_labelled_by"`
	AllowWrappingLabel    *bool `hcl:"allow_wrapping_label,optional" yaml:"allow_wrapping_label"`
	AllowTooltipParent    *bool `hcl:"allow_tooltip_parent,optional" yaml:"allow_tooltip_parent"`
	AllowDescribedBy      *bool `hcl:"allow_described_by,optional" yaml:"allow_described_by"`
	AllowLabeledChild     *bool `hcl:"allow_labeled_child,optional" yaml:"allow_labeled_child"`
	AllowTextContentChild *bool `hcl:"allow_text_content_child,optional" yaml:"allow_text_content_child"`
	ExemptNested          *bool `hcl:"exempt_nested,optional" yaml:"exempt_nested"`
}
