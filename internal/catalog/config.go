package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/agentic-research/a11yname/api"
	"github.com/agentic-research/a11yname/internal/accname"
	"github.com/agentic-research/a11yname/internal/ctxlog"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no
// configuration is named explicitly.
const DefaultConfigFile = ".a11yname.hcl"

// ErrUnknownFormat is returned for configuration files whose extension is
// not .hcl, .json, .yaml or .yml.
var ErrUnknownFormat = errors.New("unknown config format")

// Settings controls the runner.
type Settings struct {
	CheckDuplicateIDs bool
	Workers           int
	Extensions        []string
	Exclude           []string
}

// DefaultSettings returns the settings used when the configuration is silent.
func DefaultSettings() Settings {
	return Settings{
		CheckDuplicateIDs: true,
		Workers:           runtime.NumCPU(),
		Extensions:        []string{".jsx", ".tsx", ".js"},
		Exclude:           []string{"node_modules", ".git", "dist", "build"},
	}
}

// Catalog is the set of enabled rules plus runner settings.
type Catalog struct {
	Rules    []Rule
	Settings Settings
}

// Default returns the built-in rules with default settings.
func Default() *Catalog {
	return &Catalog{Rules: Builtin(), Settings: DefaultSettings()}
}

// Rule returns the enabled rule with the given name.
func (c *Catalog) Rule(name string) (Rule, bool) {
	for _, r := range c.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Load reads a configuration file from fsys.
func Load(fsys billy.Filesystem, path string) (*api.Config, error) {
	src, err := util.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(src, path)
}

// Parse decodes configuration source; the filename extension picks the
// syntax. JSON files use the HCL JSON syntax.
func Parse(src []byte, filename string) (*api.Config, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hcl":
		return parseHCL(src, filename, false)
	case ".json":
		return parseHCL(src, filename, true)
	case ".yaml", ".yml":
		return parseYAML(src, filename)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
	}
}

func parseHCL(src []byte, filename string, json bool) (*api.Config, error) {
	parser := hclparse.NewParser()

	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if json {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}

	var cfg api.Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}
	return &cfg, nil
}

func parseYAML(src []byte, filename string) (*api.Config, error) {
	var cfg api.Config
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode config %s: %w", filename, err)
	}
	return &cfg, nil
}

// Build applies cfg on top of the built-in rules. A nil cfg yields Default().
// A rule that enables no strategy is kept and logged as a warning: it
// rejects every matching element.
func Build(ctx context.Context, cfg *api.Config) (*Catalog, error) {
	c := Default()
	if cfg == nil {
		return c, nil
	}
	if s := cfg.Settings; s != nil {
		if s.CheckDuplicateIDs != nil {
			c.Settings.CheckDuplicateIDs = *s.CheckDuplicateIDs
		}
		if s.Workers > 0 {
			c.Settings.Workers = s.Workers
		}
		if len(s.Extensions) > 0 {
			c.Settings.Extensions = s.Extensions
		}
		if s.Exclude != nil {
			c.Settings.Exclude = s.Exclude
		}
	}

	disabled := make(map[string]bool)
	for _, rc := range cfg.Rules {
		if rc.Name == "" {
			return nil, errors.New("rule block without a name")
		}
		i := slices.IndexFunc(c.Rules, func(r Rule) bool { return r.Name == rc.Name })
		if i < 0 {
			if rc.Component == nil || *rc.Component == "" {
				return nil, fmt.Errorf("rule %q: %w", rc.Name, ErrMissingComponent)
			}
			c.Rules = append(c.Rules, Rule{
				Name:    rc.Name,
				Message: fmt.Sprintf("Accessibility: %s must have an accessible name.", *rc.Component),
				Policy:  accname.Policy{Component: *rc.Component, MessageID: rc.Name},
			})
			i = len(c.Rules) - 1
		}
		apply(&c.Rules[i], rc)
		if rc.Enabled != nil {
			disabled[rc.Name] = !*rc.Enabled
		}
	}

	c.Rules = slices.DeleteFunc(c.Rules, func(r Rule) bool { return disabled[r.Name] })
	logger := ctxlog.FromContext(ctx)
	for _, r := range c.Rules {
		err := r.Validate()
		switch {
		case err == nil:
		case errors.Is(err, accname.ErrNoStrategy):
			logger.Warn("Rule enables no labelling strategy; every matching element will be reported.",
				"rule", r.Name, "component", r.Policy.Component)
		default:
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
	}
	slices.SortFunc(c.Rules, func(a, b Rule) int { return strings.Compare(a.Name, b.Name) })
	return c, nil
}

func apply(r *Rule, rc api.RuleConfig) {
	p := &r.Policy
	if rc.Component != nil {
		p.Component = *rc.Component
	}
	if rc.MessageID != nil {
		p.MessageID = *rc.MessageID
	}
	if rc.Message != nil {
		r.Message = *rc.Message
	}
	if rc.LabelProps != nil {
		p.LabelProps = rc.LabelProps
	}
	if rc.RequiredProps != nil {
		p.RequiredProps = rc.RequiredProps
	}
	set(&p.AllowFieldParent, rc.AllowFieldParent)
	set(&p.AllowHTMLFor, rc.AllowHTMLFor)
	set(&p.AllowLabelledBy, rc.AllowLabelledBy)
	set(&p.AllowWrappingLabel, rc.AllowWrappingLabel)
	set(&p.AllowTooltipParent, rc.AllowTooltipParent)
	set(&p.AllowDescribedBy, rc.AllowDescribedBy)
	set(&p.AllowLabeledChild, rc.AllowLabeledChild)
	set(&p.AllowTextContentChild, rc.AllowTextContentChild)
	set(&p.ExemptNested, rc.ExemptNested)
}

func set(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
