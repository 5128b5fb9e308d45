// Package style maps semantic message categories to presentation attributes.
//
// The table is loaded from an embedded styles.yaml and can be overridden by a
// user file. Categories are a closed set; tags are free-form names usable as
// [tag]...[/tag] markup:
//
//	reg := style.Default()
//	attrs := reg.StyleFor(style.Success) // {green ✓}
//	fmt.Println(reg.Markup("[title]Done[/title] in [dim]3s[/dim]"))
package style

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/shine/pkg/errors"
)

//go:embed styles.yaml
var defaultStyles []byte

// Category is a semantic message intent.
type Category string

const (
	Info     Category = "info"
	Success  Category = "success"
	Warning  Category = "warning"
	Error    Category = "error"
	Debug    Category = "debug"
	Progress Category = "progress"
)

// Categories returns the enumerated categories in display order.
func Categories() []Category {
	return []Category{Info, Success, Warning, Error, Debug, Progress}
}

func (c Category) valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Attributes is the immutable presentation of a category.
type Attributes struct {
	Color Color
	Glyph string
	Bold  bool
}

// Neutral is used for names outside the category set.
var Neutral = Attributes{Color: White, Glyph: "•"}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Color     string `yaml:"color,omitempty"`
	Glyph     string `yaml:"glyph,omitempty"`
	Bold      bool   `yaml:"bold,omitempty"`
	Italic    bool   `yaml:"italic,omitempty"`
	Underline bool   `yaml:"underline,omitempty"`
	Faint     bool   `yaml:"faint,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Categories map[string]StyleDef `yaml:"categories"`
	Tags       map[string]StyleDef `yaml:"tags"`
}

// Registry maps categories to Attributes and tag names to lipgloss styles.
// A Registry is read-only once built.
type Registry struct {
	categories map[Category]Attributes
	tags       map[string]StyleDef
	renderer   *lipgloss.Renderer
}

var defaultRegistry *Registry

func init() {
	reg, err := Parse(nil)
	if err != nil {
		panic(fmt.Sprintf("failed to load embedded styles: %v", err))
	}
	defaultRegistry = reg
}

// Default returns the registry built from the embedded styles.yaml.
func Default() *Registry {
	return defaultRegistry
}

// Load reads a user styles file and overlays it on the embedded defaults.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStyleLoad, "failed to read styles file %s", path)
	}
	return Parse(data)
}

// Parse overlays YAML data on the embedded defaults. Nil data yields the defaults.
func Parse(data []byte) (*Registry, error) {
	var base Config
	if err := yaml.Unmarshal(defaultStyles, &base); err != nil {
		return nil, errors.Wrap(err, errors.ErrStyleLoad, "failed to parse embedded styles")
	}

	if len(data) > 0 {
		var user Config
		if err := yaml.Unmarshal(data, &user); err != nil {
			return nil, errors.Wrap(err, errors.ErrStyleLoad, "failed to parse styles file")
		}
		for name, def := range user.Categories {
			if !Category(name).valid() {
				return nil, errors.Newf(errors.ErrStyleLoad, "unknown category %q in styles file", name).
					WithDetail("known", categoryNames())
			}
			base.Categories[name] = overlay(base.Categories[name], def)
		}
		for name, def := range user.Tags {
			base.Tags[name] = overlay(base.Tags[name], def)
		}
	}

	return build(base)
}

// overlay fills the fields the user left empty from the default definition.
func overlay(def, user StyleDef) StyleDef {
	if user.Color == "" {
		user.Color = def.Color
	}
	if user.Glyph == "" {
		user.Glyph = def.Glyph
	}
	return user
}

func build(cfg Config) (*Registry, error) {
	reg := &Registry{
		categories: make(map[Category]Attributes, len(cfg.Categories)),
		tags:       make(map[string]StyleDef),
		renderer:   lipgloss.DefaultRenderer(),
	}

	for name, def := range cfg.Categories {
		color, ok := ParseColor(def.Color)
		if !ok {
			return nil, errors.Newf(errors.ErrStyleLoad, "unknown color %q for category %s", def.Color, name)
		}
		reg.categories[Category(name)] = Attributes{Color: color, Glyph: def.Glyph, Bold: def.Bold}
	}
	for _, c := range Categories() {
		if _, ok := reg.categories[c]; !ok {
			return nil, errors.Newf(errors.ErrStyleLoad, "category %s has no style", c)
		}
	}

	// Every colour token and every category doubles as a tag.
	for _, c := range Colors() {
		reg.tags[string(c)] = StyleDef{Color: string(c)}
	}
	for c, attrs := range reg.categories {
		reg.tags[string(c)] = StyleDef{Color: string(attrs.Color), Bold: attrs.Bold}
	}
	for name, def := range cfg.Tags {
		if _, ok := ParseColor(def.Color); !ok {
			return nil, errors.Newf(errors.ErrStyleLoad, "unknown color %q for tag %s", def.Color, name)
		}
		reg.tags[name] = def
	}

	return reg, nil
}

// WithRenderer returns a copy of the registry whose styles render through r.
func (reg *Registry) WithRenderer(r *lipgloss.Renderer) *Registry {
	clone := *reg
	clone.renderer = r
	return &clone
}

// StyleFor returns the attributes of a category. It is total over
// Categories(); anything else gets Neutral.
func (reg *Registry) StyleFor(c Category) Attributes {
	if attrs, ok := reg.categories[c]; ok {
		return attrs
	}
	return Neutral
}

// Lookup resolves a category by name. Unknown names return Neutral together
// with an UNKNOWN_CATEGORY error; callers may render with Neutral and ignore it.
func (reg *Registry) Lookup(name string) (Attributes, error) {
	c, err := ParseCategory(name)
	if err != nil {
		return Neutral, err
	}
	return reg.StyleFor(c), nil
}

// ParseCategory parses a category name case-insensitively.
func ParseCategory(name string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	if c.valid() {
		return c, nil
	}
	err := errors.Newf(errors.ErrUnknownCategory, "unknown category %q", name).
		WithDetail("known", categoryNames())
	if suggestion := Suggest(string(c), categoryNames()); suggestion != "" {
		err = err.WithDetail("suggestion", suggestion)
	}
	return "", err
}

func categoryNames() []string {
	names := make([]string, 0, len(Categories()))
	for _, c := range Categories() {
		names = append(names, string(c))
	}
	return names
}

// Style returns the lipgloss style for a category.
func (reg *Registry) Style(c Category) lipgloss.Style {
	attrs := reg.StyleFor(c)
	return reg.renderer.NewStyle().Foreground(attrs.Color.Lipgloss()).Bold(attrs.Bold)
}

// Tag returns the lipgloss style registered under name, or a plain style.
func (reg *Registry) Tag(name string) lipgloss.Style {
	def, ok := reg.tags[name]
	if !ok {
		return reg.renderer.NewStyle()
	}
	return reg.buildStyle(def)
}

// Paint renders s in the given colour.
func (reg *Registry) Paint(c Color, bold bool, s string) string {
	return reg.renderer.NewStyle().Foreground(c.Lipgloss()).Bold(bold).Render(s)
}

// Tags lists the registered tag names, sorted.
func (reg *Registry) Tags() []string {
	names := make([]string, 0, len(reg.tags))
	for name := range reg.tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// buildStyle constructs a lipgloss style from a style definition
func (reg *Registry) buildStyle(def StyleDef) lipgloss.Style {
	s := reg.renderer.NewStyle()
	if def.Bold {
		s = s.Bold(true)
	}
	if def.Italic {
		s = s.Italic(true)
	}
	if def.Underline {
		s = s.Underline(true)
	}
	if def.Faint {
		s = s.Faint(true)
	}
	if color, ok := ParseColor(def.Color); ok && color != NoColor {
		s = s.Foreground(color.Lipgloss())
	}
	return s
}
