// ABOUTME: Instruction template parsing and placeholder substitution
// ABOUTME: Exactly three fixed {{TOKEN}} placeholders; every occurrence is replaced

package instructions

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mauromedda/storybook-mcp-go/internal/config"
)

// Placeholder tokens recognised in instruction documents.
const (
	FrameworkToken     = "{{FRAMEWORK}}"
	RendererToken      = "{{RENDERER}}"
	CompanionToolToken = "{{GET_STORY_URLS_TOOL_NAME}}"
)

// placeholderNames are the frontmatter names of the tokens, in declaration order.
var placeholderNames = []string{"FRAMEWORK", "RENDERER", "GET_STORY_URLS_TOOL_NAME"}

// Frontmatter is the YAML header of an instruction document.
type Frontmatter struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Placeholders []string `yaml:"placeholders"`
}

// Template is a parsed instruction document. It is immutable once loaded.
type Template struct {
	meta Frontmatter
	body string
}

// Values are the per-request substitutions.
type Values struct {
	Framework     string
	Renderer      string // falls back to Framework when empty
	CompanionTool string
}

// Load parses an instruction document and checks that its frontmatter
// declares exactly the known placeholders and that each appears in the body.
func Load(content string) (*Template, error) {
	meta, body, err := config.ParseFrontmatter[Frontmatter](content)
	if err != nil {
		return nil, fmt.Errorf("instructions: %w", err)
	}

	declared := slices.Clone(meta.Placeholders)
	slices.Sort(declared)
	want := slices.Clone(placeholderNames)
	slices.Sort(want)
	if !slices.Equal(declared, want) {
		return nil, fmt.Errorf("instructions %q: placeholders %v; want %v", meta.Name, meta.Placeholders, placeholderNames)
	}

	for _, name := range placeholderNames {
		if !strings.Contains(body, "{{"+name+"}}") {
			return nil, fmt.Errorf("instructions %q: placeholder {{%s}} missing from body", meta.Name, name)
		}
	}

	return &Template{meta: meta, body: body}, nil
}

// MustLoad is Load that panics on error. Only used for embedded documents.
func MustLoad(content string) *Template {
	t, err := Load(content)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the document name from the frontmatter.
func (t *Template) Name() string { return t.meta.Name }

// Description returns the document description from the frontmatter.
func (t *Template) Description() string { return t.meta.Description }

// Body returns the raw, unrendered document body.
func (t *Template) Body() string { return t.body }

// Render substitutes v into the template body.
func (t *Template) Render(v Values) string {
	return Render(t.body, v.Framework, v.Renderer, v.CompanionTool)
}

// Render replaces the framework, renderer and companion-tool tokens in tmpl.
// An empty renderer is replaced by the framework value.
func Render(tmpl, framework, renderer, companionTool string) string {
	if renderer == "" {
		renderer = framework
	}
	return strings.NewReplacer(
		FrameworkToken, framework,
		RendererToken, renderer,
		CompanionToolToken, companionTool,
	).Replace(tmpl)
}
