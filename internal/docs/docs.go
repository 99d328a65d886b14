// Package docs holds the embedded Leptos documentation registry served
// by the get-documentation and list-sections tools and the docs
// command.
package docs

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed sections/*.md
var content embed.FS

// Section is one documentation entry. Path doubles as the section slug
// and names the embedded markdown file.
type Section struct {
	Title    string
	Path     string
	UseCases string
	Content  string
}

// Registration order is fixed: list output and substring matches must
// not change between runs.
var sections = []Section{
	{
		Title:    "Getting Started",
		Path:     "getting-started",
		UseCases: "new project, setup, installation, basics, hello world",
	},
	{
		Title:    "Components",
		Path:     "components",
		UseCases: "UI, view, component, props, children, #[component], always",
	},
	{
		Title:    "Signals",
		Path:     "signals",
		UseCases: "state, reactivity, signals, derived, effects, get, set, read, write, update, always",
	},
	{
		Title:    "Views",
		Path:     "views",
		UseCases: "view macro, dynamic classes, dynamic styles, attributes, class:, style:, events, always",
	},
	{
		Title:    "Resources",
		Path:     "resources",
		UseCases: "async, data loading, Resource, LocalResource, OnceResource, fetch, API",
	},
	{
		Title:    "Actions",
		Path:     "actions",
		UseCases: "mutations, POST, forms, ActionForm, ServerAction, submit, create, update, delete",
	},
	{
		Title:    "Server Functions",
		Path:     "server-functions",
		UseCases: "backend, API, database, server, SSR, #[server], extractors, Axum",
	},
	{
		Title:    "Routing",
		Path:     "routing",
		UseCases: "navigation, pages, routes, params, nested routes, Router",
	},
	{
		Title:    "Forms",
		Path:     "forms",
		UseCases: "form, input, validation, submit, controlled input, prop:value",
	},
	{
		Title:    "Error Handling",
		Path:     "error-handling",
		UseCases: "errors, ErrorBoundary, Result, ServerFnError, try",
	},
	{
		Title:    "Suspense",
		Path:     "suspense",
		UseCases: "loading, async, Suspense, Transition, streaming, fallback",
	},
}

func init() {
	for i := range sections {
		data, err := content.ReadFile("sections/" + sections[i].Path + ".md")
		if err != nil {
			panic(fmt.Sprintf("docs: missing embedded section %q: %v", sections[i].Path, err))
		}
		sections[i].Content = string(data)
	}
}

// Sections returns every section in registration order. The returned
// slice is a copy.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// Find returns the first section whose path or title contains the
// query, case-insensitively.
func Find(query string) (Section, bool) {
	q := strings.ToLower(query)
	for _, s := range sections {
		if strings.Contains(strings.ToLower(s.Path), q) ||
			strings.Contains(strings.ToLower(s.Title), q) {
			return s, true
		}
	}
	return Section{}, false
}

// List renders one bullet line per section.
func List() string {
	lines := make([]string, len(sections))
	for i, s := range sections {
		lines[i] = fmt.Sprintf("* title: %s, use_cases: %s, path: %s", s.Title, s.UseCases, s.Path)
	}
	return strings.Join(lines, "\n")
}

// Render resolves the query and returns the section as markdown, or
// the not-found hint when nothing matches.
func Render(query string) string {
	s, ok := Find(query)
	if !ok {
		return fmt.Sprintf("Section '%s' not found. Use list-sections to see available sections.", query)
	}
	return fmt.Sprintf("# %s\n\n%s", s.Title, s.Content)
}
