// ABOUTME: Hand-maintained framework -> renderer table for Storybook integrations
// ABOUTME: Lookup is exact; unmapped frameworks fall back to their own identifier

package framework

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// rendererByFramework maps a Storybook framework package to the renderer
// package it builds on. The table is incomplete on purpose: there is no
// reliable way to ask a running Storybook for its renderer, so new
// frameworks are added here by hand.
var rendererByFramework = map[string]string{
	"@storybook/react-vite":            "@storybook/react",
	"@storybook/react-webpack5":        "@storybook/react",
	"@storybook/nextjs":                "@storybook/react",
	"@storybook/nextjs-vite":           "@storybook/react",
	"@storybook/react-native-web-vite": "@storybook/react",

	"@storybook/vue3-vite": "@storybook/vue3",
	"@nuxtjs/storybook":    "@storybook/vue3",

	"@storybook/angular": "@storybook/angular",

	"@storybook/svelte-vite": "@storybook/svelte",
	"@storybook/sveltekit":   "@storybook/svelte",

	"@storybook/preact-vite": "@storybook/preact",

	"@storybook/web-components-vite": "@storybook/web-components",
	"@storybook/stencil":             "@storybook/web-components",
	"@storybook/stencil-vite":        "@storybook/web-components",

	"@storybook/html-vite": "@storybook/html",
}

// LookupRenderer returns the renderer for a framework identifier.
// The second result is false when the framework is not in the table.
func LookupRenderer(framework string) (string, bool) {
	r, ok := rendererByFramework[framework]
	return r, ok
}

// RendererFor returns the mapped renderer, or the framework itself when unmapped.
func RendererFor(framework string) string {
	if r, ok := rendererByFramework[framework]; ok {
		return r
	}
	return framework
}

// Frameworks returns every mapped framework identifier in sorted order.
func Frameworks() []string {
	out := make([]string, 0, len(rendererByFramework))
	for k := range rendererByFramework {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Suggest returns up to limit mapped frameworks that fuzzily match id,
// best match first. Used to hint at typos in configured framework names.
func Suggest(id string, limit int) []string {
	if id == "" || limit <= 0 {
		return nil
	}
	matches := fuzzy.Find(id, Frameworks())
	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
