// Package helpdocs serves the workbench's built-in FAQ and method guides.
// Topics are embedded markdown rendered for the terminal with glamour.
package helpdocs

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
)

//go:embed topics/*.md
var topicsFS embed.FS

const topicsDir = "topics"

// Topics lists the available topic ids, sorted.
func Topics() []string {
	entries, err := topicsFS.ReadDir(topicsDir)
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(ids)
	return ids
}

// Topic returns the raw markdown for a topic id.
func Topic(id string) (string, error) {
	raw, err := topicsFS.ReadFile(fmt.Sprintf("%s/%s.md", topicsDir, id))
	if err != nil {
		return "", UnknownTopicError{ID: id}
	}
	return string(raw), nil
}

// Render returns a topic formatted for a terminal of the given width.
func Render(id string, width int) (string, error) {
	raw, err := Topic(id)
	if err != nil {
		return "", err
	}
	return RenderMarkdown(raw, width)
}

// RenderMarkdown formats arbitrary markdown (e.g. an interpretation returned
// by the analysis API) for a terminal of the given width.
func RenderMarkdown(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
