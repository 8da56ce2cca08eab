// Package docs embeds the documentation topics shown by `pnla topic`.
package docs

import (
	"embed"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.md
var topics embed.FS

// Get returns the content of a documentation topic.
func Get(topic string) (string, error) {
	content, err := topics.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// All returns the available topic names, sorted, "readme" excluded.
func All() ([]string, error) {
	entries, err := topics.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if name == "readme" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
