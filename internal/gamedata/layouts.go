package gamedata

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// DefaultLayout is the built-in 32x32 map used when nothing else is configured.
const DefaultLayout = "classic"

// LoadLayout returns the text of the embedded layout with the given name.
func LoadLayout(name string) (string, error) {
	content, err := readEmbedded(layoutPath(name))
	if err != nil {
		return "", fmt.Errorf("unknown map layout %q: %w", name, err)
	}
	return string(content), nil
}

// Layouts returns the names of all embedded layouts, sorted.
func Layouts() []string {
	entries, err := fs.ReadDir(dataFS, "maps")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".txt" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".txt"))
	}
	sort.Strings(names)
	return names
}
