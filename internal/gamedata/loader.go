package gamedata

import (
	"encoding/json"
	"fmt"
	"path"
)

// readEmbedded returns the bytes of an embedded data file.
func readEmbedded(name string) ([]byte, error) {
	content, err := dataFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading embedded %s: %w", name, err)
	}
	return content, nil
}

// Load decodes an embedded JSON file into T.
func Load[T any](name string) (T, error) {
	var result T

	content, err := readEmbedded(name)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("decoding %s: %w", name, err)
	}
	return result, nil
}

// layoutPath is where the layout with the given name is embedded.
func layoutPath(name string) string {
	return path.Join("maps", name+".txt")
}
