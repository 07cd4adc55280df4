package gamedata

import (
	"errors"
	"fmt"
)

// PaletteRegistry holds loaded palette definitions and provides lookup utilities.
type PaletteRegistry struct {
	palettes map[string]*PaletteDef
	all      []PaletteDef
}

// NewPaletteRegistry creates a registry from loaded palette definitions.
func NewPaletteRegistry(palettes []PaletteDef) *PaletteRegistry {
	registry := &PaletteRegistry{
		palettes: make(map[string]*PaletteDef),
		all:      palettes,
	}
	for i := range palettes {
		registry.palettes[palettes[i].ID] = &palettes[i]
	}
	return registry
}

// LoadPaletteRegistry loads and creates a registry from the embedded palettes.json.
func LoadPaletteRegistry() (*PaletteRegistry, error) {
	palettes, err := LoadPalettes()
	if err != nil {
		return nil, err
	}
	if len(palettes) == 0 {
		return nil, errors.New("no palettes loaded from palettes.json")
	}
	return NewPaletteRegistry(palettes), nil
}

// GetByID returns the palette with the given ID, or nil if not found.
func (r *PaletteRegistry) GetByID(id string) *PaletteDef {
	return r.palettes[id]
}

// Resolve returns the palette with the given ID or an error naming the known IDs.
func (r *PaletteRegistry) Resolve(id string) (*PaletteDef, error) {
	if p := r.GetByID(id); p != nil {
		return p, nil
	}
	ids := make([]string, len(r.all))
	for i := range r.all {
		ids[i] = r.all[i].ID
	}
	return nil, fmt.Errorf("unknown palette %q (known: %v)", id, ids)
}

// Count returns the number of palettes in the registry.
func (r *PaletteRegistry) Count() int {
	return len(r.all)
}
