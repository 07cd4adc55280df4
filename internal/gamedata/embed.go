// Package gamedata provides embedded map layouts and colour palettes.
package gamedata

import "embed"

// dataFS embeds palettes and map layouts at build time.
//
//go:embed *.json maps/*.txt
var dataFS embed.FS
