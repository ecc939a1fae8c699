// Package gamedata provides embedded game data and utilities for loading it.
package gamedata

import "embed"

// dataFS embeds character classes (JSON) and level layouts (YAML) at build time.
//
//go:embed *.json levels/*.yaml
var dataFS embed.FS
