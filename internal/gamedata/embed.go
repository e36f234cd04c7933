// Package gamedata provides the embedded archetype catalogue: the room, corridor
// and wall prefabs a layout is assembled from.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
