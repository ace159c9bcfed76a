package storage

import (
	"time"

	"github.com/google/uuid"
)

// Manifest describes one exported layout.
type Manifest struct {
	BuildID     uuid.UUID   `json:"build_id"`
	CreatedAt   time.Time   `json:"created_at"`
	Seed        int64       `json:"seed"`
	Noise       string      `json:"noise,omitempty"`
	ChunkWidth  int         `json:"chunk_width"`
	ChunkHeight int         `json:"chunk_height"`
	GridWidth   int         `json:"grid_width"`
	GridDepth   int         `json:"grid_depth"`
	Compressed  bool        `json:"compressed"`
	Tiles       []TileEntry `json:"tiles"`
	Failed      []TilePos   `json:"failed,omitempty"`
}

// TilePos is a grid coordinate for JSON serialization.
type TilePos struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// TileEntry is a single exported tile.
type TileEntry struct {
	TilePos
	Offset   [3]float32 `json:"offset"`
	Vertices int        `json:"vertices"`
	Indices  int        `json:"indices"`
	Material string     `json:"material"`
	Color    string     `json:"color"`
	File     string     `json:"file"` // relative to the export directory
}

// BuildInfo is the generation metadata copied into the manifest.
type BuildInfo struct {
	Seed  int64
	Noise string
}
