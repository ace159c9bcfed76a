package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/OCharnyshevich/voxel-terrain/internal/world"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/mesh"
)

// ManifestFile is the manifest's name inside the export directory.
const ManifestFile = "manifest.json"

// Storage writes exported layouts under a directory.
type Storage struct {
	dir      string
	compress bool
	log      *slog.Logger
}

// New creates a new Storage rooted at dir, creating subdirectories as needed.
// With compress set, tile meshes are written zstd-compressed.
func New(dir string, compress bool, log *slog.Logger) (*Storage, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	dirs := []string{
		dir,
		filepath.Join(dir, "tiles"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	return &Storage{dir: dir, compress: compress, log: log}, nil
}

// Dir returns the export directory.
func (s *Storage) Dir() string {
	return s.dir
}

// SaveLayout writes one OBJ per tile in world space and then the manifest.
func (s *Storage) SaveLayout(l *world.Layout, info BuildInfo) (*Manifest, error) {
	m := &Manifest{
		BuildID:     uuid.New(),
		CreatedAt:   time.Now().UTC(),
		Seed:        info.Seed,
		Noise:       info.Noise,
		ChunkWidth:  l.Dims.Width,
		ChunkHeight: l.Dims.Height,
		GridWidth:   l.Width,
		GridDepth:   l.Depth,
		Compressed:  s.compress,
		Tiles:       make([]TileEntry, 0, len(l.Tiles)),
	}

	for i := range l.Tiles {
		t := &l.Tiles[i]
		name := fmt.Sprintf("tile_%d_%d", t.Pos.X, t.Pos.Z)
		rel := filepath.Join("tiles", name+".obj")
		if s.compress {
			rel += ".zst"
		}
		if err := s.writeTile(filepath.Join(s.dir, rel), name, t); err != nil {
			return nil, err
		}
		m.Tiles = append(m.Tiles, TileEntry{
			TilePos:  TilePos{X: t.Pos.X, Z: t.Pos.Z},
			Offset:   [3]float32(t.Offset),
			Vertices: t.Mesh.VertexCount(),
			Indices:  len(t.Mesh.Indices),
			Material: t.Material.Name,
			Color:    t.Material.Hex(),
			File:     filepath.ToSlash(rel),
		})
	}
	for _, p := range l.Failed {
		m.Failed = append(m.Failed, TilePos{X: p.X, Z: p.Z})
	}

	if err := s.atomicWriteJSON(filepath.Join(s.dir, ManifestFile), m); err != nil {
		return nil, err
	}
	s.log.Info("exported layout", "dir", s.dir, "build_id", m.BuildID, "tiles", len(m.Tiles))
	return m, nil
}

// LoadManifest reads the manifest from the export directory.
func (s *Storage) LoadManifest() (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// OpenTile opens an exported tile file, transparently decompressing .zst files.
func (s *Storage) OpenTile(e TileEntry) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.FromSlash(e.File)))
	if err != nil {
		return nil, fmt.Errorf("open tile %d,%d: %w", e.X, e.Z, err)
	}
	if filepath.Ext(e.File) != ".zst" {
		return f, nil
	}
	zr, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open tile %d,%d: %w", e.X, e.Z, err)
	}
	return &zstdFile{Decoder: zr, f: f}, nil
}

type zstdFile struct {
	*zstd.Decoder
	f *os.File
}

func (z *zstdFile) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

// writeTile writes the tile's OBJ via a temp file + rename.
func (s *Storage) writeTile(path, name string, t *world.Tile) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	var w io.Writer = f
	var zw *zstd.Encoder
	if s.compress {
		zw, err = zstd.NewWriter(f)
		if err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("create zstd writer: %w", err)
		}
		w = zw
	}

	err = mesh.WriteOBJ(w, name, t.Mesh, t.Offset)
	if zw != nil {
		if cerr := zw.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write tile %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// atomicWriteJSON marshals v to JSON and writes it atomically using a temp file + rename.
func (s *Storage) atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
