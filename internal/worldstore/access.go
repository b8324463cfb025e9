package worldstore

import (
	"sort"

	"gridkit.dev/grid"
)

// Bounds is the region of cells the store considers part of the world. The
// vertical range comes from the configured height; horizontal extent from
// the boundary radius.
func (s *Store) Bounds() grid.Region {
	r := s.Gen.BoundaryR
	if r <= 0 {
		// Effectively unbounded horizontally.
		r = 1 << 30
	}
	return grid.Box(
		grid.Vec3i{X: -r, Y: 0, Z: -r},
		grid.Vec3i{X: r, Y: s.Gen.Height - 1, Z: r},
	)
}

func (s *Store) InBounds(p grid.Vec3i) bool {
	return s.Bounds().Contains(p)
}

// GetBlock reads a cell, generating its chunk on first touch. Out-of-bounds
// cells read as air.
func (s *Store) GetBlock(p grid.Vec3i) uint16 {
	if !s.InBounds(p) {
		return s.Gen.Air
	}
	ch := s.GetOrGenChunk(grid.FloorDiv(p.X, Side), grid.FloorDiv(p.Y, Side), grid.FloorDiv(p.Z, Side))
	return ch.Get(grid.Mod(p.X, Side), grid.Mod(p.Y, Side), grid.Mod(p.Z, Side))
}

// SetBlock writes a cell; out-of-bounds writes are dropped.
func (s *Store) SetBlock(p grid.Vec3i, b uint16) {
	if !s.InBounds(p) {
		return
	}
	ch := s.GetOrGenChunk(grid.FloorDiv(p.X, Side), grid.FloorDiv(p.Y, Side), grid.FloorDiv(p.Z, Side))
	ch.Set(grid.Mod(p.X, Side), grid.Mod(p.Y, Side), grid.Mod(p.Z, Side), b)
}

// Lookup adapts the store to the scanner's lookup capability. The returned
// function reads through GetBlock and is safe for concurrent use only while
// nothing writes the store, which is the query server's serialization job.
func (s *Store) Lookup() func(grid.Vec3i) uint16 {
	return s.GetBlock
}

func (s *Store) LoadedChunkKeys() []ChunkKey {
	keys := make([]ChunkKey, 0, len(s.Chunks))
	for k := range s.Chunks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CX != keys[j].CX {
			return keys[i].CX < keys[j].CX
		}
		if keys[i].CY != keys[j].CY {
			return keys[i].CY < keys[j].CY
		}
		return keys[i].CZ < keys[j].CZ
	})
	return keys
}

func (s *Store) GetOrGenChunk(cx, cy, cz int) *Chunk {
	k := ChunkKey{CX: cx, CY: cy, CZ: cz}
	if ch, ok := s.Chunks[k]; ok {
		return ch
	}
	ch := &Chunk{
		CX:     cx,
		CY:     cy,
		CZ:     cz,
		Blocks: make([]uint16, Side*Side*Side),
	}
	s.generateChunk(ch)
	ch.dirty = true
	_ = ch.Digest()
	s.Chunks[k] = ch
	return ch
}
