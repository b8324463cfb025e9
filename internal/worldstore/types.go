// Package worldstore keeps sparse voxel world state in 16x16x16 chunk
// sections, generated deterministically on first touch. It supplies the
// cell-lookup capability the scanner and the query server run against.
package worldstore

import (
	"crypto/sha256"
	"encoding/binary"
)

// Side is the edge length of a chunk section.
const Side = 16

type ChunkKey struct {
	CX int
	CY int
	CZ int
}

type Chunk struct {
	CX, CY, CZ int
	Blocks     []uint16 // len = Side^3

	dirty bool
	hash  [32]byte
}

func (c *Chunk) index(x, y, z int) int {
	return x + z*Side + y*Side*Side
}

func (c *Chunk) Get(x, y, z int) uint16 {
	return c.Blocks[c.index(x, y, z)]
}

func (c *Chunk) Set(x, y, z int, b uint16) {
	i := c.index(x, y, z)
	if c.Blocks[i] == b {
		return
	}
	c.Blocks[i] = b
	c.dirty = true
}

// ReplaceBlocks overwrites the whole section, e.g. when restoring from a
// snapshot.
func (c *Chunk) ReplaceBlocks(blocks []uint16) {
	copy(c.Blocks, blocks)
	c.dirty = true
}

func (c *Chunk) Digest() [32]byte {
	if c.dirty || c.hash == ([32]byte{}) {
		h := sha256.New()
		var tmp [2]byte
		for _, v := range c.Blocks {
			binary.LittleEndian.PutUint16(tmp[:], v)
			h.Write(tmp[:])
		}
		copy(c.hash[:], h.Sum(nil))
		c.dirty = false
	}
	return c.hash
}

// Gen holds the deterministic generation parameters. Block ids come from
// the loaded block palette so generated worlds agree with the catalogs.
type Gen struct {
	Seed      int64
	BoundaryR int // horizontal world half-extent in blocks; 0 = unbounded
	Height    int // world height in blocks; y is valid on [0, Height)

	SurfaceY int // top of the dirt layer

	OreGrid         int // ore cluster cell size
	OreRadius       int // ore cluster radius
	OreProbPermille uint64

	Air     uint16
	Bedrock uint16
	Stone   uint16
	Dirt    uint16
	Grass   uint16
	CoalOre uint16
	IronOre uint16
}

type Store struct {
	Gen    Gen
	Chunks map[ChunkKey]*Chunk
}

func New(gen Gen) *Store {
	if gen.Height <= 0 {
		gen.Height = 256
	}
	if gen.SurfaceY <= 0 {
		gen.SurfaceY = 64
	}
	return &Store{
		Gen:    gen,
		Chunks: map[ChunkKey]*Chunk{},
	}
}
