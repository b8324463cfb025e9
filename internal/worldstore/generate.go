package worldstore

import "gridkit.dev/grid"

// generateChunk fills a fresh section from the seed: bedrock floor, stone up
// to the dirt band, dirt capped by grass at the surface, air above, with
// hashed ore clusters sprinkled through the stone.
func (s *Store) generateChunk(ch *Chunk) {
	baseX := ch.CX * Side
	baseY := ch.CY * Side
	baseZ := ch.CZ * Side
	for ly := 0; ly < Side; ly++ {
		y := baseY + ly
		for lz := 0; lz < Side; lz++ {
			for lx := 0; lx < Side; lx++ {
				ch.Blocks[ch.index(lx, ly, lz)] = s.blockAt(baseX+lx, y, baseZ+lz)
			}
		}
	}
	ch.dirty = true
}

func (s *Store) blockAt(x, y, z int) uint16 {
	g := s.Gen
	switch {
	case y < 0 || y >= g.Height:
		return g.Air
	case y == 0:
		return g.Bedrock
	case y > g.SurfaceY:
		return g.Air
	case y == g.SurfaceY:
		return g.Grass
	case y >= g.SurfaceY-s.dirtDepth(x, z):
		return g.Dirt
	}
	if ore, ok := s.oreAt(x, y, z); ok {
		return ore
	}
	return g.Stone
}

// dirtDepth hashes the column to a dirt band of 2 to 4 blocks under the
// grass, so the stone line is not perfectly flat.
func (s *Store) dirtDepth(x, z int) int {
	return 2 + int(grid.Hash2(s.Gen.Seed, x, z)%3)
}

// oreAt deterministically places spherical ore clusters on a hashed grid,
// the same scheme terrain clustering used in the flat world but extended to
// three axes.
func (s *Store) oreAt(x, y, z int) (uint16, bool) {
	g := s.Gen
	if g.OreGrid <= 0 || g.OreRadius <= 0 || g.OreProbPermille == 0 {
		return 0, false
	}
	gx := grid.FloorDiv(x, g.OreGrid)
	gy := grid.FloorDiv(y, g.OreGrid)
	gz := grid.FloorDiv(z, g.OreGrid)
	r2 := g.OreRadius * g.OreRadius

	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				cgx := gx + dx
				cgy := gy + dy
				cgz := gz + dz
				h := grid.Hash3(g.Seed, cgx, cgy, cgz)
				if h%1000 >= g.OreProbPermille {
					continue
				}

				// Deterministically place the cluster center inside the cell.
				ox := int((h >> 10) % uint64(g.OreGrid))
				oy := int((h >> 20) % uint64(g.OreGrid))
				oz := int((h >> 30) % uint64(g.OreGrid))
				cx := cgx*g.OreGrid + ox
				cy := cgy*g.OreGrid + oy
				cz := cgz*g.OreGrid + oz

				ddx := x - cx
				ddy := y - cy
				ddz := z - cz
				if ddx*ddx+ddy*ddy+ddz*ddz > r2 {
					continue
				}
				// Cluster kind from a second hash bit-slice: deeper cells
				// favor iron.
				if (h>>40)&1 == 0 || y > g.SurfaceY/2 {
					return g.CoalOre, true
				}
				return g.IronOre, true
			}
		}
	}
	return 0, false
}
