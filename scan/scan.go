// Package scan enumerates cells of a bounded grid region through a
// caller-supplied predicate over an injected cell lookup.
//
// All functions walk the region in row-major order: x ascending outermost,
// then y, then z. Callers depend on that ordering for deterministic results.
// The scanner holds no state; it is safe for concurrent use iff the injected
// lookup is. Panics from lookup or pred propagate unmodified.
package scan

import "gridkit.dev/grid"

// Lookup maps a cell coordinate to its externally-owned state. Whatever it
// returns is handed to the predicate as-is, sentinels included.
type Lookup[S any] func(grid.Vec3i) S

type Pred[S any] func(S) bool

// Each walks r in row-major order and calls yield for every matching cell.
// Returning false from yield stops the walk.
func Each[S any](r grid.Region, lookup Lookup[S], pred Pred[S], yield func(grid.Vec3i) bool) {
	for x := r.Min.X; x <= r.Max.X; x++ {
		for y := r.Min.Y; y <= r.Max.Y; y++ {
			for z := r.Min.Z; z <= r.Max.Z; z++ {
				p := grid.Vec3i{X: x, Y: y, Z: z}
				if !pred(lookup(p)) {
					continue
				}
				if !yield(p) {
					return
				}
			}
		}
	}
}

func FindAll[S any](r grid.Region, lookup Lookup[S], pred Pred[S]) []grid.Vec3i {
	var out []grid.Vec3i
	Each(r, lookup, pred, func(p grid.Vec3i) bool {
		out = append(out, p)
		return true
	})
	return out
}

func Count[S any](r grid.Region, lookup Lookup[S], pred Pred[S]) int {
	n := 0
	Each(r, lookup, pred, func(grid.Vec3i) bool {
		n++
		return true
	})
	return n
}

// FindNearest returns the matching cell closest to center within the cube of
// the given radius. Distance is Euclidean; ties go to the earlier cell in
// row-major order, which the strict < preserves.
func FindNearest[S any](center grid.Vec3i, radius int, lookup Lookup[S], pred Pred[S]) (grid.Vec3i, bool) {
	var best grid.Vec3i
	var bestD int64
	found := false
	Each(grid.Cube(center, radius), lookup, pred, func(p grid.Vec3i) bool {
		d := grid.DistSq(center, p)
		if !found || d < bestD {
			best = p
			bestD = d
			found = true
		}
		return bestD != 0
	})
	return best, found
}

func First[S any](r grid.Region, lookup Lookup[S], pred Pred[S]) (grid.Vec3i, bool) {
	var out grid.Vec3i
	found := false
	Each(r, lookup, pred, func(p grid.Vec3i) bool {
		out = p
		found = true
		return false
	})
	return out, found
}
