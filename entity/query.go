package entity

import "gridkit.dev/grid"

// Filter narrows a query to matching entities. A nil filter matches all.
type Filter func(*Entity) bool

// Within returns the entities inside radius (Euclidean, from cell centers)
// of the given cell, in input order.
func Within(all []*Entity, center grid.Vec3i, radius float64, keep Filter) []*Entity {
	if radius < 0 {
		radius = 0
	}
	c := center.Center()
	r2 := radius * radius
	var out []*Entity
	for _, e := range all {
		if e == nil {
			continue
		}
		if keep != nil && !keep(e) {
			continue
		}
		if grid.DistSqF(e.Pos, c) <= r2 {
			out = append(out, e)
		}
	}
	return out
}

// Nearest returns the matching entity closest to center within radius.
// Distance ties break toward the smaller entity ID so queries stay
// deterministic regardless of input order.
func Nearest(all []*Entity, center grid.Vec3i, radius float64, keep Filter) (*Entity, bool) {
	var best *Entity
	var bestD float64
	c := center.Center()
	for _, e := range Within(all, center, radius, keep) {
		d := grid.DistSqF(e.Pos, c)
		if best == nil || d < bestD || (d == bestD && e.ID < best.ID) {
			best = e
			bestD = d
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// NearestPlayer is Nearest restricted to living players.
func NearestPlayer(all []*Entity, center grid.Vec3i, radius float64) (*Entity, bool) {
	return Nearest(all, center, radius, func(e *Entity) bool {
		return e.IsPlayer() && e.Alive()
	})
}
