package grid

import "math"

// Region is an inclusive axis-aligned box of grid cells. Min <= Max holds
// component-wise for every Region built through Cube or Box.
type Region struct {
	Min Vec3i
	Max Vec3i
}

// Cube returns the axis-aligned cube of side 2*radius+1 centered on center.
// A negative radius degenerates to the single cell at center.
func Cube(center Vec3i, radius int) Region {
	if radius < 0 {
		radius = 0
	}
	d := Vec3i{X: radius, Y: radius, Z: radius}
	return Region{Min: center.Sub(d), Max: center.Add(d)}
}

// Box returns the inclusive box spanned by two corners. The corners may be
// given in any order; min/max are taken per axis.
func Box(a, b Vec3i) Region {
	return Region{
		Min: Vec3i{X: minInt(a.X, b.X), Y: minInt(a.Y, b.Y), Z: minInt(a.Z, b.Z)},
		Max: Vec3i{X: maxInt(a.X, b.X), Y: maxInt(a.Y, b.Y), Z: maxInt(a.Z, b.Z)},
	}
}

func (r Region) Contains(p Vec3i) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y &&
		p.Z >= r.Min.Z && p.Z <= r.Max.Z
}

// Volume is the cell count of the region, saturating at math.MaxInt64 so a
// huge region can never wrap past a volume limit.
func (r Region) Volume() int64 {
	dx := int64(r.Max.X) - int64(r.Min.X) + 1
	dy := int64(r.Max.Y) - int64(r.Min.Y) + 1
	dz := int64(r.Max.Z) - int64(r.Min.Z) + 1
	// A wrapped difference shows up as non-positive; Min <= Max makes every
	// true dimension at least 1.
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return math.MaxInt64
	}
	if dx > math.MaxInt64/dy {
		return math.MaxInt64
	}
	v := dx * dy
	if v > math.MaxInt64/dz {
		return math.MaxInt64
	}
	return v * dz
}

// Clamp intersects r with bounds. The second return is false when the
// intersection is empty.
func (r Region) Clamp(bounds Region) (Region, bool) {
	out := Region{
		Min: Vec3i{X: maxInt(r.Min.X, bounds.Min.X), Y: maxInt(r.Min.Y, bounds.Min.Y), Z: maxInt(r.Min.Z, bounds.Min.Z)},
		Max: Vec3i{X: minInt(r.Max.X, bounds.Max.X), Y: minInt(r.Max.Y, bounds.Max.Y), Z: minInt(r.Max.Z, bounds.Max.Z)},
	}
	if out.Min.X > out.Max.X || out.Min.Y > out.Max.Y || out.Min.Z > out.Max.Z {
		return Region{}, false
	}
	return out, true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
