// Package grid provides the integer voxel-grid value types shared by the
// rest of the module: coordinates, axis-aligned regions and the small
// deterministic math helpers world generation relies on.
package grid

// Vec3i is an immutable integer grid coordinate. Equality is by value.
type Vec3i struct {
	X int
	Y int
	Z int
}

func (v Vec3i) ToArray() [3]int { return [3]int{v.X, v.Y, v.Z} }

func (v Vec3i) Add(o Vec3i) Vec3i { return Vec3i{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }

func (v Vec3i) Sub(o Vec3i) Vec3i { return Vec3i{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z} }

// DistSq is the squared Euclidean distance between a and b. Kept in int64 so
// world-scale coordinates cannot overflow.
func DistSq(a, b Vec3i) int64 {
	dx := int64(a.X - b.X)
	dy := int64(a.Y - b.Y)
	dz := int64(a.Z - b.Z)
	return dx*dx + dy*dy + dz*dz
}

// Vec3d is a double-precision position, used for entities that move between
// cells. Block() truncates toward negative infinity so that -0.5 maps to
// cell -1, not 0.
type Vec3d struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3d) Add(o Vec3d) Vec3d { return Vec3d{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }

func (v Vec3d) Block() Vec3i {
	return Vec3i{X: floorF(v.X), Y: floorF(v.Y), Z: floorF(v.Z)}
}

func (v Vec3i) Center() Vec3d {
	return Vec3d{X: float64(v.X) + 0.5, Y: float64(v.Y) + 0.5, Z: float64(v.Z) + 0.5}
}

func DistSqF(a, b Vec3d) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return dx*dx + dy*dy + dz*dz
}

func floorF(f float64) int {
	i := int(f)
	if f < 0 && float64(i) != f {
		i--
	}
	return i
}
