package grid

import (
	"math"
	"testing"
)

func TestCube_NegativeRadiusDegeneratesToCenter(t *testing.T) {
	r := Cube(Vec3i{X: 3, Y: -2, Z: 7}, -1)
	want := Vec3i{X: 3, Y: -2, Z: 7}
	if r.Min != want || r.Max != want {
		t.Fatalf("cube(-1) = %+v, want single cell %+v", r, want)
	}
	if r.Volume() != 1 {
		t.Fatalf("volume = %d, want 1", r.Volume())
	}
}

func TestBox_NormalizesUnsortedCorners(t *testing.T) {
	a := Box(Vec3i{X: 5, Y: 5, Z: 5}, Vec3i{X: 1, Y: 1, Z: 1})
	b := Box(Vec3i{X: 1, Y: 1, Z: 1}, Vec3i{X: 5, Y: 5, Z: 5})
	if a != b {
		t.Fatalf("box not normalized: %+v vs %+v", a, b)
	}
	// Mixed per-axis ordering normalizes per axis, not per corner.
	c := Box(Vec3i{X: 5, Y: 1, Z: 5}, Vec3i{X: 1, Y: 5, Z: 1})
	if c != b {
		t.Fatalf("mixed corners not normalized: %+v", c)
	}
}

func TestRegion_VolumeAndContains(t *testing.T) {
	r := Cube(Vec3i{}, 1)
	if r.Volume() != 27 {
		t.Fatalf("volume = %d, want 27", r.Volume())
	}
	if !r.Contains(Vec3i{X: 1, Y: -1, Z: 0}) {
		t.Fatalf("expected corner-adjacent cell inside")
	}
	if r.Contains(Vec3i{X: 2, Y: 0, Z: 0}) {
		t.Fatalf("expected cell outside radius")
	}
}

func TestRegion_VolumeSaturates(t *testing.T) {
	// 2^31 x 4 x 2^31 cells is 2^64: plain multiplication wraps to 0 and
	// slips under any volume limit.
	r := Box(
		Vec3i{X: -(1 << 30), Y: 0, Z: -(1 << 30)},
		Vec3i{X: 1<<30 - 1, Y: 3, Z: 1<<30 - 1},
	)
	if got := r.Volume(); got != math.MaxInt64 {
		t.Fatalf("volume = %d, want saturation at MaxInt64", got)
	}

	// A thin region with one long axis still reports its exact count.
	thin := Box(Vec3i{X: 0, Y: 0, Z: 0}, Vec3i{X: 1<<24 - 1, Y: 0, Z: 0})
	if got := thin.Volume(); got != 1<<24 {
		t.Fatalf("thin volume = %d, want %d", got, 1<<24)
	}

	// Extreme corners wrap the per-axis difference itself.
	full := Region{
		Min: Vec3i{X: math.MinInt, Y: math.MinInt, Z: math.MinInt},
		Max: Vec3i{X: math.MaxInt, Y: math.MaxInt, Z: math.MaxInt},
	}
	if got := full.Volume(); got != math.MaxInt64 {
		t.Fatalf("full-range volume = %d, want saturation at MaxInt64", got)
	}
}

func TestRegion_Clamp(t *testing.T) {
	r := Box(Vec3i{X: -10, Y: 0, Z: -10}, Vec3i{X: 10, Y: 4, Z: 10})
	bounds := Box(Vec3i{X: 0, Y: 0, Z: 0}, Vec3i{X: 4, Y: 255, Z: 4})
	got, ok := r.Clamp(bounds)
	if !ok {
		t.Fatalf("clamp reported empty intersection")
	}
	want := Box(Vec3i{X: 0, Y: 0, Z: 0}, Vec3i{X: 4, Y: 4, Z: 4})
	if got != want {
		t.Fatalf("clamp = %+v, want %+v", got, want)
	}

	if _, ok := r.Clamp(Box(Vec3i{X: 100, Y: 0, Z: 0}, Vec3i{X: 200, Y: 0, Z: 0})); ok {
		t.Fatalf("disjoint clamp should report empty")
	}
}

func TestVec3d_BlockFloors(t *testing.T) {
	if got := (Vec3d{X: -0.5, Y: 1.9, Z: 0.0}).Block(); got != (Vec3i{X: -1, Y: 1, Z: 0}) {
		t.Fatalf("block = %+v", got)
	}
}

func TestFloorDivMod(t *testing.T) {
	if FloorDiv(-1, 16) != -1 {
		t.Fatalf("FloorDiv(-1,16) = %d", FloorDiv(-1, 16))
	}
	if Mod(-1, 16) != 15 {
		t.Fatalf("Mod(-1,16) = %d", Mod(-1, 16))
	}
	if FloorDiv(47, 16) != 2 || Mod(47, 16) != 15 {
		t.Fatalf("positive case broken")
	}
}
