package catalogs

import "testing"

func load(t *testing.T) *Catalogs {
	t.Helper()
	c, err := Load("../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	return c
}

func TestLoad_AirIsPaletteZero(t *testing.T) {
	c := load(t)
	if c.Blocks.Palette[0] != "AIR" {
		t.Fatalf("palette[0] = %s", c.Blocks.Palette[0])
	}
	if c.Blocks.Index["AIR"] != 0 {
		t.Fatalf("AIR index = %d", c.Blocks.Index["AIR"])
	}
	// Remaining palette is sorted, so digests are stable across loads.
	for i := 2; i < len(c.Blocks.Palette); i++ {
		if c.Blocks.Palette[i-1] > c.Blocks.Palette[i] {
			t.Fatalf("palette not sorted at %d: %s > %s", i, c.Blocks.Palette[i-1], c.Blocks.Palette[i])
		}
	}
}

func TestLoad_DigestsStable(t *testing.T) {
	a := load(t)
	b := load(t)
	if a.Blocks.PaletteDigest != b.Blocks.PaletteDigest || a.Items.PaletteDigest != b.Items.PaletteDigest {
		t.Fatalf("digests differ across loads")
	}
	if a.Blocks.PaletteDigest == "" || a.Blocks.DefsDigest == "" {
		t.Fatalf("empty digest")
	}
}

func TestSolidBreakable(t *testing.T) {
	c := load(t)
	if c.Solid(c.Blocks.Index["AIR"]) {
		t.Fatalf("AIR solid")
	}
	if !c.Solid(c.Blocks.Index["STONE"]) {
		t.Fatalf("STONE not solid")
	}
	if c.Breakable(c.Blocks.Index["BEDROCK"]) {
		t.Fatalf("BEDROCK breakable")
	}
	// Out-of-palette ids stay conservatively solid and unbreakable.
	if !c.Solid(9999) || c.Breakable(9999) {
		t.Fatalf("unknown block defaults wrong")
	}
}

func TestDropFor(t *testing.T) {
	c := load(t)
	if got := c.DropFor(c.Blocks.Index["COAL_ORE"]); got != "COAL" {
		t.Fatalf("coal ore drops %q", got)
	}
	if got := c.DropFor(c.Blocks.Index["COBBLESTONE"]); got != "COBBLESTONE" {
		t.Fatalf("cobblestone drops %q", got)
	}
	if got := c.DropFor(c.Blocks.Index["AIR"]); got != "" {
		t.Fatalf("air drops %q", got)
	}
}

func TestMaxStack(t *testing.T) {
	c := load(t)
	if c.MaxStack("PICKAXE") != 1 {
		t.Fatalf("pickaxe max stack %d", c.MaxStack("PICKAXE"))
	}
	if c.MaxStack("COAL") != 64 {
		t.Fatalf("coal max stack %d", c.MaxStack("COAL"))
	}
	if c.MaxStack("UNKNOWN") != 64 {
		t.Fatalf("unknown max stack %d", c.MaxStack("UNKNOWN"))
	}
}
