package tag

import (
	"encoding/json"
	"testing"
)

func TestAccessors_DefaultsOnMissingAndWrongType(t *testing.T) {
	c := Compound{"n": 3, "s": "hi", "b": true, "f": 2.5}

	if got := c.Int("n", 0); got != 3 {
		t.Fatalf("Int = %d", got)
	}
	if got := c.Int("missing", 42); got != 42 {
		t.Fatalf("Int default = %d", got)
	}
	if got := c.Int("s", 7); got != 7 {
		t.Fatalf("Int wrong-type = %d", got)
	}
	if got := c.String("s", ""); got != "hi" {
		t.Fatalf("String = %q", got)
	}
	if got := c.Bool("b", false); !got {
		t.Fatalf("Bool = %v", got)
	}
	if got := c.Float("f", 0); got != 2.5 {
		t.Fatalf("Float = %v", got)
	}
	if got := c.Float("n", 0); got != 3.0 {
		t.Fatalf("Float from int = %v", got)
	}
}

func TestNilCompound_IsSafe(t *testing.T) {
	var c Compound
	if c.Int("x", 9) != 9 || c.String("x", "d") != "d" || c.Has("x") {
		t.Fatalf("nil compound accessors broken")
	}
	if c.Compound("x") != nil {
		t.Fatalf("nested on nil should be nil")
	}
	// Reading through a missing nested compound stays safe.
	if c.Compound("x").Int("y", 5) != 5 {
		t.Fatalf("chained default broken")
	}
	c.Delete("x") // no-op, must not panic
}

func TestSet_AllocatesWhenNil(t *testing.T) {
	var c Compound
	c = c.Set("k", 1)
	if c.Int("k", 0) != 1 {
		t.Fatalf("set on nil lost value")
	}
}

func TestJSONRoundTrip_NumbersStayReadable(t *testing.T) {
	c := Compound{"damage": 12, "name": "pick", "meta": Compound{"tier": 2}}
	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Compound
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// JSON turned ints into float64; accessors must hide that.
	if back.Int("damage", 0) != 12 {
		t.Fatalf("damage = %d", back.Int("damage", 0))
	}
	if back.Compound("meta").Int("tier", 0) != 2 {
		t.Fatalf("nested tier lost")
	}
	if !Equal(c, back) {
		t.Fatalf("Equal rejects round-tripped tree")
	}
}

func TestCopy_IsDeep(t *testing.T) {
	c := Compound{"meta": Compound{"tier": 2}, "list": []any{1, 2}}
	d := c.Copy()
	d.Compound("meta").Set("tier", 9)
	d.List("list")[0] = 99
	if c.Compound("meta").Int("tier", 0) != 2 {
		t.Fatalf("copy shares nested compound")
	}
	if c.List("list")[0] != 1 {
		t.Fatalf("copy shares list")
	}
}

func TestEqual_Basics(t *testing.T) {
	if !Equal(nil, nil) {
		t.Fatalf("nil != nil")
	}
	if Equal(Compound{"a": 1}, Compound{"a": 2}) {
		t.Fatalf("different values equal")
	}
	if Equal(Compound{"a": 1}, Compound{"a": 1, "b": 2}) {
		t.Fatalf("different key sets equal")
	}
}
