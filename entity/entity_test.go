package entity

import (
	"testing"

	"gridkit.dev/grid"
	"gridkit.dev/ident"
)

func mustEntity(t *testing.T, id string, kind string, at grid.Vec3i) *Entity {
	t.Helper()
	e, err := NewBuilder().ID(id).Kind(kind).At(at).Health(20, 20).Build()
	if err != nil {
		t.Fatalf("build %s: %v", id, err)
	}
	return e
}

func TestDamageHeal_Clamps(t *testing.T) {
	e := mustEntity(t, "E1", "zombie", grid.Vec3i{})
	if died := e.Damage(5); died {
		t.Fatalf("died at 15 hp")
	}
	e.Heal(100)
	if e.Health != 20 {
		t.Fatalf("heal overshot: %d", e.Health)
	}
	if died := e.Damage(25); !died {
		t.Fatalf("lethal hit not reported")
	}
	if e.Health != 0 {
		t.Fatalf("health %d after death", e.Health)
	}
	if e.Damage(1) {
		t.Fatalf("dead entity died again")
	}
}

func TestApplyEffect_StrongerReplacesWeakerRefreshes(t *testing.T) {
	speed := ident.MustParse("speed")
	e := mustEntity(t, "E1", "player", grid.Vec3i{})

	e.ApplyEffect(Effect{ID: speed, Duration: 100, Amplifier: 0})
	e.ApplyEffect(Effect{ID: speed, Duration: 10, Amplifier: 1})
	if fx, _ := e.HasEffect(speed); fx.Amplifier != 1 || fx.Duration != 10 {
		t.Fatalf("stronger effect did not replace: %+v", fx)
	}

	// Weaker is ignored while the stronger runs.
	e.ApplyEffect(Effect{ID: speed, Duration: 500, Amplifier: 0})
	if fx, _ := e.HasEffect(speed); fx.Amplifier != 1 {
		t.Fatalf("weaker effect overwrote: %+v", fx)
	}

	// Equal strength refreshes only when longer.
	e.ApplyEffect(Effect{ID: speed, Duration: 50, Amplifier: 1})
	if fx, _ := e.HasEffect(speed); fx.Duration != 50 {
		t.Fatalf("refresh failed: %+v", fx)
	}
	e.ApplyEffect(Effect{ID: speed, Duration: 5, Amplifier: 1})
	if fx, _ := e.HasEffect(speed); fx.Duration != 50 {
		t.Fatalf("shorter refresh applied: %+v", fx)
	}
}

func TestTickEffects_Expires(t *testing.T) {
	e := mustEntity(t, "E1", "player", grid.Vec3i{})
	e.ApplyEffect(Effect{ID: ident.MustParse("haste"), Duration: 2})
	e.TickEffects()
	if _, ok := e.HasEffect(ident.MustParse("haste")); !ok {
		t.Fatalf("effect expired one tick early")
	}
	e.TickEffects()
	if _, ok := e.HasEffect(ident.MustParse("haste")); ok {
		t.Fatalf("effect survived expiry")
	}
}

func TestWithin_RadiusAndFilter(t *testing.T) {
	all := []*Entity{
		mustEntity(t, "A", "zombie", grid.Vec3i{X: 1}),
		mustEntity(t, "B", "player", grid.Vec3i{X: 2}),
		mustEntity(t, "C", "zombie", grid.Vec3i{X: 50}),
	}
	got := Within(all, grid.Vec3i{}, 5, nil)
	if len(got) != 2 {
		t.Fatalf("within = %d entities", len(got))
	}
	players := Within(all, grid.Vec3i{}, 5, func(e *Entity) bool { return e.IsPlayer() })
	if len(players) != 1 || players[0].ID != "B" {
		t.Fatalf("filtered = %v", players)
	}
}

func TestNearest_TieBreaksByID(t *testing.T) {
	all := []*Entity{
		mustEntity(t, "B", "zombie", grid.Vec3i{X: 2}),
		mustEntity(t, "A", "zombie", grid.Vec3i{X: -2}),
	}
	e, ok := Nearest(all, grid.Vec3i{}, 5, nil)
	if !ok || e.ID != "A" {
		t.Fatalf("nearest = %+v (%v)", e, ok)
	}
}

func TestNearestPlayer_SkipsDead(t *testing.T) {
	dead := mustEntity(t, "P1", "player", grid.Vec3i{X: 1})
	dead.Damage(20)
	far := mustEntity(t, "P2", "player", grid.Vec3i{X: 4})
	all := []*Entity{dead, far, mustEntity(t, "M", "zombie", grid.Vec3i{})}

	e, ok := NearestPlayer(all, grid.Vec3i{}, 10)
	if !ok || e.ID != "P2" {
		t.Fatalf("nearest player = %+v (%v)", e, ok)
	}
}

func TestBuilder_Validates(t *testing.T) {
	if _, err := NewBuilder().Kind("zombie").Build(); err == nil {
		t.Fatalf("no-id build accepted")
	}
	if _, err := NewBuilder().ID("E").Build(); err == nil {
		t.Fatalf("no-kind build accepted")
	}
	if _, err := NewBuilder().ID("E").Kind("BAD KIND").Build(); err == nil {
		t.Fatalf("bad kind accepted")
	}
	if _, err := NewBuilder().ID("E").Kind("zombie").Health(30, 20).Build(); err == nil {
		t.Fatalf("health over max accepted")
	}
}
