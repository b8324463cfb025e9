// Package entity holds the entity records the query surface operates on:
// identity, position, health, status effects and free-form tag data.
package entity

import (
	"gridkit.dev/grid"
	"gridkit.dev/ident"
	"gridkit.dev/tag"
)

// KindPlayer is the entity kind proximity helpers treat as a player.
var KindPlayer = ident.MustParse("player")

type Entity struct {
	ID        string           `json:"id"`
	Kind      ident.Identifier `json:"kind"`
	Name      string           `json:"name,omitempty"`
	Pos       grid.Vec3d       `json:"pos"`
	Health    int              `json:"health"`
	MaxHealth int              `json:"max_health"`
	Effects   []Effect         `json:"effects,omitempty"`
	Data      tag.Compound     `json:"data,omitempty"`
}

func (e *Entity) IsPlayer() bool { return e != nil && e.Kind == KindPlayer }

func (e *Entity) Alive() bool { return e != nil && e.Health > 0 }

// Block is the grid cell the entity currently occupies.
func (e *Entity) Block() grid.Vec3i { return e.Pos.Block() }

// Damage lowers health, clamping at zero, and returns whether the entity
// died from this hit.
func (e *Entity) Damage(n int) bool {
	if e == nil || n <= 0 || e.Health <= 0 {
		return false
	}
	e.Health -= n
	if e.Health <= 0 {
		e.Health = 0
		return true
	}
	return false
}

// Heal raises health, clamping at MaxHealth.
func (e *Entity) Heal(n int) {
	if e == nil || n <= 0 {
		return
	}
	e.Health += n
	if e.MaxHealth > 0 && e.Health > e.MaxHealth {
		e.Health = e.MaxHealth
	}
}
