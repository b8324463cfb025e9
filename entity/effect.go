package entity

import (
	"fmt"

	"gridkit.dev/ident"
)

// Effect is a timed status effect. Duration counts down in ticks; an effect
// at duration 0 is expired.
type Effect struct {
	ID        ident.Identifier `json:"id"`
	Duration  int              `json:"duration"`
	Amplifier int              `json:"amplifier"`
}

// ApplyEffect adds fx to the entity. A stronger effect replaces a weaker
// one outright; an equal-strength effect refreshes the duration if longer;
// a weaker effect is ignored while the stronger one runs.
func (e *Entity) ApplyEffect(fx Effect) {
	if e == nil || fx.Duration <= 0 {
		return
	}
	for i, cur := range e.Effects {
		if cur.ID != fx.ID {
			continue
		}
		if fx.Amplifier > cur.Amplifier {
			e.Effects[i] = fx
		} else if fx.Amplifier == cur.Amplifier && fx.Duration > cur.Duration {
			e.Effects[i].Duration = fx.Duration
		}
		return
	}
	e.Effects = append(e.Effects, fx)
}

// HasEffect returns the active effect with the given id, if any.
func (e *Entity) HasEffect(id ident.Identifier) (Effect, bool) {
	if e == nil {
		return Effect{}, false
	}
	for _, fx := range e.Effects {
		if fx.ID == id {
			return fx, true
		}
	}
	return Effect{}, false
}

// TickEffects advances every effect by one tick and drops the expired ones.
func (e *Entity) TickEffects() {
	if e == nil || len(e.Effects) == 0 {
		return
	}
	out := e.Effects[:0]
	for _, fx := range e.Effects {
		fx.Duration--
		if fx.Duration > 0 {
			out = append(out, fx)
		}
	}
	e.Effects = out
}

// EffectBuilder assembles an Effect. Build fails on a zero id or
// non-positive duration instead of producing a dead effect.
type EffectBuilder struct {
	fx  Effect
	err error
}

func NewEffectBuilder() *EffectBuilder {
	return &EffectBuilder{}
}

func (b *EffectBuilder) ID(s string) *EffectBuilder {
	id, err := ident.Parse(s)
	if err != nil && b.err == nil {
		b.err = err
	}
	b.fx.ID = id
	return b
}

func (b *EffectBuilder) Duration(ticks int) *EffectBuilder {
	b.fx.Duration = ticks
	return b
}

func (b *EffectBuilder) Amplifier(n int) *EffectBuilder {
	b.fx.Amplifier = n
	return b
}

func (b *EffectBuilder) Build() (Effect, error) {
	if b.err != nil {
		return Effect{}, b.err
	}
	if b.fx.ID.IsZero() {
		return Effect{}, fmt.Errorf("effect builder: no id set")
	}
	if b.fx.Duration <= 0 {
		return Effect{}, fmt.Errorf("effect builder: duration %d", b.fx.Duration)
	}
	if b.fx.Amplifier < 0 {
		return Effect{}, fmt.Errorf("effect builder: amplifier %d", b.fx.Amplifier)
	}
	return b.fx, nil
}
