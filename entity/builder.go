package entity

import (
	"fmt"

	"gridkit.dev/grid"
	"gridkit.dev/ident"
)

// Builder assembles an Entity through chained setters; Build validates
// instead of returning a half-formed record.
type Builder struct {
	e   Entity
	err error
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) ID(id string) *Builder {
	b.e.ID = id
	return b
}

func (b *Builder) Kind(s string) *Builder {
	id, err := ident.Parse(s)
	if err != nil && b.err == nil {
		b.err = err
	}
	b.e.Kind = id
	return b
}

func (b *Builder) Name(name string) *Builder {
	b.e.Name = name
	return b
}

func (b *Builder) Pos(p grid.Vec3d) *Builder {
	b.e.Pos = p
	return b
}

// At places the entity at the center of a grid cell.
func (b *Builder) At(p grid.Vec3i) *Builder {
	b.e.Pos = p.Center()
	return b
}

func (b *Builder) Health(cur, max int) *Builder {
	b.e.Health = cur
	b.e.MaxHealth = max
	return b
}

func (b *Builder) Effect(fx Effect) *Builder {
	b.e.Effects = append(b.e.Effects, fx)
	return b
}

func (b *Builder) Data(key string, v any) *Builder {
	b.e.Data = b.e.Data.Set(key, v)
	return b
}

func (b *Builder) Build() (*Entity, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.e.ID == "" {
		return nil, fmt.Errorf("entity builder: no id set")
	}
	if b.e.Kind.IsZero() {
		return nil, fmt.Errorf("entity builder: no kind set")
	}
	if b.e.MaxHealth > 0 && b.e.Health > b.e.MaxHealth {
		return nil, fmt.Errorf("entity builder: health %d exceeds max %d", b.e.Health, b.e.MaxHealth)
	}
	e := b.e
	return &e, nil
}
