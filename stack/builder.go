package stack

import (
	"fmt"

	"gridkit.dev/ident"
)

// Builder assembles a Stack through chained setters. Errors are collected
// and reported by Build, so chains stay unconditional.
type Builder struct {
	s   Stack
	err error
}

func NewBuilder() *Builder {
	return &Builder{s: Stack{Count: 1}}
}

func (b *Builder) Item(s string) *Builder {
	id, err := ident.Parse(s)
	if err != nil && b.err == nil {
		b.err = err
	}
	b.s.Item = id
	return b
}

func (b *Builder) ID(id ident.Identifier) *Builder {
	b.s.Item = id
	return b
}

func (b *Builder) Count(n int) *Builder {
	b.s.Count = n
	return b
}

// Tag sets one key on the stack's tag compound, allocating it on first use.
func (b *Builder) Tag(key string, v any) *Builder {
	b.s.Tags = b.s.Tags.Set(key, v)
	return b
}

func (b *Builder) Name(name string) *Builder {
	return b.Tag("name", name)
}

func (b *Builder) Damage(d int) *Builder {
	return b.Tag("damage", d)
}

func (b *Builder) Build() (Stack, error) {
	if b.err != nil {
		return Stack{}, b.err
	}
	if b.s.Item.IsZero() {
		return Stack{}, fmt.Errorf("stack builder: no item set")
	}
	if b.s.Count <= 0 {
		return Stack{}, fmt.Errorf("stack builder: count %d", b.s.Count)
	}
	return b.s, nil
}
