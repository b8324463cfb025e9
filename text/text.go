// Package text models styled chat/UI text as a tree of runs, with a fluent
// builder for assembling it.
package text

import (
	"fmt"
	"strings"
)

// Color is one of the named chat colors. The empty string means "inherit".
type Color string

const (
	Black  Color = "black"
	Blue   Color = "blue"
	Green  Color = "green"
	Aqua   Color = "aqua"
	Red    Color = "red"
	Purple Color = "purple"
	Gold   Color = "gold"
	Gray   Color = "gray"
	White  Color = "white"
	Yellow Color = "yellow"
)

var knownColors = map[Color]struct{}{
	Black: {}, Blue: {}, Green: {}, Aqua: {}, Red: {},
	Purple: {}, Gold: {}, Gray: {}, White: {}, Yellow: {},
}

func (c Color) Valid() bool {
	if c == "" {
		return true
	}
	_, ok := knownColors[c]
	return ok
}

// Node is one styled run plus trailing sibling runs. The JSON shape follows
// the usual chat-component convention: style fields are omitted when unset.
type Node struct {
	Text      string  `json:"text"`
	Color     Color   `json:"color,omitempty"`
	Bold      bool    `json:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty"`
	Underline bool    `json:"underline,omitempty"`
	Extra     []*Node `json:"extra,omitempty"`
}

// Plain flattens the tree to its unstyled text.
func (n *Node) Plain() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	n.appendPlain(&sb)
	return sb.String()
}

func (n *Node) appendPlain(sb *strings.Builder) {
	sb.WriteString(n.Text)
	for _, e := range n.Extra {
		e.appendPlain(sb)
	}
}

// Builder assembles a Node tree left to right. Style setters apply to the
// most recently appended run.
type Builder struct {
	root *Node
	cur  *Node
	err  error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Append starts a new unstyled run.
func (b *Builder) Append(s string) *Builder {
	n := &Node{Text: s}
	if b.root == nil {
		b.root = n
	} else {
		b.root.Extra = append(b.root.Extra, n)
	}
	b.cur = n
	return b
}

func (b *Builder) Color(c Color) *Builder {
	if !c.Valid() && b.err == nil {
		b.err = fmt.Errorf("text builder: unknown color %q", string(c))
	}
	if b.cur != nil {
		b.cur.Color = c
	}
	return b
}

func (b *Builder) Bold() *Builder {
	if b.cur != nil {
		b.cur.Bold = true
	}
	return b
}

func (b *Builder) Italic() *Builder {
	if b.cur != nil {
		b.cur.Italic = true
	}
	return b
}

func (b *Builder) Underline() *Builder {
	if b.cur != nil {
		b.cur.Underline = true
	}
	return b
}

func (b *Builder) Build() (*Node, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.root == nil {
		return &Node{}, nil
	}
	return b.root, nil
}
