package text

import (
	"encoding/json"
	"testing"
)

func TestBuilder_RunsAndStyles(t *testing.T) {
	n, err := NewBuilder().
		Append("You found ").
		Append("iron ore").Color(Gold).Bold().
		Append("!").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if n.Plain() != "You found iron ore!" {
		t.Fatalf("plain = %q", n.Plain())
	}
	if len(n.Extra) != 2 {
		t.Fatalf("extra runs = %d", len(n.Extra))
	}
	if n.Extra[0].Color != Gold || !n.Extra[0].Bold {
		t.Fatalf("style not applied to last run: %+v", n.Extra[0])
	}
	if n.Extra[1].Bold {
		t.Fatalf("style leaked onto later run")
	}
}

func TestBuilder_UnknownColorFailsBuild(t *testing.T) {
	if _, err := NewBuilder().Append("x").Color("chartreuse").Build(); err == nil {
		t.Fatalf("unknown color accepted")
	}
}

func TestBuilder_EmptyBuildsEmptyNode(t *testing.T) {
	n, err := NewBuilder().Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if n.Plain() != "" {
		t.Fatalf("plain = %q", n.Plain())
	}
}

func TestNode_JSONOmitsUnsetStyles(t *testing.T) {
	n, err := NewBuilder().Append("hi").Color(Red).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	b, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"text":"hi","color":"red"}`
	if string(b) != want {
		t.Fatalf("json = %s, want %s", b, want)
	}
}

func TestNode_NilPlain(t *testing.T) {
	var n *Node
	if n.Plain() != "" {
		t.Fatalf("nil plain broken")
	}
}
