package schemaref

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInlineSimpleRef(t *testing.T) {
	doc := map[string]any{
		"$defs": map[string]any{
			"leaf": map[string]any{"type": "string"},
		},
		"type":       "object",
		"properties": map[string]any{"v": map[string]any{"$ref": "#/$defs/leaf"}},
	}
	r, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := r.CheckAcyclic(); err != nil {
		t.Fatalf("CheckAcyclic: %v", err)
	}
	inlined, err := Inline(doc, r)
	if err != nil {
		t.Fatalf("Inline: %v", err)
	}
	m := inlined.(map[string]any)
	props := m["properties"].(map[string]any)
	v := props["v"].(map[string]any)
	want := map[string]any{"type": "string"}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("inlined body mismatch (-want +got):\n%s", diff)
	}
}

func TestInlineSharedDefinitionInlinedOnce(t *testing.T) {
	doc := map[string]any{
		"$defs": map[string]any{
			"leaf": map[string]any{"type": "integer"},
		},
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"$ref": "#/$defs/leaf"},
			"b": map[string]any{"$ref": "#/$defs/leaf"},
		},
	}
	r, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	inlined, err := Inline(doc, r)
	if err != nil {
		t.Fatalf("Inline: %v", err)
	}
	props := inlined.(map[string]any)["properties"].(map[string]any)
	if diff := cmp.Diff(props["a"], props["b"]); diff != "" {
		t.Fatalf("expected both refs to inline to the same body (-a +b):\n%s", diff)
	}
}

func TestInlineMissingRefFails(t *testing.T) {
	doc := map[string]any{
		"type":       "object",
		"properties": map[string]any{"v": map[string]any{"$ref": "#/$defs/missing"}},
	}
	r, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := Inline(doc, r); err == nil {
		t.Fatal("want error for unresolved reference")
	}
}
