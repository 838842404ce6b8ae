package schemaref

import "testing"

func TestDetectCyclesSelfLoop(t *testing.T) {
	doc := map[string]any{
		"$defs": map[string]any{
			"node": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"next": map[string]any{"$ref": "#/$defs/node"},
				},
			},
		},
	}
	r, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	cycles := r.DetectCycles()
	if len(cycles) != 1 {
		t.Fatalf("want 1 cycle, got %d: %v", len(cycles), cycles)
	}
	if err := r.CheckAcyclic(); err == nil {
		t.Fatal("want CheckAcyclic to reject a self-referencing schema")
	}
}

func TestDetectCyclesMutual(t *testing.T) {
	doc := map[string]any{
		"$defs": map[string]any{
			"a": map[string]any{"$ref": "#/$defs/b"},
			"b": map[string]any{"$ref": "#/$defs/a"},
		},
	}
	r, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	cycles := r.DetectCycles()
	if len(cycles) != 1 || len(cycles[0].Definitions) != 2 {
		t.Fatalf("want one 2-node cycle, got %v", cycles)
	}
}

func TestDetectCyclesAcyclic(t *testing.T) {
	doc := map[string]any{
		"$defs": map[string]any{
			"leaf": map[string]any{"type": "string"},
			"wrap": map[string]any{
				"type":       "object",
				"properties": map[string]any{"v": map[string]any{"$ref": "#/$defs/leaf"}},
			},
		},
	}
	r, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cycles := r.DetectCycles(); len(cycles) != 0 {
		t.Fatalf("want no cycles, got %v", cycles)
	}
	if err := r.CheckAcyclic(); err != nil {
		t.Fatalf("want acyclic schema to pass, got %v", err)
	}
}
