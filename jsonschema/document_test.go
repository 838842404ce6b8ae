package jsonschema

import "testing"

func TestParseInlinesRefs(t *testing.T) {
	d, err := Parse([]byte(`{
		"$defs": {"leaf": {"type": "string"}},
		"type": "object",
		"properties": {"v": {"$ref": "#/$defs/leaf"}}
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root, ok := d.Object()
	if !ok {
		t.Fatal("expected object schema")
	}
	props := root["properties"].(map[string]any)
	v := props["v"].(map[string]any)
	if v["type"] != "string" {
		t.Fatalf("expected inlined leaf schema, got %v", v)
	}
}

func TestParseRejectsCycles(t *testing.T) {
	_, err := Parse([]byte(`{
		"$defs": {"node": {"properties": {"next": {"$ref": "#/$defs/node"}}}},
		"$ref": "#/$defs/node"
	}`))
	if err == nil {
		t.Fatal("want error for cyclic schema")
	}
}
