package jsonschema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	d, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return d
}

func TestBuildUniverseUnionsBothSides(t *testing.T) {
	p := mustParse(t, `{"type":"object","required":["contact"],"properties":{"contact":{"type":"string"}}}`)
	c := mustParse(t, `{"type":"object","properties":{"email":{"type":"string"}}}`)
	u := BuildUniverse(8, p, c)
	want := []string{"contact", "email"}
	if diff := cmp.Diff(want, u.Keys); diff != "" {
		t.Fatalf("universe keys mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildUniverseIncludesConstObjectKeys(t *testing.T) {
	d := mustParse(t, `{"const":{"a":1,"b":2}}`)
	u := BuildUniverse(8, d)
	if !u.HasKey("a") || !u.HasKey("b") {
		t.Fatalf("expected const object keys in universe, got %v", u.Keys)
	}
}

func TestBuildUniverseWalksPatternPropertiesValueSchemas(t *testing.T) {
	d := mustParse(t, `{
		"type": "object",
		"patternProperties": {
			"^x-": {
				"type": "object",
				"required": ["inner"],
				"properties": {"inner": {"type": "string"}},
				"additionalProperties": false
			}
		}
	}`)
	u := BuildUniverse(8, d)
	if !u.HasKey("inner") {
		t.Fatalf("expected key nested inside a patternProperties value-schema in universe, got %v", u.Keys)
	}
}
