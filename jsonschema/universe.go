package jsonschema

import "github.com/jsound-go/jsound/jsonval"

// BuildUniverse seals the Keys universe for a subsumption check: the
// union of every property name occurring in either schema, plus keys
// appearing in const/enum object literals (spec §3 "the union of
// every property name occurring in either schema (recursively, after
// inlining)"). MaxArrayLen comes from Options, not from the schema
// text, per spec §6.
//
// Grounded on the recursive-walk shape of
// _examples/original_source's FiniteKeyUniverse/UniverseExtractor.
func BuildUniverse(maxArrayLen int, docs ...*Document) *jsonval.Universe {
	keys := make(map[string]bool)
	for _, d := range docs {
		if d == nil {
			continue
		}
		collectKeys(d.Raw, keys)
	}
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	return jsonval.NewUniverse(out, maxArrayLen)
}

func collectKeys(node any, keys map[string]bool) {
	v, ok := node.(map[string]any)
	if !ok {
		return
	}
	if props, ok := v["properties"].(map[string]any); ok {
		for k, sub := range props {
			keys[k] = true
			collectKeys(sub, keys)
		}
	}
	if req, ok := v["required"].([]any); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				keys[s] = true
			}
		}
	}
	if dr, ok := v["dependentRequired"].(map[string]any); ok {
		for k, arr := range dr {
			keys[k] = true
			if a, ok := arr.([]any); ok {
				for _, x := range a {
					if s, ok := x.(string); ok {
						keys[s] = true
					}
				}
			}
		}
	}
	if ds, ok := v["dependentSchemas"].(map[string]any); ok {
		for k, sub := range ds {
			keys[k] = true
			collectKeys(sub, keys)
		}
	}
	if ap, ok := v["additionalProperties"].(map[string]any); ok {
		collectKeys(ap, keys)
	}
	if pp, ok := v["patternProperties"].(map[string]any); ok {
		for _, sub := range pp {
			collectKeys(sub, keys)
		}
	}
	for _, kw := range []string{"allOf", "anyOf", "oneOf"} {
		if arr, ok := v[kw].([]any); ok {
			for _, sub := range arr {
				collectKeys(sub, keys)
			}
		}
	}
	for _, kw := range []string{"not", "if", "then", "else", "items", "contains"} {
		if sub, ok := v[kw]; ok {
			collectKeys(sub, keys)
		}
	}
	if pi, ok := v["prefixItems"].([]any); ok {
		for _, sub := range pi {
			collectKeys(sub, keys)
		}
	}
	if c, ok := v["const"]; ok {
		collectLiteralKeys(c, keys)
	}
	if e, ok := v["enum"].([]any); ok {
		for _, lit := range e {
			collectLiteralKeys(lit, keys)
		}
	}
}

func collectLiteralKeys(v any, keys map[string]bool) {
	switch t := v.(type) {
	case map[string]any:
		for k, sub := range t {
			keys[k] = true
			collectLiteralKeys(sub, keys)
		}
	case []any:
		for _, x := range t {
			collectLiteralKeys(x, keys)
		}
	}
}
