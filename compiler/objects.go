package compiler

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/jsound-go/jsound/jerr"
	"github.com/jsound-go/jsound/jsonval"
	"github.com/jsound-go/jsound/smt"
)

// compileObjectKeywords implements spec §4.3's object keywords. Every
// leaf is over the finite Keys universe sealed for this check (spec
// §3): there is no quantification over arbitrary property names, only
// a conjunction/sum over the known key list.
func (c *Compiler) compileObjectKeywords(v map[string]any, x smt.AST, path string, add func(smt.AST, error) error) error {
	properties, _ := v["properties"].(map[string]any)
	patternProperties, _ := v["patternProperties"].(map[string]any)

	if req, ok := v["required"].([]any); ok {
		if err := add(c.compileRequired(req, x, path)); err != nil {
			return err
		}
	}
	if len(properties) > 0 {
		if err := add(c.compileProperties(properties, x, path)); err != nil {
			return err
		}
	}
	matchedByPattern := make(map[string]bool)
	if len(patternProperties) > 0 {
		pred, matched, err := c.compilePatternProperties(patternProperties, x, path)
		if err != nil {
			return err
		}
		matchedByPattern = matched
		if err := add(pred, nil); err != nil {
			return err
		}
	}
	if ap, ok := v["additionalProperties"]; ok {
		if err := add(c.compileAdditionalProperties(ap, properties, matchedByPattern, x, path)); err != nil {
			return err
		}
	}
	if dr, ok := v["dependentRequired"].(map[string]any); ok {
		if err := add(c.compileDependentRequired(dr, x, path)); err != nil {
			return err
		}
	}
	if ds, ok := v["dependentSchemas"].(map[string]any); ok {
		if err := add(c.compileDependentSchemas(ds, x, path)); err != nil {
			return err
		}
	}
	if n, ok := v["minProperties"].(json.Number); ok {
		if err := add(c.propertyCountBound("minProperties", n, x, path, ge)); err != nil {
			return err
		}
	}
	if n, ok := v["maxProperties"].(json.Number); ok {
		if err := add(c.propertyCountBound("maxProperties", n, x, path, le)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) compileRequired(keys []any, x smt.AST, path string) (smt.AST, error) {
	var parts []smt.AST
	for _, k := range keys {
		key, ok := k.(string)
		if !ok {
			return smt.AST{}, jerr.New(jerr.InternalInvariant, path, fmt.Errorf("compiler: required entry is not a string"))
		}
		parts = append(parts, c.sort.Has(x, key))
	}
	var body smt.AST
	if len(parts) == 0 {
		body = c.ctx.BoolVal(true)
	} else {
		body = smt.And(parts...)
	}
	leaf := smt.Implies(c.sort.Is(jsonval.KindObj, x), body)
	return c.label(path, "required", leaf), nil
}

func (c *Compiler) compileProperties(properties map[string]any, x smt.AST, path string) (smt.AST, error) {
	var parts []smt.AST
	for key, schema := range properties {
		sub, err := c.compile(schema, c.sort.Val(x, key), childPath(path, fmt.Sprintf("properties/%s", key)))
		if err != nil {
			return smt.AST{}, err
		}
		parts = append(parts, smt.Implies(c.sort.Has(x, key), sub))
	}
	var body smt.AST
	if len(parts) == 0 {
		body = c.ctx.BoolVal(true)
	} else {
		body = smt.And(parts...)
	}
	leaf := smt.Implies(c.sort.Is(jsonval.KindObj, x), body)
	return c.label(path, "properties", leaf), nil
}

// compilePatternProperties statically matches patterns against the
// sealed Keys universe (plain Go regexp, since keys are concrete
// strings, not Z3 terms) and returns both the compiled predicate and
// the set of universe keys matched by at least one pattern, for
// additionalProperties to exclude.
func (c *Compiler) compilePatternProperties(patternProperties map[string]any, x smt.AST, path string) (smt.AST, map[string]bool, error) {
	matched := make(map[string]bool)
	var parts []smt.AST
	for pat, schema := range patternProperties {
		re, err := regexp.Compile(pat)
		if err != nil {
			return smt.AST{}, nil, jerr.New(jerr.UnsupportedRegex, path, fmt.Errorf("compiler: patternProperties key %q: %w", pat, err))
		}
		for _, key := range c.univ.Keys {
			if !re.MatchString(key) {
				continue
			}
			matched[key] = true
			sub, err := c.compile(schema, c.sort.Val(x, key), childPath(path, fmt.Sprintf("patternProperties/%s", pat)))
			if err != nil {
				return smt.AST{}, nil, err
			}
			parts = append(parts, smt.Implies(c.sort.Has(x, key), sub))
		}
	}
	var body smt.AST
	if len(parts) == 0 {
		body = c.ctx.BoolVal(true)
	} else {
		body = smt.And(parts...)
	}
	leaf := smt.Implies(c.sort.Is(jsonval.KindObj, x), body)
	return c.label(path, "patternProperties", leaf), matched, nil
}

// compileAdditionalProperties applies to every universe key not
// already covered by properties or a matching patternProperties
// pattern. additionalProperties: false forbids them; a schema value
// constrains their values the same way properties does.
func (c *Compiler) compileAdditionalProperties(ap any, properties map[string]any, matchedByPattern map[string]bool, x smt.AST, path string) (smt.AST, error) {
	covered := func(key string) bool {
		if _, ok := properties[key]; ok {
			return true
		}
		return matchedByPattern[key]
	}
	var parts []smt.AST
	switch schema := ap.(type) {
	case bool:
		if schema {
			return c.ctx.BoolVal(true), nil
		}
		for _, key := range c.univ.Keys {
			if covered(key) {
				continue
			}
			parts = append(parts, smt.Eq(c.sort.Has(x, key), c.ctx.BoolVal(false)))
		}
	default:
		for _, key := range c.univ.Keys {
			if covered(key) {
				continue
			}
			sub, err := c.compile(schema, c.sort.Val(x, key), childPath(path, fmt.Sprintf("additionalProperties/%s", key)))
			if err != nil {
				return smt.AST{}, err
			}
			parts = append(parts, smt.Implies(c.sort.Has(x, key), sub))
		}
	}
	var body smt.AST
	if len(parts) == 0 {
		body = c.ctx.BoolVal(true)
	} else {
		body = smt.And(parts...)
	}
	leaf := smt.Implies(c.sort.Is(jsonval.KindObj, x), body)
	return c.label(path, "additionalProperties", leaf), nil
}

func (c *Compiler) compileDependentRequired(dr map[string]any, x smt.AST, path string) (smt.AST, error) {
	var parts []smt.AST
	for key, deps := range dr {
		list, ok := deps.([]any)
		if !ok {
			return smt.AST{}, jerr.New(jerr.InternalInvariant, path, fmt.Errorf("compiler: dependentRequired[%q] is not an array", key))
		}
		var required []smt.AST
		for _, d := range list {
			depKey, ok := d.(string)
			if !ok {
				return smt.AST{}, jerr.New(jerr.InternalInvariant, path, fmt.Errorf("compiler: dependentRequired[%q] entry is not a string", key))
			}
			required = append(required, c.sort.Has(x, depKey))
		}
		var body smt.AST
		if len(required) == 0 {
			body = c.ctx.BoolVal(true)
		} else {
			body = smt.And(required...)
		}
		parts = append(parts, smt.Implies(c.sort.Has(x, key), body))
	}
	var body smt.AST
	if len(parts) == 0 {
		body = c.ctx.BoolVal(true)
	} else {
		body = smt.And(parts...)
	}
	leaf := smt.Implies(c.sort.Is(jsonval.KindObj, x), body)
	return c.label(path, "dependentRequired", leaf), nil
}

func (c *Compiler) compileDependentSchemas(ds map[string]any, x smt.AST, path string) (smt.AST, error) {
	var parts []smt.AST
	for key, schema := range ds {
		sub, err := c.compile(schema, x, childPath(path, fmt.Sprintf("dependentSchemas/%s", key)))
		if err != nil {
			return smt.AST{}, err
		}
		parts = append(parts, smt.Implies(c.sort.Has(x, key), sub))
	}
	var body smt.AST
	if len(parts) == 0 {
		body = c.ctx.BoolVal(true)
	} else {
		body = smt.And(parts...)
	}
	leaf := smt.Implies(c.sort.Is(jsonval.KindObj, x), body)
	return c.label(path, "dependentSchemas", leaf), nil
}

// propertyCountBound compiles minProperties/maxProperties as a sum of
// 0/1 indicators over the sealed Keys universe (spec §9 Open Question
// iii's resolution: property count is counted only over the finite
// universe, not over arbitrary unseen keys).
func (c *Compiler) propertyCountBound(keyword string, n json.Number, x smt.AST, path string, cmp func(a, b smt.AST) smt.AST) (smt.AST, error) {
	i, err := n.Int64()
	if err != nil {
		return smt.AST{}, jerr.New(jerr.InternalInvariant, path, fmt.Errorf("compiler: %s must be an integer, got %q", keyword, n.String()))
	}
	var terms []smt.AST
	for _, key := range c.univ.Keys {
		terms = append(terms, smt.Ite(c.sort.Has(x, key), c.ctx.IntVal(1), c.ctx.IntVal(0)))
	}
	var count smt.AST
	if len(terms) == 0 {
		count = c.ctx.IntVal(0)
	} else {
		count = smt.Add(terms...)
	}
	leaf := smt.Implies(c.sort.Is(jsonval.KindObj, x), cmp(count, c.ctx.IntVal(i)))
	return c.label(path, keyword, leaf), nil
}
