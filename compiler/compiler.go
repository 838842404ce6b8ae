// Package compiler implements the Schema Compiler (spec §4.3):
// translating an already-inlined JSON Schema document into a Z3
// predicate over a JSON-sorted variable, plus a label table recording
// every leaf constraint for later diagnosis.
//
// Grounded on
// _examples/signadot-tony-format/go-tony/schema/formula_builder.go for
// the boolean-circuit-over-a-path construction style (there used for
// tony tag types; generalized here to JSON Schema keywords, with
// oneOf's pairwise mutual exclusion directly generalizing the
// teacher's per-position type mutex clauses) and on
// _examples/original_source/core/schema_compiler.py for exact
// per-keyword semantics.
package compiler

import (
	"fmt"
	"log/slog"

	"github.com/jsound-go/jsound/jerr"
	"github.com/jsound-go/jsound/jsonval"
	"github.com/jsound-go/jsound/smt"
)

// Compiler holds everything shared across one schema's compilation:
// the JSON sort/universe (shared between producer and consumer, per
// spec §4.2), and the label table for the side being compiled.
type Compiler struct {
	ctx    *smt.Context
	sort   *jsonval.Sort
	univ   *jsonval.Universe
	labels *LabelTable
	logger *slog.Logger
}

// New builds a Compiler for one side (producer or consumer) of a
// check, sharing the Z3 context/sort/universe with the other side.
// logger is optional (SPEC_FULL.md §7.1); pass none, or nil, to use
// slog.Default().
func New(ctx *smt.Context, sort *jsonval.Sort, univ *jsonval.Universe, side Side, logger ...*slog.Logger) *Compiler {
	return &Compiler{ctx: ctx, sort: sort, univ: univ, labels: NewLabelTable(ctx, side), logger: effectiveLogger(logger)}
}

// effectiveLogger picks the first non-nil logger passed to a variadic
// optional-logger parameter, falling back to slog.Default().
func effectiveLogger(loggers []*slog.Logger) *slog.Logger {
	if len(loggers) > 0 && loggers[0] != nil {
		return loggers[0]
	}
	return slog.Default()
}

// Labels returns the label table accumulated during Compile.
func (c *Compiler) Labels() *LabelTable { return c.labels }

// Compiled is the result of compiling one schema: the predicate ⟦S⟧(x)
// plus the axioms that make its labels meaningful.
type Compiled struct {
	Pred   smt.AST
	Axioms []smt.AST
	Labels *LabelTable
}

// Compile translates schema (a decoded, already-inlined JSON Schema
// node — bool or map[string]any) into ⟦schema⟧(x).
func (c *Compiler) Compile(schema any, x smt.AST) (*Compiled, error) {
	pred, err := c.compile(schema, x, "")
	if err != nil {
		return nil, err
	}
	c.logger.Debug("compiler: schema compiled", "side", c.labels.Side, "labels", len(c.labels.Axioms()))
	return &Compiled{Pred: pred, Axioms: c.labels.Axioms(), Labels: c.labels}, nil
}

func (c *Compiler) compile(node any, x smt.AST, path string) (smt.AST, error) {
	switch v := node.(type) {
	case bool:
		return c.ctx.BoolVal(v), nil
	case map[string]any:
		return c.compileObject(v, x, path)
	case nil:
		return c.ctx.BoolVal(true), nil
	default:
		return smt.AST{}, jerr.New(jerr.InternalInvariant, path, fmt.Errorf("compiler: schema node has unexpected shape %T", node))
	}
}

// compileObject conjoins every keyword present at this schema node —
// JSON Schema's implicit "all keywords on a node must hold" semantics
// — mirroring the teacher's buildObject's implicit AND over fields.
func (c *Compiler) compileObject(v map[string]any, x smt.AST, path string) (smt.AST, error) {
	var parts []smt.AST
	add := func(p smt.AST, err error) error {
		if err != nil {
			return err
		}
		parts = append(parts, p)
		return nil
	}

	// Assertion keywords outside the compiled subset are rejected rather
	// than silently ignored; other unknown keywords count as annotations.
	for _, kw := range []string{"$ref", "$dynamicRef", "$recursiveRef", "additionalItems", "dependencies", "maxContains", "minContains", "propertyNames", "unevaluatedItems", "unevaluatedProperties"} {
		if _, ok := v[kw]; ok {
			return smt.AST{}, jerr.New(jerr.UnsupportedKeyword, path, fmt.Errorf("compiler: keyword %q is not supported", kw))
		}
	}

	if t, ok := v["type"]; ok {
		if err := add(c.compileType(t, x, path)); err != nil {
			return smt.AST{}, err
		}
	}
	if cv, ok := v["const"]; ok {
		if err := add(c.compileConst(cv, x, path)); err != nil {
			return smt.AST{}, err
		}
	}
	if e, ok := v["enum"].([]any); ok {
		if err := add(c.compileEnum(e, x, path)); err != nil {
			return smt.AST{}, err
		}
	}
	for _, kw := range []string{"allOf", "anyOf"} {
		if arr, ok := v[kw].([]any); ok {
			if err := add(c.compileAllAny(kw, arr, x, path)); err != nil {
				return smt.AST{}, err
			}
		}
	}
	if arr, ok := v["oneOf"].([]any); ok {
		if err := add(c.compileOneOf(arr, x, path)); err != nil {
			return smt.AST{}, err
		}
	}
	if n, ok := v["not"]; ok {
		if err := add(c.compileNot(n, x, path)); err != nil {
			return smt.AST{}, err
		}
	}
	if _, ok := v["if"]; ok {
		if err := add(c.compileIfThenElse(v, x, path)); err != nil {
			return smt.AST{}, err
		}
	}

	if err := c.compileNumeric(v, x, path, add); err != nil {
		return smt.AST{}, err
	}
	if err := c.compileString(v, x, path, add); err != nil {
		return smt.AST{}, err
	}
	if err := c.compileArray(v, x, path, add); err != nil {
		return smt.AST{}, err
	}
	if err := c.compileObjectKeywords(v, x, path, add); err != nil {
		return smt.AST{}, err
	}

	if len(parts) == 0 {
		return c.ctx.BoolVal(true), nil
	}
	return smt.And(parts...), nil
}

func childPath(path, segment string) string { return path + "/" + segment }

func (c *Compiler) label(path, keyword string, leaf smt.AST) smt.AST {
	return c.labels.Label(path, keyword, leaf)
}
