// Package jsonschema is the ambient schema-loading layer SPEC_FULL.md
// adds around spec.md's core: parsing raw schema bytes, running the
// Reference Resolver (schemaref) over them, and producing the
// "already-inlined schema" the Schema Compiler assumes as its input.
//
// Grounded on the "parse, then sanity-check" ordering of
// _examples/signadot-tony-format/go-tony/schema/parse.go's ParseSchema
// (which also invokes its own satisfiability check at the end of
// parsing) — jsonschema.Parse follows that shape as far as decoding
// and resolving references; it runs no satisfiability check itself.
package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jsound-go/jsound/jerr"
	"github.com/jsound-go/jsound/schemaref"
)

// Document is a schema with all $ref occurrences already inlined
// (spec §3 "Inlined schema"), ready for the Schema Compiler.
type Document struct {
	Raw    any
	Source []byte
}

// Parse decodes raw schema bytes, builds the reference registry,
// rejects cyclic schemas, and inlines the rest. Numbers are decoded
// via json.Number (not float64) so later literal lifting (jsonval.Lift)
// can distinguish "integer" from "number" const/enum values exactly
// the way the compiler distinguishes the type keywords. logger is
// optional (SPEC_FULL.md §7.1); pass none, or nil, to use
// slog.Default().
func Parse(data []byte, logger ...*slog.Logger) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, jerr.New(jerr.InternalInvariant, "", fmt.Errorf("jsonschema: invalid JSON: %w", err))
	}

	reg, err := schemaref.Build(doc, logger...)
	if err != nil {
		return nil, err
	}
	if err := reg.CheckAcyclic(); err != nil {
		return nil, err
	}
	inlined, err := schemaref.Inline(doc, reg)
	if err != nil {
		return nil, err
	}
	return &Document{Raw: inlined, Source: data}, nil
}

// Object returns Raw as a schema object, or ok=false if the schema
// root is a boolean schema (`true`/`false`) or otherwise not an
// object — callers compiling keyword-by-keyword need this shape.
func (d *Document) Object() (map[string]any, bool) {
	m, ok := d.Raw.(map[string]any)
	return m, ok
}
