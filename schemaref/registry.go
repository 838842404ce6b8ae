// Package schemaref implements the Reference Resolver (spec §4.1):
// building a $defs registry and $ref edge graph for a raw schema
// document, rejecting cyclic schemas with a named-cycle diagnostic,
// and inlining acyclic ones by memoized topological substitution.
//
// Grounded on
// _examples/signadot-tony-format/go-tony/schema/schema_registry.go
// (registry shape, simplified: read-only after construction, so no
// sync.RWMutex is needed) and
// _examples/signadot-tony-format/go-tony/schema/resolve.go (lookup and
// error-wrapping style); cycle semantics grounded on
// _examples/original_source/core/schema_registry.py's hand-rolled
// _detect_cycles/strongconnect.
package schemaref

import (
	"fmt"
	"log/slog"

	"github.com/jsound-go/jsound/jerr"
)

// Registry maps definition names (as they appear after "#/$defs/" or
// "#/definitions/") to their raw JSON body, plus the edge graph
// recording which definitions reference which.
type Registry struct {
	defs   map[string]any
	edges  map[string][]string
	logger *slog.Logger
}

// Build walks a decoded schema document (map[string]any / []any tree,
// as produced by encoding/json with UseNumber) and collects every
// $defs/definitions entry plus every $ref edge between them. logger is
// optional (per SPEC_FULL.md §7.1, "accept an optional *slog.Logger
// ... and default to slog.Default()"); pass none, or nil, to use the
// default.
func Build(doc any, logger ...*slog.Logger) (*Registry, error) {
	r := &Registry{defs: make(map[string]any), edges: make(map[string][]string), logger: effectiveLogger(logger)}
	root, ok := doc.(map[string]any)
	if !ok {
		return r, nil
	}
	for _, key := range []string{"$defs", "definitions"} {
		section, ok := root[key].(map[string]any)
		if !ok {
			continue
		}
		for name, body := range section {
			r.defs[name] = body
		}
	}
	for name, body := range r.defs {
		r.edges[name] = collectRefs(body)
	}
	r.edges["#"] = collectRefs(root)
	r.logger.Debug("schemaref: registry built", "definitions", len(r.defs))
	return r, nil
}

// effectiveLogger picks the first non-nil logger passed to a variadic
// optional-logger parameter, falling back to slog.Default().
func effectiveLogger(loggers []*slog.Logger) *slog.Logger {
	if len(loggers) > 0 && loggers[0] != nil {
		return loggers[0]
	}
	return slog.Default()
}

// Definitions returns the registered definition names.
func (r *Registry) Definitions() []string {
	out := make([]string, 0, len(r.defs))
	for name := range r.defs {
		out = append(out, name)
	}
	return out
}

// Lookup returns the body of a definition by name.
func (r *Registry) Lookup(name string) (any, error) {
	body, ok := r.defs[name]
	if !ok {
		return nil, jerr.New(jerr.UnresolvedReference, refPointer(name), fmt.Errorf("schemaref: no such definition %q", name))
	}
	return body, nil
}

// refPointer renders a definition name back into the $defs pointer
// form used in diagnostics, matching the pointers a caller would see
// in the original schema text.
func refPointer(name string) string { return "#/$defs/" + name }

// collectRefs walks a schema fragment and returns the definition
// names referenced via "$ref": "#/$defs/X" or "#/definitions/X".
func collectRefs(node any) []string {
	var out []string
	walk(node, func(ref string) {
		if name, ok := parseDefRef(ref); ok {
			out = append(out, name)
		}
	})
	return out
}

func walk(node any, onRef func(string)) {
	switch v := node.(type) {
	case map[string]any:
		if ref, ok := v["$ref"].(string); ok {
			onRef(ref)
		}
		for _, child := range v {
			walk(child, onRef)
		}
	case []any:
		for _, child := range v {
			walk(child, onRef)
		}
	}
}

func parseDefRef(ref string) (string, bool) {
	const defsPrefix = "#/$defs/"
	const definitionsPrefix = "#/definitions/"
	switch {
	case len(ref) > len(defsPrefix) && ref[:len(defsPrefix)] == defsPrefix:
		return ref[len(defsPrefix):], true
	case len(ref) > len(definitionsPrefix) && ref[:len(definitionsPrefix)] == definitionsPrefix:
		return ref[len(definitionsPrefix):], true
	default:
		return "", false
	}
}
