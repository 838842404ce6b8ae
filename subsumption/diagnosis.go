package subsumption

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/jsound-go/jsound/compiler"
	"github.com/jsound-go/jsound/smt"
)

// Diagnosis is the labeled-evaluation result of spec §4.4: the
// producer constraints the witness satisfied, the consumer
// constraints it violated, and the (path, keyword, recommendation)
// triples derived from the latter.
//
// Grounded on _examples/original_source/core/labeling.py's
// LabelEvaluator (evaluate every label under the model, split by
// side and by satisfied/failed) generalized from its ad hoc
// "/producer"/"/consumer" string-matching to the Side type the
// compiler's LabelTable already carries.
type Diagnosis struct {
	ProducerTrue      []string
	ConsumerFalse     []string
	FailedConstraints []string
	Recommendations   []string
	// PatchSuggestion is an RFC 6902 patch (rendered as JSON text)
	// from the witness to a crude repair of it — the offending
	// pointer paths from FailedConstraints stripped out — computed
	// via github.com/evanphx/json-patch. It is not a proof that the
	// repaired document satisfies the consumer; it is the same kind
	// of actionable hint a diff-based code review leaves: "here is
	// what changed". Empty when there is nothing to repair.
	PatchSuggestion string
}

// Diagnose evaluates every label from both sides' label tables under
// model and classifies them into P-true and C-false (spec §4.4 "the
// latter are the consumer constraints the witness violates").
func Diagnose(model *smt.Model, producerLabels, consumerLabels *compiler.LabelTable) *Diagnosis {
	d := &Diagnosis{}
	for _, l := range producerLabels.Labels() {
		v := model.Eval(l.Handle, true)
		if ok, err := v.BoolValue(); err == nil && ok {
			d.ProducerTrue = append(d.ProducerTrue, l.Name)
		}
	}
	for _, l := range consumerLabels.Labels() {
		v := model.Eval(l.Handle, true)
		ok, err := v.BoolValue()
		if err == nil && !ok {
			d.ConsumerFalse = append(d.ConsumerFalse, l.Name)
			desc := fmt.Sprintf("%s:%s", l.Path, l.Keyword)
			d.FailedConstraints = append(d.FailedConstraints, desc)
			d.Recommendations = append(d.Recommendations, Recommend(l.Path, l.Keyword))
		}
	}
	return d
}

// AttachPatchSuggestion computes d.PatchSuggestion from witness: a
// copy of witness with every failed-constraint pointer path deleted,
// diffed against the original via jsonpatch.CreatePatch. Deleting the
// offending value is the simplest repair that is always well-typed
// regardless of the keyword that failed (a wrong type, a missing key,
// an out-of-range number all disappear if the value at that path
// disappears), matching the "here's where to start" spirit of spec
// §4.4's recommendations rather than attempting a fully general
// schema-aware rewrite.
func AttachPatchSuggestion(d *Diagnosis, witness any) {
	if len(d.FailedConstraints) == 0 {
		return
	}
	original, err := json.Marshal(witness)
	if err != nil {
		return
	}
	repaired := deleteJSONPointerPaths(witness, d.FailedConstraints)
	modified, err := json.Marshal(repaired)
	if err != nil {
		return
	}
	patch, err := jsonpatch.CreatePatch(original, modified)
	if err != nil {
		return
	}
	if len(patch) == 0 {
		return
	}
	rendered, err := json.Marshal(patch)
	if err != nil {
		return
	}
	d.PatchSuggestion = string(rendered)
}

// deleteJSONPointerPaths deep-copies root and, for every
// "{pointer}:{keyword}" entry in constraints, deletes the value at
// pointer if it resolves to an object key or array index.
func deleteJSONPointerPaths(root any, constraints []string) any {
	copied := deepCopyJSON(root)
	for _, c := range constraints {
		pointer, _, _ := strings.Cut(c, ":")
		deleteAtPointer(copied, pointer)
	}
	return copied
}

func deepCopyJSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, sub := range t {
			out[k] = deepCopyJSON(sub)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, sub := range t {
			out[i] = deepCopyJSON(sub)
		}
		return out
	default:
		return v
	}
}

// deleteAtPointer mutates root in place, removing the value addressed
// by an "" or "/seg/seg..." JSON Pointer built from childPath (the
// same pointer the compiler's labels carry). Unresolvable pointers
// (root itself, or a path through a wrong-shaped value) are no-ops.
func deleteAtPointer(root any, pointer string) {
	if pointer == "" {
		return
	}
	segments := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	cur := root
	for i, seg := range segments {
		last := i == len(segments)-1
		switch node := cur.(type) {
		case map[string]any:
			if last {
				delete(node, seg)
				return
			}
			cur = node[seg]
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return
			}
			if last {
				node[idx] = nil
				return
			}
			cur = node[idx]
		default:
			return
		}
	}
}
