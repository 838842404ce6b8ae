package schemaref

import (
	"fmt"
	"sort"

	"github.com/jsound-go/jsound/jerr"
)

// tarjan finds strongly-connected components of the registry's edge
// graph. Grounded on the SCC algorithm described (and hand-implemented
// in Python) by _examples/original_source/core/schema_registry.py's
// _detect_cycles/strongconnect; this is the standard recursive
// structure, index/lowlink/onStack bookkeeping per node.
type tarjan struct {
	edges   map[string][]string
	index   map[string]int
	lowlink map[string]int
	onStack map[string]bool
	stack   []string
	counter int
	sccs    [][]string
}

func newTarjan(edges map[string][]string) *tarjan {
	return &tarjan{
		edges:   edges,
		index:   make(map[string]int),
		lowlink: make(map[string]int),
		onStack: make(map[string]bool),
	}
}

func (t *tarjan) run() [][]string {
	nodes := make([]string, 0, len(t.edges))
	for n := range t.edges {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes) // deterministic iteration order
	for _, n := range nodes {
		if _, seen := t.index[n]; !seen {
			t.strongconnect(n)
		}
	}
	return t.sccs
}

func (t *tarjan) strongconnect(v string) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.edges[v] {
		if _, seen := t.index[w]; !seen {
			t.strongconnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] == t.index[v] {
		var scc []string
		for {
			n := len(t.stack) - 1
			w := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		t.sccs = append(t.sccs, scc)
	}
}

// Cycle describes one strongly-connected component (or self-loop)
// found in the reference graph, in the ordered form spec.md §4.1
// requires for the rejection diagnostic.
type Cycle struct {
	Definitions []string
}

// DetectCycles reports every strongly-connected component of size > 1
// and every self-loop, per spec §3 "a strongly-connected component of
// size > 1, or any self-loop, marks the schema as cyclic."
func (r *Registry) DetectCycles() []Cycle {
	sccs := newTarjan(r.edges).run()
	var cycles []Cycle
	for _, scc := range sccs {
		if len(scc) > 1 {
			cycles = append(cycles, Cycle{Definitions: scc})
			continue
		}
		n := scc[0]
		for _, w := range r.edges[n] {
			if w == n {
				cycles = append(cycles, Cycle{Definitions: []string{n}})
				break
			}
		}
	}
	return cycles
}

// CheckAcyclic returns a CyclicSchema error naming every cycle found,
// or nil if the schema is safe to inline.
func (r *Registry) CheckAcyclic() error {
	cycles := r.DetectCycles()
	if len(cycles) == 0 {
		return nil
	}
	msg := "schemaref: cyclic references found, switch to a simulation strategy: "
	for i, c := range cycles {
		if i > 0 {
			msg += "; "
		}
		msg += fmt.Sprintf("%v", c.Definitions)
	}
	r.logger.Warn("schemaref: rejecting cyclic schema", "cycles", len(cycles))
	return jerr.New(jerr.CyclicSchema, "#", fmt.Errorf("%s", msg))
}
