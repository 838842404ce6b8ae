package subsumption

// Result mirrors spec §6's SubsumptionResult exactly, field for field.
type Result struct {
	Compatible        bool
	Counterexample    any
	Explanation       string
	FailedConstraints []string
	Recommendations   []string
	SolverTimeSeconds float64
	Error             string
}
