package compiler

// formatSpec pairs a regex (in the subset regex.go supports) with a
// length bound appropriate to the format, per spec §4.3. Grounded on
// the FORMAT_PATTERNS table in
// _examples/original_source/core/schema_compiler.py.
type formatSpec struct {
	Pattern   string
	MaxLength int
}

var formatPatterns = map[string]formatSpec{
	"email":     {Pattern: `[^@\s]+@[^@\s]+\.[^@\s]+`, MaxLength: 320},
	"uri":       {Pattern: `[a-zA-Z][a-zA-Z0-9+.-]*:.+`, MaxLength: 2048},
	"uuid":      {Pattern: `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`, MaxLength: 36},
	"date":      {Pattern: `[0-9]{4}-[0-9]{2}-[0-9]{2}`, MaxLength: 10},
	"time":      {Pattern: `[0-9]{2}:[0-9]{2}:[0-9]{2}(\.[0-9]+)?([Zz]|[+-][0-9]{2}:[0-9]{2})?`, MaxLength: 35},
	"date-time": {Pattern: `[0-9]{4}-[0-9]{2}-[0-9]{2}[Tt][0-9]{2}:[0-9]{2}:[0-9]{2}(\.[0-9]+)?([Zz]|[+-][0-9]{2}:[0-9]{2})`, MaxLength: 40},
	"ipv4":      {Pattern: `[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}`, MaxLength: 15},
	"ipv6":      {Pattern: `[0-9a-fA-F:]+`, MaxLength: 45},
}
