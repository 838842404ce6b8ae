package subsumption

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// recommendEnv is the environment recommendation expressions run
// against: the schema path and keyword of a failed consumer
// constraint (spec §4.4 "derive a list of (path, keyword,
// recommendation) triples using a static map from keyword to fix
// suggestion").
type recommendEnv struct {
	Path    string
	Keyword string
}

// recommendationRules is the static keyword→suggestion table, encoded
// as expr-lang expressions rather than a Go switch: each entry is
// itself the "static map from keyword to fix suggestion" spec §4.4
// calls for, kept as data so a future rule can be added without
// touching Go control flow.
var recommendationRules = map[string]string{
	"type":                 `"widen the consumer's type list at " + Path + " to include every type the producer allows"`,
	"const":                `"replace the consumer's const at " + Path + " with an enum that also covers the producer's value"`,
	"enum":                 `"add the producer's missing enum values to the consumer's enum at " + Path`,
	"minimum":              `"lower the consumer's minimum at " + Path + " to admit the producer's full range"`,
	"maximum":              `"raise the consumer's maximum at " + Path + " to admit the producer's full range"`,
	"exclusiveMinimum":     `"lower the consumer's exclusiveMinimum at " + Path`,
	"exclusiveMaximum":     `"raise the consumer's exclusiveMaximum at " + Path`,
	"multipleOf":           `"relax or remove the consumer's multipleOf at " + Path`,
	"minLength":            `"lower the consumer's minLength at " + Path`,
	"maxLength":            `"raise the consumer's maxLength at " + Path`,
	"pattern":              `"broaden the consumer's pattern at " + Path + " to accept the producer's strings"`,
	"format:email":         `"the consumer's email format at " + Path + " rejects a value the producer allows"`,
	"required":             `"drop or relax the consumer's required list at " + Path + "; requiring more restricts, not the producer"`,
	"properties":           `"widen the consumer's property schema at " + Path`,
	"additionalProperties": `"the consumer's additionalProperties at " + Path + " forbids a key the producer allows; widen or remove it"`,
	"patternProperties":    `"broaden the consumer's patternProperties at " + Path`,
	"dependentRequired":    `"relax the consumer's dependentRequired at " + Path`,
	"dependentSchemas":     `"relax the consumer's dependentSchemas at " + Path`,
	"minProperties":        `"lower the consumer's minProperties at " + Path`,
	"maxProperties":        `"raise the consumer's maxProperties at " + Path`,
	"minItems":             `"lower the consumer's minItems at " + Path`,
	"maxItems":             `"raise the consumer's maxItems at " + Path`,
	"items":                `"widen the consumer's items schema at " + Path`,
	"prefixItems":          `"widen the consumer's prefixItems schema at " + Path`,
	"contains":             `"relax the consumer's contains schema at " + Path`,
	"uniqueItems":          `"remove the consumer's uniqueItems at " + Path + " if the producer allows duplicates"`,
	"oneOf":                `"widen one of the consumer's oneOf branches at " + Path`,
	"allOf":                `"remove or relax a conjunct in the consumer's allOf at " + Path`,
	"anyOf":                `"add a branch to the consumer's anyOf at " + Path`,
	"not":                  `"the consumer's not at " + Path + " excludes a value the producer allows"`,
}

const defaultRecommendationRule = `"review the consumer's " + Keyword + " constraint at " + Path`

var compiledRecommendations map[string]*vm.Program
var compiledDefaultRecommendation *vm.Program

func init() {
	compiledRecommendations = make(map[string]*vm.Program, len(recommendationRules))
	for keyword, rule := range recommendationRules {
		program, err := expr.Compile(rule, expr.Env(recommendEnv{}))
		if err != nil {
			panic(fmt.Sprintf("subsumption: invalid recommendation rule for %q: %v", keyword, err))
		}
		compiledRecommendations[keyword] = program
	}
	program, err := expr.Compile(defaultRecommendationRule, expr.Env(recommendEnv{}))
	if err != nil {
		panic(fmt.Sprintf("subsumption: invalid default recommendation rule: %v", err))
	}
	compiledDefaultRecommendation = program
}

// Recommend renders the fix suggestion for a failed consumer
// constraint identified by (path, keyword).
func Recommend(path, keyword string) string {
	program, ok := compiledRecommendations[keyword]
	if !ok {
		program = compiledDefaultRecommendation
	}
	out, err := expr.Run(program, recommendEnv{Path: path, Keyword: keyword})
	if err != nil {
		return fmt.Sprintf("review the consumer's %s constraint at %s", keyword, path)
	}
	s, ok := out.(string)
	if !ok {
		return fmt.Sprintf("review the consumer's %s constraint at %s", keyword, path)
	}
	return s
}
