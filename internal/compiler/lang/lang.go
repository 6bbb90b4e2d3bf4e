package lang

import "github.com/lambdaquery/lq/internal/compiler"

// Compile parses src under the restricted grammar of spec.md §4.2 and
// returns the BoolExpr it denotes. queryParams names every declared
// query parameter a bare identifier may resolve against (e.g. "min" for
// min.threshold, or "min" standalone); any identifier not in this list
// resolves to a column reference.
func Compile(src string, queryParams ...string) (compiler.BoolExpr, error) {
	declared := make(map[string]bool, len(queryParams))
	for _, name := range queryParams {
		declared[name] = true
	}

	return Parse(src, Resolver{QueryParam: declared})
}
