package compiler

import "slices"

// stringHeuristicNames are column/parameter-property identifiers whose
// name alone suggests a string-typed value, used by the `+` → Concat
// promotion heuristic when no schema type information is available.
// Grounded on spec.md §4.3; a caller with a declared Schema should
// prefer the type-driven rule instead (see promoteArith's schemaStringCol).
var stringHeuristicNames = []string{
	"name", "title", "email", "url", "path", "address",
	"city", "country", "state", "firstName", "lastName",
	"description", "comment", "label", "slug", "code",
}

func looksLikeString(name string) bool {
	return slices.Contains(stringHeuristicNames, name)
}

// promoteArith applies the `+` → Concat promotion rule: an Arithmetic{+}
// node is rewritten to Concat if either operand is already known-string
// (a string Constant, a Concat, or a Column/Parameter whose name matches
// the heuristic list). schemaStringCol, when non-nil, overrides the
// heuristic with exact schema-typed knowledge for Column operands.
func promoteArith(a *Arithmetic, schemaStringCol func(string) bool) ValueExpr {
	left := normalizeValue(a.Left, schemaStringCol)
	right := normalizeValue(a.Right, schemaStringCol)

	if a.Op == ArithAdd && (isKnownString(left, schemaStringCol) || isKnownString(right, schemaStringCol)) {
		return &Concat{Left: left, Right: right}
	}

	return &Arithmetic{Op: a.Op, Left: left, Right: right}
}

func isKnownString(v ValueExpr, schemaStringCol func(string) bool) bool {
	switch n := v.(type) {
	case *Constant:
		_, ok := n.Value.(string)
		return ok
	case *Concat:
		return true
	case *Column:
		if schemaStringCol != nil {
			return schemaStringCol(n.Name)
		}

		return looksLikeString(n.Name)
	case *Parameter:
		return looksLikeString(n.Property)
	default:
		return false
	}
}

// normalizeValue applies the `+`-promotion rule to Arithmetic nodes and
// recurses into both Coalesce operands; every other ValueExpr variant is
// returned unchanged.
func normalizeValue(v ValueExpr, schemaStringCol func(string) bool) ValueExpr {
	switch n := v.(type) {
	case *Arithmetic:
		return promoteArith(n, schemaStringCol)
	case *Coalesce:
		return &Coalesce{
			Value:   normalizeValue(n.Value, schemaStringCol),
			Default: normalizeValue(n.Default, schemaStringCol),
		}
	default:
		return v
	}
}

// lowerNullComparison implements invariant 6: a Comparison against a
// NullValue (or nil-valued Constant) operand becomes IsNull/IsNot-Null and is never
// auto-parameterized. Returns nil when cmp is not a null comparison.
func lowerNullComparison(cmp *Comparison) *IsNull {
	var operand ValueExpr

	switch {
	case isNullLiteral(cmp.Right):
		operand = cmp.Left
	case isNullLiteral(cmp.Left):
		operand = cmp.Right
	default:
		return nil
	}

	switch cmp.Op {
	case CompareEq:
		return &IsNull{Value: operand}
	case CompareNeq:
		return &IsNull{Value: operand, Negated: true}
	default:
		return nil
	}
}

// upcastBareColumn implements invariant 7: a Column/Parameter appearing
// where a predicate is demanded is upcast to BooleanColumn/BooleanParam.
func upcastBareColumn(v ValueExpr) (BoolExpr, bool) {
	switch n := v.(type) {
	case *Column:
		return &BooleanColumn{Name: n.Name}, true
	case *Parameter:
		return &BooleanParam{Name: n.Name, Property: n.Property}, true
	default:
		return nil, false
	}
}

func isNullLiteral(v ValueExpr) bool {
	switch n := v.(type) {
	case *NullValue:
		return true
	case *Constant:
		return n.Value == nil
	default:
		return false
	}
}

// lowerEmptyIn implements invariant 8: an In over a literal empty list
// becomes the literal predicate FALSE (or NOT FALSE when negated).
func lowerEmptyIn(in *In) (BoolExpr, bool) {
	if in.ListParam == "" && len(in.List) == 0 {
		if in.Negated {
			return &Not{Expr: &BooleanConstant{Value: false}}, true
		}

		return &BooleanConstant{Value: false}, true
	}

	return nil, false
}
