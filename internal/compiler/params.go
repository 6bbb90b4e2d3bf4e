package compiler

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/lambdaquery/lq/schema"
)

// reservedParamPrefix is reserved for auto-generated parameter names;
// caller-supplied bags must not use it (spec.md §6 "Parameter-bag
// discipline").
const reservedParamPrefix = "__p"

// paramCtx drives auto-parameterization (spec.md §4.4) across a single
// top-level ToSQL call. The counter is shared across nested subtrees
// (join inner sources, union operands) to guarantee uniqueness in the final SQL
// string, per spec.md §9 "Auto-parameter counter scope".
type paramCtx struct {
	caller    map[string]any
	generated map[string]any
	usedNames map[string]bool
	counter   int
}

func newParamCtx(caller map[string]any) (*paramCtx, error) {
	for key := range caller {
		if strings.HasPrefix(key, reservedParamPrefix) {
			return nil, &SemanticViolation{
				Rule:   "reserved parameter prefix",
				Detail: fmt.Sprintf("caller-supplied parameter %q uses the reserved %q prefix", key, reservedParamPrefix),
			}
		}
	}

	return &paramCtx{
		caller:    caller,
		generated: make(map[string]any),
		usedNames: make(map[string]bool),
	}, nil
}

// alloc lifts a literal Constant value into a fresh named slot.
func (c *paramCtx) alloc(value any) string {
	c.counter++
	name := reservedParamPrefix + strconv.Itoa(c.counter)
	c.generated[name] = value

	return name
}

// resolve looks up a declared query-parameter reference against the
// caller's bag, returning SemanticViolation if it was never bound.
func (c *paramCtx) resolve(name, property string) (any, error) {
	value, ok := c.caller[name]
	if !ok {
		return nil, &SemanticViolation{
			Rule:   "unbound query parameter",
			Detail: fmt.Sprintf("parameter %q is referenced but was never bound by the caller's parameter bag", name),
		}
	}

	c.usedNames[name] = true

	if property == "" {
		return value, nil
	}

	return resolveProperty(value, property)
}

// resolveArray looks up a parameter expected to hold a slice/array,
// used by the In{ListParam} expansion.
func (c *paramCtx) resolveArray(name string) ([]any, error) {
	value, err := c.resolve(name, "")
	if err != nil {
		return nil, err
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, &SemanticViolation{
			Rule:   "non-array parameter used as IN list",
			Detail: fmt.Sprintf("parameter %q must be a slice/array, got %T", name, value),
		}
	}

	elems := make([]any, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}

	return elems, nil
}

// expandArrayParam materializes an In{ListParam} reference into one
// placeholder name per element (spec.md §4.3 "parameter bag gains
// name_0, name_1, … entries and retains the original array under
// name"). The original array stays bound under its own name in the
// caller bag, untouched.
func (c *paramCtx) expandArrayParam(name string) ([]string, error) {
	elems, err := c.resolveArray(name)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(elems))
	for i, v := range elems {
		slot := fmt.Sprintf("%s_%d", name, i)
		c.generated[slot] = v
		names[i] = slot
	}

	return names, nil
}

// finalBag merges the caller's parameter bag with every auto-generated
// slot. Every declared parameter reference is validated against the
// caller's bag at resolve time, during rendering, not here.
func (c *paramCtx) finalBag() map[string]any {
	bag := make(map[string]any, len(c.caller)+len(c.generated))
	for k, v := range c.caller {
		bag[k] = v
	}

	for k, v := range c.generated {
		bag[k] = v
	}

	return bag
}

// resolveProperty extracts a single-level property path from a
// caller-supplied parameter value: a map key, or a struct field (by
// name, case-insensitively falling back to a "config"-style tag would
// be over-engineering here — exported field name only).
func resolveProperty(value any, property string) (any, error) {
	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Map:
		item := rv.MapIndex(reflect.ValueOf(property))
		if !item.IsValid() {
			return nil, &SemanticViolation{
				Rule:   "unbound query parameter property",
				Detail: fmt.Sprintf("property %q not present in parameter map", property),
			}
		}

		return item.Interface(), nil
	case reflect.Pointer:
		return resolveProperty(rv.Elem().Interface(), property)
	case reflect.Struct:
		field := rv.FieldByName(property)
		if !field.IsValid() {
			return nil, &SemanticViolation{
				Rule:   "unbound query parameter property",
				Detail: fmt.Sprintf("field %q not present on parameter struct %T", property, value),
			}
		}

		return field.Interface(), nil
	default:
		return nil, &SemanticViolation{
			Rule:   "query parameter property access on scalar",
			Detail: fmt.Sprintf("cannot access property %q on %T", property, value),
		}
	}
}

// coerce converts a raw bound value toward a column's declared logical
// type, mirroring the teacher's pervasive use of spf13/cast for
// flexible coercion of caller-supplied values.
func coerce(value any, kind schema.Kind) (any, error) {
	switch kind {
	case schema.KindString:
		return cast.ToStringE(value)
	case schema.KindNumber:
		return cast.ToFloat64E(value)
	case schema.KindBool:
		return cast.ToBoolE(value)
	default:
		return value, nil
	}
}
