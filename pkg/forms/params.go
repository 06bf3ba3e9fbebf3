package forms

import "reflect"

// reservedNominalParameters is the fixed set of (key, value) pairs with
// system-defined meaning: they participate in type-level equality and mark
// nominal behaviors such as strings and categoricals.
var reservedNominalParameters = map[string]map[string]bool{
	"__array__": {
		"string":     true,
		"bytestring": true,
		"char":       true,
		"byte":       true,
		"sorted_map": true,
		"categorical": true,
	},
}

// IsReservedNominalParameter reports whether (key, value) is in the reserved
// nominal set.
func IsReservedNominalParameter(key string, value interface{}) bool {
	values, ok := reservedNominalParameters[key]
	if !ok {
		return false
	}
	s, ok := value.(string)
	return ok && values[s]
}

// typeParameterKeys are the parameter keys compared by Form equality; the
// rest of the parameter bag is advisory metadata.
var typeParameterKeys = [...]string{"__array__", "__record__", "__doc__"}

// typeParametersEqual compares only the reserved type-level parameters.
func typeParametersEqual(one, two map[string]interface{}) bool {
	for _, key := range typeParameterKeys {
		var a, b interface{}
		if one != nil {
			a = one[key]
		}
		if two != nil {
			b = two[key]
		}
		if !reflect.DeepEqual(a, b) {
			return false
		}
	}
	return true
}

// ParametersEqual compares two parameter bags exactly (deep equality of all
// keys), treating nil and empty as equal.
func ParametersEqual(one, two map[string]interface{}) bool {
	if len(one) != len(two) {
		return false
	}
	for k, v := range one {
		w, ok := two[k]
		if !ok || !reflect.DeepEqual(v, w) {
			return false
		}
	}
	return true
}

// mergeParameters merges two parameter bags; keys from outer win. Either
// argument may be returned unchanged, which is safe because parameter bags
// are never mutated after construction.
func mergeParameters(inner, outer map[string]interface{}) map[string]interface{} {
	if len(inner) == 0 {
		return outer
	}
	if len(outer) == 0 {
		return inner
	}
	merged := make(map[string]interface{}, len(inner)+len(outer))
	for k, v := range inner {
		merged[k] = v
	}
	for k, v := range outer {
		merged[k] = v
	}
	return merged
}

// parameterValuesEqual compares two parameter values deeply.
func parameterValuesEqual(a, b interface{}) bool {
	return reflect.DeepEqual(a, b)
}

// isCategorical reports whether a parameter bag marks a categorical array,
// which blocks union absorption during simplification.
func isCategorical(params map[string]interface{}) bool {
	if params == nil {
		return false
	}
	return params["__array__"] == "categorical"
}
