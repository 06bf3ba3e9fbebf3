// Package types defines the semantic type algebra derived from forms: the
// encoding-erased description of a nested array's shape. Two forms with
// different physical index dtypes can share one Type.
package types

import (
	"fmt"
	"reflect"
)

// UnknownLength is the sentinel for a length or size that is not known,
// serialized as JSON null.
const UnknownLength int64 = -1

// Type is the closed set of semantic types: Numpy, Unknown, List, Regular,
// Option, Record, Union. All implementations live in this package.
type Type interface {
	fmt.Stringer

	// Parameters returns the metadata attached to this type node; may be nil.
	Parameters() map[string]interface{}
	// Parameter returns one parameter value, or nil.
	Parameter(key string) interface{}
	// Equal compares structurally, ignoring physical encoding. Only the
	// reserved type-level parameters participate.
	Equal(other Type) bool
}

// typeParameterKeys are the reserved parameter keys that participate in
// type-level equality; all other parameters are advisory.
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

// meta carries the parameter bag shared by every type variant.
type meta struct {
	parameters map[string]interface{}
}

func (m *meta) Parameters() map[string]interface{} { return m.parameters }

func (m *meta) Parameter(key string) interface{} {
	if m.parameters == nil {
		return nil
	}
	return m.parameters[key]
}
