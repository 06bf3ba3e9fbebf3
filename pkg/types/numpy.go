package types

import (
	"github.com/ajitpratap0/ragged/pkg/dtypes"
	"github.com/ajitpratap0/ragged/pkg/errors"
)

// NumpyType is the semantic type of a primitive leaf.
type NumpyType struct {
	meta
	primitive dtypes.Primitive
}

// NewNumpyType creates a NumpyType, validating the primitive tag.
func NewNumpyType(primitive dtypes.Primitive, parameters map[string]interface{}) (*NumpyType, error) {
	if !primitive.Valid() {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"NumpyType 'primitive' must be a known dtype, not %q", string(primitive))
	}
	return &NumpyType{meta{parameters}, primitive}, nil
}

// Primitive returns the dtype tag.
func (t *NumpyType) Primitive() dtypes.Primitive { return t.primitive }

func (t *NumpyType) Equal(other Type) bool {
	o, ok := other.(*NumpyType)
	return ok &&
		t.primitive == o.primitive &&
		typeParametersEqual(t.parameters, o.parameters)
}

func (t *NumpyType) String() string {
	switch t.Parameter("__array__") {
	case "char":
		return "char"
	case "byte":
		return "byte"
	}
	return string(t.primitive)
}

// UnknownType is the semantic type of a typeless, zero-length leaf.
type UnknownType struct {
	meta
}

// NewUnknownType creates an UnknownType.
func NewUnknownType(parameters map[string]interface{}) *UnknownType {
	return &UnknownType{meta{parameters}}
}

func (t *UnknownType) Equal(other Type) bool {
	o, ok := other.(*UnknownType)
	return ok && typeParametersEqual(t.parameters, o.parameters)
}

func (t *UnknownType) String() string { return "unknown" }
