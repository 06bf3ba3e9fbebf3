package types

import (
	"fmt"

	"github.com/ajitpratap0/ragged/pkg/errors"
)

// ListType is the semantic type of a variable-length list.
type ListType struct {
	meta
	content Type
}

// NewListType creates a ListType over the given content.
func NewListType(content Type, parameters map[string]interface{}) (*ListType, error) {
	if content == nil {
		return nil, errors.New(errors.ErrorTypeValidation,
			"ListType 'content' must be a Type, not nil")
	}
	return &ListType{meta{parameters}, content}, nil
}

// Content returns the element type.
func (t *ListType) Content() Type { return t.content }

func (t *ListType) Equal(other Type) bool {
	o, ok := other.(*ListType)
	return ok &&
		typeParametersEqual(t.parameters, o.parameters) &&
		t.content.Equal(o.content)
}

func (t *ListType) String() string {
	switch t.Parameter("__array__") {
	case "string":
		return "string"
	case "bytestring":
		return "bytes"
	}
	return "var * " + t.content.String()
}

// RegularType is the semantic type of a fixed-size list.
type RegularType struct {
	meta
	content Type
	size    int64
}

// NewRegularType creates a RegularType. Size must be non-negative or
// UnknownLength.
func NewRegularType(content Type, size int64, parameters map[string]interface{}) (*RegularType, error) {
	if content == nil {
		return nil, errors.New(errors.ErrorTypeValidation,
			"RegularType 'content' must be a Type, not nil")
	}
	if size < 0 && size != UnknownLength {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"RegularType 'size' must be a non-negative integer or UnknownLength, not %d", size)
	}
	return &RegularType{meta{parameters}, content, size}, nil
}

// Content returns the element type.
func (t *RegularType) Content() Type { return t.content }

// Size returns the fixed element count, or UnknownLength.
func (t *RegularType) Size() int64 { return t.size }

func (t *RegularType) Equal(other Type) bool {
	o, ok := other.(*RegularType)
	return ok &&
		t.size == o.size &&
		typeParametersEqual(t.parameters, o.parameters) &&
		t.content.Equal(o.content)
}

func (t *RegularType) String() string {
	if t.size == UnknownLength {
		return "## * " + t.content.String()
	}
	return fmt.Sprintf("%d * %s", t.size, t.content.String())
}
