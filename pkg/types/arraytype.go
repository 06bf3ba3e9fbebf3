package types

import (
	"fmt"

	"github.com/ajitpratap0/ragged/pkg/errors"
)

// ArrayType pairs a Type with a top-level length: the type of a whole array
// rather than of one of its layers.
type ArrayType struct {
	content Type
	length  int64
}

// NewArrayType creates an ArrayType. Length must be non-negative or
// UnknownLength.
func NewArrayType(content Type, length int64) (*ArrayType, error) {
	if content == nil {
		return nil, errors.New(errors.ErrorTypeValidation,
			"ArrayType 'content' must be a Type, not nil")
	}
	if length < 0 && length != UnknownLength {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"ArrayType 'length' must be a non-negative integer or UnknownLength, not %d", length)
	}
	return &ArrayType{content, length}, nil
}

// Content returns the element type.
func (t *ArrayType) Content() Type { return t.content }

// Length returns the top-level length, or UnknownLength.
func (t *ArrayType) Length() int64 { return t.length }

// Equal compares structurally. An unknown length matches any length.
func (t *ArrayType) Equal(other *ArrayType) bool {
	if other == nil {
		return false
	}
	if t.length != UnknownLength && other.length != UnknownLength && t.length != other.length {
		return false
	}
	return t.content.Equal(other.content)
}

func (t *ArrayType) String() string {
	if t.length == UnknownLength {
		return "## * " + t.content.String()
	}
	return fmt.Sprintf("%d * %s", t.length, t.content.String())
}
