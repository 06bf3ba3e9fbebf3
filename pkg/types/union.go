package types

import (
	"strings"

	"github.com/ajitpratap0/ragged/pkg/errors"
)

// UnionType is the semantic type of heterogeneous branches.
type UnionType struct {
	meta
	contents []Type
}

// NewUnionType creates a UnionType over the given branch types.
func NewUnionType(contents []Type, parameters map[string]interface{}) (*UnionType, error) {
	for i, content := range contents {
		if content == nil {
			return nil, errors.Newf(errors.ErrorTypeValidation,
				"UnionType all 'contents' must be Types, content %d is nil", i)
		}
	}
	return &UnionType{meta{parameters}, contents}, nil
}

// Contents returns the branch types in tag order.
func (t *UnionType) Contents() []Type { return t.contents }

func (t *UnionType) Equal(other Type) bool {
	o, ok := other.(*UnionType)
	if !ok ||
		len(t.contents) != len(o.contents) ||
		!typeParametersEqual(t.parameters, o.parameters) {
		return false
	}
	for i := range t.contents {
		if !t.contents[i].Equal(o.contents[i]) {
			return false
		}
	}
	return true
}

func (t *UnionType) String() string {
	var sb strings.Builder
	sb.WriteString("union[")
	for i, content := range t.contents {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(content.String())
	}
	sb.WriteString("]")
	return sb.String()
}
