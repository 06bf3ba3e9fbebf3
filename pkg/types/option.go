package types

import (
	"github.com/ajitpratap0/ragged/pkg/errors"
)

// OptionType is the semantic type of potentially-missing values.
type OptionType struct {
	meta
	content Type
}

// NewOptionType creates an OptionType over the given content. No collapsing
// is performed; see SimplifyOptionUnion.
func NewOptionType(content Type, parameters map[string]interface{}) (*OptionType, error) {
	if content == nil {
		return nil, errors.New(errors.ErrorTypeValidation,
			"OptionType 'content' must be a Type, not nil")
	}
	return &OptionType{meta{parameters}, content}, nil
}

// Content returns the wrapped type.
func (t *OptionType) Content() Type { return t.content }

// SimplifyOptionUnion canonicalizes this option: an option-of-option merges
// into one option, and an option-of-union distributes into a union of
// options.
func (t *OptionType) SimplifyOptionUnion() Type {
	switch content := t.content.(type) {
	case *OptionType:
		inner := content.SimplifyOptionUnion()
		if opt, ok := inner.(*OptionType); ok {
			inner = opt.content
		}
		merged, _ := NewOptionType(inner, mergeTypeParameters(content.parameters, t.parameters))
		return merged.SimplifyOptionUnion()
	case *UnionType:
		contents := make([]Type, len(content.contents))
		for i, branch := range content.contents {
			opt, _ := NewOptionType(branch, nil)
			contents[i] = opt.SimplifyOptionUnion()
		}
		union, _ := NewUnionType(contents, mergeTypeParameters(content.parameters, t.parameters))
		return union
	default:
		return t
	}
}

func (t *OptionType) Equal(other Type) bool {
	o, ok := other.(*OptionType)
	return ok &&
		typeParametersEqual(t.parameters, o.parameters) &&
		t.content.Equal(o.content)
}

func (t *OptionType) String() string {
	switch t.content.(type) {
	case *ListType, *RegularType:
		return "option[" + t.content.String() + "]"
	default:
		return "?" + t.content.String()
	}
}

// mergeTypeParameters merges two parameter bags; keys from the outer bag win.
func mergeTypeParameters(inner, outer map[string]interface{}) map[string]interface{} {
	if inner == nil {
		return outer
	}
	if outer == nil {
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
