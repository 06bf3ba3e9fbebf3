package forms

import (
	"github.com/ajitpratap0/ragged/pkg/dtypes"
	"github.com/ajitpratap0/ragged/pkg/errors"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// FromType lifts a semantic type into a form, choosing one canonical
// physical encoding per node: 64-bit signed offsets for lists, a 64-bit
// signed index for options, and an 8-bit tag with 64-bit signed index for
// unions. The lift is lossy with respect to physical layout by construction,
// since a type carries none.
func FromType(t types.Type) (Form, error) {
	switch v := t.(type) {
	case *types.NumpyType:
		return NewNumpyForm(v.Primitive(), nil, v.Parameters(), nil)

	case *types.UnknownType:
		return NewEmptyForm(v.Parameters(), nil), nil

	case *types.ListType:
		content, err := FromType(v.Content())
		if err != nil {
			return nil, err
		}
		return NewListOffsetForm(dtypes.IndexInt64, content, v.Parameters(), nil)

	case *types.RegularType:
		content, err := FromType(v.Content())
		if err != nil {
			return nil, err
		}
		return NewRegularForm(content, v.Size(), v.Parameters(), nil)

	case *types.OptionType:
		content, err := FromType(v.Content())
		if err != nil {
			return nil, err
		}
		return NewIndexedOptionForm(dtypes.IndexInt64, content, v.Parameters(), nil)

	case *types.RecordType:
		contents := make([]Form, len(v.Contents()))
		for i, c := range v.Contents() {
			content, err := FromType(c)
			if err != nil {
				return nil, err
			}
			contents[i] = content
		}
		var fields []string
		if !v.IsTuple() {
			fields = v.Fields()
		}
		return NewRecordForm(contents, fields, v.Parameters(), nil)

	case *types.UnionType:
		contents := make([]Form, len(v.Contents()))
		for i, c := range v.Contents() {
			content, err := FromType(c)
			if err != nil {
				return nil, err
			}
			contents[i] = content
		}
		return NewUnionForm(dtypes.IndexInt8, dtypes.IndexInt64, contents, v.Parameters(), nil)

	}

	return nil, errors.Newf(errors.ErrorTypeUnsupported, "unsupported type %T", t)
}

// FromArrayType lifts the element type of a length-qualified array type.
func FromArrayType(t *types.ArrayType) (Form, error) {
	return FromType(t.Content())
}
