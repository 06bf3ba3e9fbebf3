package forms

import (
	"github.com/ajitpratap0/ragged/pkg/dtypes"
	"github.com/ajitpratap0/ragged/pkg/errors"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// FromState restores a form from the oldest serialization protocol, which
// pickled each node as a plain positional sequence rather than a mapping.
// Every class starts with (has_identities, parameters, form_key) and then
// lists the variant's constructor arguments in wire order. The identities
// flag is obsolete and ignored. A non-null form key is prefixed with the
// "part0-" partition marker, matching how partitioned datasets from that era
// are re-read as their first partition.
func FromState(class string, state []interface{}) (Form, error) {
	if len(state) < 3 {
		return nil, errors.Newf(errors.ErrorTypeData,
			"positional %s state must have at least 3 entries, not %d", class, len(state))
	}
	parameters, formKey, err := stateHeader(state)
	if err != nil {
		return nil, err
	}
	rest := state[3:]

	switch class {
	case "NumpyArray":
		if err := stateArity(class, rest, 2); err != nil {
			return nil, err
		}
		primitive, err := stateString(class, rest[0], "primitive")
		if err != nil {
			return nil, err
		}
		var shape []int64
		if rest[1] != nil {
			list, ok := rest[1].([]interface{})
			if !ok {
				return nil, errors.Newf(errors.ErrorTypeData,
					"positional NumpyArray 'inner_shape' must be a list, not %T", rest[1])
			}
			for _, item := range list {
				size, err := asInt64(item, "inner_shape")
				if err != nil {
					return nil, err
				}
				shape = append(shape, size)
			}
		}
		return NewNumpyForm(dtypes.Primitive(primitive), shape, parameters, formKey)

	case "EmptyArray":
		if err := stateArity(class, rest, 0); err != nil {
			return nil, err
		}
		return NewEmptyForm(parameters, formKey), nil

	case "RegularArray":
		if err := stateArity(class, rest, 2); err != nil {
			return nil, err
		}
		content, err := stateContent(class, rest[0])
		if err != nil {
			return nil, err
		}
		size := int64(types.UnknownLength)
		if rest[1] != nil {
			size, err = asInt64(rest[1], "size")
			if err != nil {
				return nil, err
			}
		}
		return NewRegularForm(content, size, parameters, formKey)

	case "ListArray", "ListArray32", "ListArrayU32", "ListArray64":
		if err := stateArity(class, rest, 3); err != nil {
			return nil, err
		}
		starts, err := stateString(class, rest[0], "starts")
		if err != nil {
			return nil, err
		}
		stops, err := stateString(class, rest[1], "stops")
		if err != nil {
			return nil, err
		}
		content, err := stateContent(class, rest[2])
		if err != nil {
			return nil, err
		}
		return NewListForm(dtypes.Index(starts), dtypes.Index(stops), content, parameters, formKey)

	case "ListOffsetArray", "ListOffsetArray32", "ListOffsetArrayU32", "ListOffsetArray64":
		if err := stateArity(class, rest, 2); err != nil {
			return nil, err
		}
		offsets, err := stateString(class, rest[0], "offsets")
		if err != nil {
			return nil, err
		}
		content, err := stateContent(class, rest[1])
		if err != nil {
			return nil, err
		}
		return NewListOffsetForm(dtypes.Index(offsets), content, parameters, formKey)

	case "IndexedArray", "IndexedArray32", "IndexedArrayU32", "IndexedArray64":
		if err := stateArity(class, rest, 2); err != nil {
			return nil, err
		}
		index, err := stateString(class, rest[0], "index")
		if err != nil {
			return nil, err
		}
		content, err := stateContent(class, rest[1])
		if err != nil {
			return nil, err
		}
		return NewIndexedForm(dtypes.Index(index), content, parameters, formKey)

	case "IndexedOptionArray", "IndexedOptionArray32", "IndexedOptionArray64":
		if err := stateArity(class, rest, 2); err != nil {
			return nil, err
		}
		index, err := stateString(class, rest[0], "index")
		if err != nil {
			return nil, err
		}
		content, err := stateContent(class, rest[1])
		if err != nil {
			return nil, err
		}
		return NewIndexedOptionForm(dtypes.Index(index), content, parameters, formKey)

	case "ByteMaskedArray":
		if err := stateArity(class, rest, 3); err != nil {
			return nil, err
		}
		mask, err := stateString(class, rest[0], "mask")
		if err != nil {
			return nil, err
		}
		content, err := stateContent(class, rest[1])
		if err != nil {
			return nil, err
		}
		validWhen, ok := rest[2].(bool)
		if !ok {
			return nil, errors.Newf(errors.ErrorTypeData,
				"positional ByteMaskedArray 'valid_when' must be a boolean, not %T", rest[2])
		}
		return NewByteMaskedForm(dtypes.Index(mask), content, validWhen, parameters, formKey)

	case "BitMaskedArray":
		if err := stateArity(class, rest, 4); err != nil {
			return nil, err
		}
		mask, err := stateString(class, rest[0], "mask")
		if err != nil {
			return nil, err
		}
		content, err := stateContent(class, rest[1])
		if err != nil {
			return nil, err
		}
		validWhen, okValid := rest[2].(bool)
		lsbOrder, okLsb := rest[3].(bool)
		if !okValid || !okLsb {
			return nil, errors.New(errors.ErrorTypeData,
				"positional BitMaskedArray 'valid_when' and 'lsb_order' must be booleans")
		}
		return NewBitMaskedForm(dtypes.Index(mask), content, validWhen, lsbOrder, parameters, formKey)

	case "UnmaskedArray":
		if err := stateArity(class, rest, 1); err != nil {
			return nil, err
		}
		content, err := stateContent(class, rest[0])
		if err != nil {
			return nil, err
		}
		return NewUnmaskedForm(content, parameters, formKey)

	case "RecordArray":
		if err := stateArity(class, rest, 2); err != nil {
			return nil, err
		}
		rawContents, ok := rest[0].([]interface{})
		if !ok {
			return nil, errors.Newf(errors.ErrorTypeData,
				"positional RecordArray 'contents' must be a list, not %T", rest[0])
		}
		contents := make([]Form, len(rawContents))
		for i, raw := range rawContents {
			contents[i], err = stateContent(class, raw)
			if err != nil {
				return nil, err
			}
		}
		fields, err := fieldNames(rest[1])
		if err != nil {
			return nil, err
		}
		return NewRecordForm(contents, fields, parameters, formKey)

	case "UnionArray", "UnionArray8_32", "UnionArray8_U32", "UnionArray8_64":
		if err := stateArity(class, rest, 3); err != nil {
			return nil, err
		}
		tags, err := stateString(class, rest[0], "tags")
		if err != nil {
			return nil, err
		}
		index, err := stateString(class, rest[1], "index")
		if err != nil {
			return nil, err
		}
		rawContents, ok := rest[2].([]interface{})
		if !ok {
			return nil, errors.Newf(errors.ErrorTypeData,
				"positional UnionArray 'contents' must be a list, not %T", rest[2])
		}
		contents := make([]Form, len(rawContents))
		for i, raw := range rawContents {
			contents[i], err = stateContent(class, raw)
			if err != nil {
				return nil, err
			}
		}
		return NewUnionForm(dtypes.Index(tags), dtypes.Index(index), contents, parameters, formKey)

	case "VirtualArray":
		return nil, errors.New(errors.ErrorTypeUnsupported,
			"legacy VirtualArrays are not supported")
	}

	return nil, errors.Newf(errors.ErrorTypeData,
		"input class: %q was not recognised", class)
}

// stateHeader unpacks the common (has_identities, parameters, form_key)
// prefix, applying the part0- prefix quirk.
func stateHeader(state []interface{}) (map[string]interface{}, *string, error) {
	var parameters map[string]interface{}
	if state[1] != nil {
		params, ok := state[1].(map[string]interface{})
		if !ok {
			return nil, nil, errors.Newf(errors.ErrorTypeData,
				"positional state 'parameters' must be a mapping or nil, not %T", state[1])
		}
		if len(params) > 0 {
			parameters = params
		}
	}
	var formKey *string
	if state[2] != nil {
		key, ok := state[2].(string)
		if !ok {
			return nil, nil, errors.Newf(errors.ErrorTypeData,
				"positional state 'form_key' must be a string or nil, not %T", state[2])
		}
		prefixed := "part0-" + key
		formKey = &prefixed
	}
	return parameters, formKey, nil
}

func stateArity(class string, rest []interface{}, want int) error {
	if len(rest) != want {
		return errors.Newf(errors.ErrorTypeData,
			"positional %s state must have %d entries after the header, not %d",
			class, want, len(rest))
	}
	return nil
}

func stateString(class string, raw interface{}, name string) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", errors.Newf(errors.ErrorTypeData,
			"positional %s %q must be a string, not %T", class, name, raw)
	}
	return s, nil
}

// stateContent accepts a child as an already-built Form, a nested mapping,
// or a bare primitive string.
func stateContent(class string, raw interface{}) (Form, error) {
	if form, ok := raw.(Form); ok {
		return form, nil
	}
	form, err := FromDict(raw)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrorTypeData,
			"positional %s content", class)
	}
	return form, nil
}
