package forms

import (
	"sort"

	"github.com/ajitpratap0/ragged/pkg/dtypes"
	"github.com/ajitpratap0/ragged/pkg/errors"
	jsonpool "github.com/ajitpratap0/ragged/pkg/json"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// FromJSON deserializes a form from its wire format.
func FromJSON(input string) (Form, error) {
	var decoded interface{}
	if err := jsonpool.Unmarshal([]byte(input), &decoded); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "invalid form JSON")
	}
	return FromDict(decoded)
}

// FromDict deserializes a form from a JSON-compatible structure: either a
// bare primitive string (shorthand for a NumpyForm) or a nested mapping with
// a "class" discriminator. Legacy width-suffixed class spellings such as
// "ListArray64" or "UnionArray8_32" map onto the current variants.
func FromDict(input interface{}) (Form, error) {
	switch v := input.(type) {
	case string:
		return NewNumpyForm(dtypes.Primitive(v), nil, nil, nil)
	case map[string]interface{}:
		return fromMapping(v)
	case []interface{}:
		return nil, errors.New(errors.ErrorTypeData,
			"positional form state must be restored with FromState, not FromDict")
	}
	return nil, errors.Newf(errors.ErrorTypeData,
		"a form must be deserialized from a mapping or a primitive string, not %T", input)
}

func fromMapping(input map[string]interface{}) (Form, error) {
	class, err := requireString(input, "class")
	if err != nil {
		return nil, err
	}
	parameters, err := optionalParameters(input)
	if err != nil {
		return nil, err
	}
	formKey, err := optionalFormKey(input)
	if err != nil {
		return nil, err
	}

	switch class {
	case "NumpyArray":
		primitive, err := requireString(input, "primitive")
		if err != nil {
			return nil, err
		}
		innerShape, err := optionalShape(input, "inner_shape")
		if err != nil {
			return nil, err
		}
		return NewNumpyForm(dtypes.Primitive(primitive), innerShape, parameters, formKey)

	case "EmptyArray":
		return NewEmptyForm(parameters, formKey), nil

	case "RegularArray":
		content, err := requireContent(input, "content")
		if err != nil {
			return nil, err
		}
		size := int64(types.UnknownLength)
		if raw, ok := input["size"]; ok && raw != nil {
			size, err = asInt64(raw, "size")
			if err != nil {
				return nil, err
			}
		}
		return NewRegularForm(content, size, parameters, formKey)

	case "ListArray", "ListArray32", "ListArrayU32", "ListArray64":
		starts, err := requireString(input, "starts")
		if err != nil {
			return nil, err
		}
		stops, err := requireString(input, "stops")
		if err != nil {
			return nil, err
		}
		content, err := requireContent(input, "content")
		if err != nil {
			return nil, err
		}
		return NewListForm(dtypes.Index(starts), dtypes.Index(stops), content, parameters, formKey)

	case "ListOffsetArray", "ListOffsetArray32", "ListOffsetArrayU32", "ListOffsetArray64":
		offsets, err := requireString(input, "offsets")
		if err != nil {
			return nil, err
		}
		content, err := requireContent(input, "content")
		if err != nil {
			return nil, err
		}
		return NewListOffsetForm(dtypes.Index(offsets), content, parameters, formKey)

	case "RecordArray":
		return recordFromMapping(input, parameters, formKey)

	case "IndexedArray", "IndexedArray32", "IndexedArrayU32", "IndexedArray64":
		index, err := requireString(input, "index")
		if err != nil {
			return nil, err
		}
		content, err := requireContent(input, "content")
		if err != nil {
			return nil, err
		}
		return NewIndexedForm(dtypes.Index(index), content, parameters, formKey)

	case "IndexedOptionArray", "IndexedOptionArray32", "IndexedOptionArray64":
		index, err := requireString(input, "index")
		if err != nil {
			return nil, err
		}
		content, err := requireContent(input, "content")
		if err != nil {
			return nil, err
		}
		return NewIndexedOptionForm(dtypes.Index(index), content, parameters, formKey)

	case "ByteMaskedArray":
		mask, err := requireString(input, "mask")
		if err != nil {
			return nil, err
		}
		content, err := requireContent(input, "content")
		if err != nil {
			return nil, err
		}
		validWhen, err := requireBool(input, "valid_when")
		if err != nil {
			return nil, err
		}
		return NewByteMaskedForm(dtypes.Index(mask), content, validWhen, parameters, formKey)

	case "BitMaskedArray":
		mask, err := requireString(input, "mask")
		if err != nil {
			return nil, err
		}
		content, err := requireContent(input, "content")
		if err != nil {
			return nil, err
		}
		validWhen, err := requireBool(input, "valid_when")
		if err != nil {
			return nil, err
		}
		lsbOrder, err := requireBool(input, "lsb_order")
		if err != nil {
			return nil, err
		}
		return NewBitMaskedForm(dtypes.Index(mask), content, validWhen, lsbOrder, parameters, formKey)

	case "UnmaskedArray":
		content, err := requireContent(input, "content")
		if err != nil {
			return nil, err
		}
		return NewUnmaskedForm(content, parameters, formKey)

	case "UnionArray", "UnionArray8_32", "UnionArray8_U32", "UnionArray8_64":
		tags, err := requireString(input, "tags")
		if err != nil {
			return nil, err
		}
		index, err := requireString(input, "index")
		if err != nil {
			return nil, err
		}
		rawContents, ok := input["contents"].([]interface{})
		if !ok {
			return nil, errors.New(errors.ErrorTypeData,
				"UnionArray 'contents' must be a list")
		}
		contents := make([]Form, len(rawContents))
		for i, raw := range rawContents {
			contents[i], err = FromDict(raw)
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

// recordFromMapping accepts the three RecordArray payload shapes: new-style
// fields+contents lists, old-style mapping of field name to content, and
// old-style unnamed list of contents (a tuple). Old-style mappings are read
// in sorted field order since the wire mapping carries no order of its own.
func recordFromMapping(input map[string]interface{}, parameters map[string]interface{}, formKey *string) (Form, error) {
	rawFields, newStyle := input["fields"]

	if newStyle {
		if _, isMapping := input["contents"].(map[string]interface{}); isMapping {
			return nil, errors.New(errors.ErrorTypeData,
				"new-style RecordForm contents must not be mappings")
		}
		rawContents, ok := input["contents"].([]interface{})
		if !ok {
			return nil, errors.New(errors.ErrorTypeData,
				"RecordArray 'contents' must be a list")
		}
		contents := make([]Form, len(rawContents))
		for i, raw := range rawContents {
			content, err := FromDict(raw)
			if err != nil {
				return nil, err
			}
			contents[i] = content
		}
		fields, err := fieldNames(rawFields)
		if err != nil {
			return nil, err
		}
		return NewRecordForm(contents, fields, parameters, formKey)
	}

	if mapping, ok := input["contents"].(map[string]interface{}); ok {
		fields := make([]string, 0, len(mapping))
		for field := range mapping {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		contents := make([]Form, len(fields))
		for i, field := range fields {
			content, err := FromDict(mapping[field])
			if err != nil {
				return nil, err
			}
			contents[i] = content
		}
		return NewRecordForm(contents, fields, parameters, formKey)
	}

	rawContents, ok := input["contents"].([]interface{})
	if !ok {
		return nil, errors.New(errors.ErrorTypeData,
			"RecordArray 'contents' must be a list or a mapping")
	}
	contents := make([]Form, len(rawContents))
	for i, raw := range rawContents {
		content, err := FromDict(raw)
		if err != nil {
			return nil, err
		}
		contents[i] = content
	}
	return NewRecordForm(contents, nil, parameters, formKey)
}

// fieldNames accepts a field list as decoded JSON or as the []string a
// serialized form carries before encoding; nil means tuple mode.
func fieldNames(raw interface{}) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []interface{}:
		fields := make([]string, len(v))
		for i, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, errors.New(errors.ErrorTypeData,
					"RecordArray 'fields' must be strings")
			}
			fields[i] = name
		}
		return fields, nil
	}
	return nil, errors.Newf(errors.ErrorTypeData,
		"RecordArray 'fields' must be a list or null, not %T", raw)
}

func requireString(input map[string]interface{}, key string) (string, error) {
	raw, ok := input[key]
	if !ok {
		return "", errors.Newf(errors.ErrorTypeData, "form mapping is missing %q", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", errors.Newf(errors.ErrorTypeData, "form field %q must be a string, not %T", key, raw)
	}
	return s, nil
}

func requireBool(input map[string]interface{}, key string) (bool, error) {
	raw, ok := input[key]
	if !ok {
		return false, errors.Newf(errors.ErrorTypeData, "form mapping is missing %q", key)
	}
	b, ok := raw.(bool)
	if !ok {
		return false, errors.Newf(errors.ErrorTypeData, "form field %q must be a boolean, not %T", key, raw)
	}
	return b, nil
}

func requireContent(input map[string]interface{}, key string) (Form, error) {
	raw, ok := input[key]
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeData, "form mapping is missing %q", key)
	}
	return FromDict(raw)
}

func optionalParameters(input map[string]interface{}) (map[string]interface{}, error) {
	raw, ok := input["parameters"]
	if !ok || raw == nil {
		return nil, nil
	}
	params, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeData,
			"form field \"parameters\" must be a mapping, not %T", raw)
	}
	if len(params) == 0 {
		return nil, nil
	}
	return params, nil
}

func optionalFormKey(input map[string]interface{}) (*string, error) {
	raw, ok := input["form_key"]
	if !ok || raw == nil {
		return nil, nil
	}
	key, ok := raw.(string)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeData,
			"form field \"form_key\" must be a string or null, not %T", raw)
	}
	return &key, nil
}

func optionalShape(input map[string]interface{}, key string) ([]int64, error) {
	raw, ok := input[key]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeData,
			"form field %q must be a list, not %T", key, raw)
	}
	if len(list) == 0 {
		return nil, nil
	}
	shape := make([]int64, len(list))
	for i, item := range list {
		size, err := asInt64(item, key)
		if err != nil {
			return nil, err
		}
		shape[i] = size
	}
	return shape, nil
}

// asInt64 accepts the integer representations a JSON decoder may produce.
func asInt64(raw interface{}, key string) (int64, error) {
	switch v := raw.(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	}
	return 0, errors.Newf(errors.ErrorTypeData,
		"form field %q must be an integer, not %T", key, raw)
}
