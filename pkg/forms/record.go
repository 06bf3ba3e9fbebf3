package forms

import (
	"strconv"

	"github.com/ajitpratap0/ragged/pkg/errors"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// RecordForm is a product of heterogeneous children. With Fields it is a
// named record; with a nil field list it is a tuple and fields are addressed
// by position (stringified indices on the wire and in column paths).
type RecordForm struct {
	meta
	contents []Form
	fields   []string
}

// NewRecordForm creates a RecordForm. A nil fields slice means tuple mode;
// otherwise fields must be the same length as contents and duplicate-free.
func NewRecordForm(contents []Form, fields []string, parameters map[string]interface{}, formKey *string) (*RecordForm, error) {
	for i, content := range contents {
		if content == nil {
			return nil, errors.Newf(errors.ErrorTypeValidation,
				"RecordForm all 'contents' must be Forms, content %d is nil", i).
				WithDetail("index", i)
		}
	}
	if fields != nil {
		if len(fields) != len(contents) {
			return nil, errors.Newf(errors.ErrorTypeValidation,
				"RecordForm 'fields' has length %d but 'contents' has length %d",
				len(fields), len(contents)).
				WithDetail("fields", len(fields)).
				WithDetail("contents", len(contents))
		}
		seen := make(map[string]struct{}, len(fields))
		for _, field := range fields {
			if _, dup := seen[field]; dup {
				return nil, errors.Newf(errors.ErrorTypeValidation,
					"RecordForm 'fields' contains duplicate field %q", field).
					WithDetail("field", field)
			}
			seen[field] = struct{}{}
		}
	}
	return &RecordForm{meta{parameters, formKey}, contents, fields}, nil
}

// Contents returns the child forms in field order.
func (f *RecordForm) Contents() []Form { return f.contents }

// Fields returns the field names; for a tuple these are the stringified
// positional indices.
func (f *RecordForm) Fields() []string {
	if f.fields != nil {
		return f.fields
	}
	fields := make([]string, len(f.contents))
	for i := range f.contents {
		fields[i] = strconv.Itoa(i)
	}
	return fields
}

// IsTuple reports whether the record has no explicit field names.
func (f *RecordForm) IsTuple() bool { return f.fields == nil }

// IndexToField maps a positional index to its field name.
func (f *RecordForm) IndexToField(index int) (string, error) {
	if index < 0 || index >= len(f.contents) {
		return "", errors.Newf(errors.ErrorTypeNotFound,
			"no index %d in record with %d fields", index, len(f.contents)).
			WithDetail("index", index)
	}
	if f.fields == nil {
		return strconv.Itoa(index), nil
	}
	return f.fields[index], nil
}

// FieldToIndex maps a field name to its positional index. For tuples the
// name must parse as an in-range integer.
func (f *RecordForm) FieldToIndex(field string) (int, error) {
	if f.fields == nil {
		index, err := strconv.Atoi(field)
		if err == nil && 0 <= index && index < len(f.contents) {
			return index, nil
		}
	} else {
		for i, name := range f.fields {
			if name == field {
				return i, nil
			}
		}
	}
	return 0, errors.Newf(errors.ErrorTypeNotFound,
		"no field %q in record with %d fields", field, len(f.contents)).
		WithDetail("field", field)
}

// HasField reports whether the record has the named field.
func (f *RecordForm) HasField(field string) bool {
	_, err := f.FieldToIndex(field)
	return err == nil
}

// Content returns the child form for the named field.
func (f *RecordForm) Content(field string) (Form, error) {
	index, err := f.FieldToIndex(field)
	if err != nil {
		return nil, err
	}
	return f.contents[index], nil
}

func (f *RecordForm) Class() string { return "RecordArray" }

// Copy returns a new RecordForm with the same fields, sharing the children.
func (f *RecordForm) Copy() *RecordForm {
	c := *f
	return &c
}

// WithContents returns a copy with replacement children; field names are
// unchanged, so the lengths must agree.
func (f *RecordForm) WithContents(contents []Form) *RecordForm {
	c := *f
	c.contents = contents
	return &c
}

// WithParameters returns a copy with a replacement parameter bag; nil clears.
func (f *RecordForm) WithParameters(parameters map[string]interface{}) *RecordForm {
	c := *f
	c.parameters = parameters
	return &c
}

// WithFormKey returns a copy with a replacement form key; nil clears.
func (f *RecordForm) WithFormKey(formKey *string) *RecordForm {
	c := *f
	c.formKey = formKey
	return &c
}

// Equal compares records. Named records compare field-by-name, so two
// records with the same fields in different order are equal; tuples compare
// positionally.
func (f *RecordForm) Equal(other Form) bool {
	o, ok := other.(*RecordForm)
	if !ok ||
		f.IsTuple() != o.IsTuple() ||
		len(f.contents) != len(o.contents) ||
		!formKeysEqual(f.formKey, o.formKey) ||
		!typeParametersEqual(f.parameters, o.parameters) {
		return false
	}
	if f.IsTuple() {
		for i, content := range f.contents {
			if !content.Equal(o.contents[i]) {
				return false
			}
		}
		return true
	}
	for i, field := range f.fields {
		j, err := o.FieldToIndex(field)
		if err != nil || !f.contents[i].Equal(o.contents[j]) {
			return false
		}
	}
	return true
}

func (f *RecordForm) Type() types.Type {
	contents := make([]types.Type, len(f.contents))
	for i, content := range f.contents {
		contents[i] = content.Type()
	}
	out, _ := types.NewRecordType(contents, f.fields, f.parameters)
	return out
}

func (f *RecordForm) String() string { return formString(f) }

func (f *RecordForm) PurelistDepth() int { return 1 }

func (f *RecordForm) MinMaxDepth() (int, int) {
	if len(f.contents) == 0 {
		return 1, 1
	}
	mn, mx := 0, 0
	for i, content := range f.contents {
		cmn, cmx := content.MinMaxDepth()
		if i == 0 || cmn < mn {
			mn = cmn
		}
		if i == 0 || cmx > mx {
			mx = cmx
		}
	}
	return mn, mx
}

func (f *RecordForm) BranchDepth() (bool, int) {
	if len(f.contents) == 0 {
		return false, 1
	}
	anyBranch := false
	minDepth := -1
	for _, content := range f.contents {
		branch, depth := content.BranchDepth()
		if minDepth == -1 {
			minDepth = depth
		}
		if branch || minDepth != depth {
			anyBranch = true
		}
		if depth < minDepth {
			minDepth = depth
		}
	}
	return anyBranch, minDepth
}

func (f *RecordForm) PurelistIsRegular() bool { return true }

// PurelistParameter stops at the record: children are separate columns, not
// part of the pure list chain.
func (f *RecordForm) PurelistParameter(key string) interface{} {
	if f.parameters == nil {
		return nil
	}
	return f.parameters[key]
}

func (f *RecordForm) toDictPart(verbose bool) map[string]interface{} {
	contents := make([]interface{}, len(f.contents))
	for i, content := range f.contents {
		contents[i] = content.toDictPart(verbose)
	}
	var fields interface{}
	if f.fields != nil {
		fields = f.fields
	}
	out := map[string]interface{}{
		"class":    "RecordArray",
		"fields":   fields,
		"contents": contents,
	}
	return f.toDictExtra(out, verbose)
}

func (f *RecordForm) columns(path []string, listIndicator string, out *[]string) {
	for i, content := range f.contents {
		field, _ := f.IndexToField(i)
		content.columns(append(path[:len(path):len(path)], field), listIndicator, out)
	}
}

func (f *RecordForm) selectColumns(m *specifierMatcher) Form {
	contents := make([]Form, 0, len(f.contents))
	fields := make([]string, 0, len(f.contents))
	for i, content := range f.contents {
		field, _ := f.IndexToField(i)
		sub := m.match(field)
		if sub == nil {
			continue
		}
		next := content.selectColumns(sub)
		if next == nil {
			continue
		}
		contents = append(contents, next)
		fields = append(fields, field)
	}
	if f.fields == nil && len(contents) == len(f.contents) {
		// Fully surviving tuple stays a tuple.
		fields = nil
	}
	out, _ := NewRecordForm(contents, fields, f.parameters, f.formKey)
	return out
}

// pruneColumns drops children that select no leaf columns. An emptied record
// nested inside another record or union disappears; an emptied record at the
// top level is kept so the caller still gets a Form.
func (f *RecordForm) pruneColumns(insideRecordOrUnion bool) Form {
	contents := make([]Form, 0, len(f.contents))
	fields := make([]string, 0, len(f.contents))
	for i, content := range f.contents {
		next := content.pruneColumns(true)
		if next == nil {
			continue
		}
		field, _ := f.IndexToField(i)
		contents = append(contents, next)
		fields = append(fields, field)
	}
	if len(contents) == 0 && insideRecordOrUnion {
		return nil
	}
	if f.fields == nil && len(contents) == len(f.contents) {
		fields = nil
	}
	out, _ := NewRecordForm(contents, fields, f.parameters, f.formKey)
	return out
}

func (f *RecordForm) columnTypes(out *[]types.Type) {
	for _, content := range f.contents {
		content.columnTypes(out)
	}
}

func (f *RecordForm) expectedFromBuffers(getkey GetKeyFunc, recursive bool, out *[]BufferExpectation) {
	if recursive {
		for _, content := range f.contents {
			content.expectedFromBuffers(getkey, recursive, out)
		}
	}
}
