package forms

import (
	"github.com/ajitpratap0/ragged/pkg/errors"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// UnmaskedForm asserts that no missing values exist even though the node
// sits in an option-shaped position. It owns no mask buffer.
type UnmaskedForm struct {
	meta
	content Form
}

// NewUnmaskedForm creates an UnmaskedForm. No canonicalization is performed;
// see SimplifiedUnmaskedForm.
func NewUnmaskedForm(content Form, parameters map[string]interface{}, formKey *string) (*UnmaskedForm, error) {
	if content == nil {
		return nil, errors.New(errors.ErrorTypeValidation,
			"UnmaskedForm 'content' must be a Form, not nil")
	}
	return &UnmaskedForm{meta{parameters, formKey}, content}, nil
}

// SimplifiedUnmaskedForm is the canonicalizing constructor: an Unmasked over
// a union, option, or index dissolves into its child, which already handles
// those semantics.
func SimplifiedUnmaskedForm(content Form, parameters map[string]interface{}, formKey *string) (Form, error) {
	if IsUnion(content) || IsOption(content) || IsIndexed(content) {
		merged := mergeParameters(content.Parameters(), parameters)
		switch v := content.(type) {
		case *UnionForm:
			return v.WithParameters(merged), nil
		case *IndexedForm:
			return v.WithParameters(merged), nil
		case *IndexedOptionForm:
			return v.WithParameters(merged), nil
		case *ByteMaskedForm:
			return v.WithParameters(merged), nil
		case *BitMaskedForm:
			return v.WithParameters(merged), nil
		case *UnmaskedForm:
			return v.WithParameters(merged), nil
		}
	}
	return NewUnmaskedForm(content, parameters, formKey)
}

// Content returns the child form.
func (f *UnmaskedForm) Content() Form { return f.content }

func (f *UnmaskedForm) Class() string { return "UnmaskedArray" }

// Copy returns a new UnmaskedForm with the same fields, sharing the child.
func (f *UnmaskedForm) Copy() *UnmaskedForm {
	c := *f
	return &c
}

// WithContent returns a copy with a replacement child.
func (f *UnmaskedForm) WithContent(content Form) *UnmaskedForm {
	c := *f
	c.content = content
	return &c
}

// WithParameters returns a copy with a replacement parameter bag; nil clears.
func (f *UnmaskedForm) WithParameters(parameters map[string]interface{}) *UnmaskedForm {
	c := *f
	c.parameters = parameters
	return &c
}

// WithFormKey returns a copy with a replacement form key; nil clears.
func (f *UnmaskedForm) WithFormKey(formKey *string) *UnmaskedForm {
	c := *f
	c.formKey = formKey
	return &c
}

func (f *UnmaskedForm) Equal(other Form) bool {
	o, ok := other.(*UnmaskedForm)
	return ok &&
		formKeysEqual(f.formKey, o.formKey) &&
		typeParametersEqual(f.parameters, o.parameters) &&
		f.content.Equal(o.content)
}

func (f *UnmaskedForm) Type() types.Type {
	return optionTypeOf(f.content, f.parameters)
}

func (f *UnmaskedForm) String() string { return formString(f) }

func (f *UnmaskedForm) PurelistDepth() int { return f.content.PurelistDepth() }

func (f *UnmaskedForm) MinMaxDepth() (int, int) { return f.content.MinMaxDepth() }

func (f *UnmaskedForm) BranchDepth() (bool, int) { return f.content.BranchDepth() }

func (f *UnmaskedForm) PurelistIsRegular() bool { return f.content.PurelistIsRegular() }

func (f *UnmaskedForm) PurelistParameter(key string) interface{} {
	if f.parameters != nil {
		if value, ok := f.parameters[key]; ok {
			return value
		}
	}
	return f.content.PurelistParameter(key)
}

func (f *UnmaskedForm) toDictPart(verbose bool) map[string]interface{} {
	out := map[string]interface{}{
		"class":   "UnmaskedArray",
		"content": f.content.toDictPart(verbose),
	}
	return f.toDictExtra(out, verbose)
}

func (f *UnmaskedForm) columns(path []string, listIndicator string, out *[]string) {
	f.content.columns(path, listIndicator, out)
}

func (f *UnmaskedForm) selectColumns(m *specifierMatcher) Form {
	next := f.content.selectColumns(m)
	if next == nil {
		return nil
	}
	return f.WithContent(next)
}

func (f *UnmaskedForm) pruneColumns(insideRecordOrUnion bool) Form {
	next := f.content.pruneColumns(insideRecordOrUnion)
	if next == nil {
		return nil
	}
	return f.WithContent(next)
}

func (f *UnmaskedForm) columnTypes(out *[]types.Type) {
	f.content.columnTypes(out)
}

func (f *UnmaskedForm) expectedFromBuffers(getkey GetKeyFunc, recursive bool, out *[]BufferExpectation) {
	if recursive {
		f.content.expectedFromBuffers(getkey, recursive, out)
	}
}
