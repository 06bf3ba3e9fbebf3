package forms

import (
	"github.com/ajitpratap0/ragged/pkg/dtypes"
	"github.com/ajitpratap0/ragged/pkg/errors"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// ByteMaskedForm marks missing values with a one-byte-per-element mask.
// ValidWhen fixes whether zero or nonzero mask bytes mean "valid".
type ByteMaskedForm struct {
	meta
	mask      dtypes.Index
	content   Form
	validWhen bool
}

// NewByteMaskedForm creates a ByteMaskedForm. The mask dtype must be i8.
// No canonicalization is performed; see SimplifiedByteMaskedForm.
func NewByteMaskedForm(mask dtypes.Index, content Form, validWhen bool, parameters map[string]interface{}, formKey *string) (*ByteMaskedForm, error) {
	if mask != dtypes.IndexInt8 {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"ByteMaskedForm 'mask' must be i8, not %q", string(mask)).
			WithDetail("mask", string(mask))
	}
	if content == nil {
		return nil, errors.New(errors.ErrorTypeValidation,
			"ByteMaskedForm 'content' must be a Form, not nil")
	}
	return &ByteMaskedForm{meta{parameters, formKey}, mask, content, validWhen}, nil
}

// SimplifiedByteMaskedForm is the canonicalizing constructor: a mask over a
// union distributes into a union of options; a mask over an option or index
// merges into a single IndexedOptionForm; otherwise a plain ByteMaskedForm.
func SimplifiedByteMaskedForm(mask dtypes.Index, content Form, validWhen bool, parameters map[string]interface{}, formKey *string) (Form, error) {
	if IsUnion(content) && !isCategorical(parameters) {
		return content.(*UnionForm).unionOfOptionArrays(dtypes.IndexInt64, parameters)
	}
	if IsOption(content) || IsIndexed(content) {
		return SimplifiedIndexedOptionForm(dtypes.IndexInt64, content, parameters, nil)
	}
	return NewByteMaskedForm(mask, content, validWhen, parameters, formKey)
}

// Mask returns the mask dtype.
func (f *ByteMaskedForm) Mask() dtypes.Index { return f.mask }

// Content returns the child form.
func (f *ByteMaskedForm) Content() Form { return f.content }

// ValidWhen reports which mask byte value marks validity.
func (f *ByteMaskedForm) ValidWhen() bool { return f.validWhen }

func (f *ByteMaskedForm) Class() string { return "ByteMaskedArray" }

// Copy returns a new ByteMaskedForm with the same fields, sharing the child.
func (f *ByteMaskedForm) Copy() *ByteMaskedForm {
	c := *f
	return &c
}

// WithContent returns a copy with a replacement child.
func (f *ByteMaskedForm) WithContent(content Form) *ByteMaskedForm {
	c := *f
	c.content = content
	return &c
}

// WithValidWhen returns a copy with the validity convention flipped as given.
func (f *ByteMaskedForm) WithValidWhen(validWhen bool) *ByteMaskedForm {
	c := *f
	c.validWhen = validWhen
	return &c
}

// WithParameters returns a copy with a replacement parameter bag; nil clears.
func (f *ByteMaskedForm) WithParameters(parameters map[string]interface{}) *ByteMaskedForm {
	c := *f
	c.parameters = parameters
	return &c
}

// WithFormKey returns a copy with a replacement form key; nil clears.
func (f *ByteMaskedForm) WithFormKey(formKey *string) *ByteMaskedForm {
	c := *f
	c.formKey = formKey
	return &c
}

func (f *ByteMaskedForm) Equal(other Form) bool {
	o, ok := other.(*ByteMaskedForm)
	return ok &&
		f.mask == o.mask &&
		f.validWhen == o.validWhen &&
		formKeysEqual(f.formKey, o.formKey) &&
		typeParametersEqual(f.parameters, o.parameters) &&
		f.content.Equal(o.content)
}

func (f *ByteMaskedForm) Type() types.Type {
	return optionTypeOf(f.content, f.parameters)
}

func (f *ByteMaskedForm) String() string { return formString(f) }

func (f *ByteMaskedForm) PurelistDepth() int { return f.content.PurelistDepth() }

func (f *ByteMaskedForm) MinMaxDepth() (int, int) { return f.content.MinMaxDepth() }

func (f *ByteMaskedForm) BranchDepth() (bool, int) { return f.content.BranchDepth() }

func (f *ByteMaskedForm) PurelistIsRegular() bool { return f.content.PurelistIsRegular() }

func (f *ByteMaskedForm) PurelistParameter(key string) interface{} {
	if f.parameters != nil {
		if value, ok := f.parameters[key]; ok {
			return value
		}
	}
	return f.content.PurelistParameter(key)
}

func (f *ByteMaskedForm) toDictPart(verbose bool) map[string]interface{} {
	out := map[string]interface{}{
		"class":      "ByteMaskedArray",
		"mask":       string(f.mask),
		"valid_when": f.validWhen,
		"content":    f.content.toDictPart(verbose),
	}
	return f.toDictExtra(out, verbose)
}

func (f *ByteMaskedForm) columns(path []string, listIndicator string, out *[]string) {
	f.content.columns(path, listIndicator, out)
}

func (f *ByteMaskedForm) selectColumns(m *specifierMatcher) Form {
	next := f.content.selectColumns(m)
	if next == nil {
		return nil
	}
	return f.WithContent(next)
}

func (f *ByteMaskedForm) pruneColumns(insideRecordOrUnion bool) Form {
	next := f.content.pruneColumns(insideRecordOrUnion)
	if next == nil {
		return nil
	}
	return f.WithContent(next)
}

func (f *ByteMaskedForm) columnTypes(out *[]types.Type) {
	f.content.columnTypes(out)
}

func (f *ByteMaskedForm) expectedFromBuffers(getkey GetKeyFunc, recursive bool, out *[]BufferExpectation) {
	*out = append(*out, BufferExpectation{Key: getkey(f, "mask"), DType: f.mask.Primitive()})
	if recursive {
		f.content.expectedFromBuffers(getkey, recursive, out)
	}
}
