package forms

import (
	"github.com/ajitpratap0/ragged/pkg/dtypes"
	"github.com/ajitpratap0/ragged/pkg/errors"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// BitMaskedForm marks missing values with a bit-packed mask. Both ValidWhen
// and LsbOrder (bit ordering within each byte) are needed to interpret it.
type BitMaskedForm struct {
	meta
	mask      dtypes.Index
	content   Form
	validWhen bool
	lsbOrder  bool
}

// NewBitMaskedForm creates a BitMaskedForm. The mask dtype must be u8.
// No canonicalization is performed; see SimplifiedBitMaskedForm.
func NewBitMaskedForm(mask dtypes.Index, content Form, validWhen, lsbOrder bool, parameters map[string]interface{}, formKey *string) (*BitMaskedForm, error) {
	if mask != dtypes.IndexUInt8 {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"BitMaskedForm 'mask' must be u8, not %q", string(mask)).
			WithDetail("mask", string(mask))
	}
	if content == nil {
		return nil, errors.New(errors.ErrorTypeValidation,
			"BitMaskedForm 'content' must be a Form, not nil")
	}
	return &BitMaskedForm{meta{parameters, formKey}, mask, content, validWhen, lsbOrder}, nil
}

// SimplifiedBitMaskedForm is the canonicalizing constructor; same collapses
// as SimplifiedByteMaskedForm.
func SimplifiedBitMaskedForm(mask dtypes.Index, content Form, validWhen, lsbOrder bool, parameters map[string]interface{}, formKey *string) (Form, error) {
	if IsUnion(content) && !isCategorical(parameters) {
		return content.(*UnionForm).unionOfOptionArrays(dtypes.IndexInt64, parameters)
	}
	if IsOption(content) || IsIndexed(content) {
		return SimplifiedIndexedOptionForm(dtypes.IndexInt64, content, parameters, nil)
	}
	return NewBitMaskedForm(mask, content, validWhen, lsbOrder, parameters, formKey)
}

// Mask returns the mask dtype.
func (f *BitMaskedForm) Mask() dtypes.Index { return f.mask }

// Content returns the child form.
func (f *BitMaskedForm) Content() Form { return f.content }

// ValidWhen reports which mask bit value marks validity.
func (f *BitMaskedForm) ValidWhen() bool { return f.validWhen }

// LsbOrder reports whether bits fill each byte least-significant first.
func (f *BitMaskedForm) LsbOrder() bool { return f.lsbOrder }

func (f *BitMaskedForm) Class() string { return "BitMaskedArray" }

// Copy returns a new BitMaskedForm with the same fields, sharing the child.
func (f *BitMaskedForm) Copy() *BitMaskedForm {
	c := *f
	return &c
}

// WithContent returns a copy with a replacement child.
func (f *BitMaskedForm) WithContent(content Form) *BitMaskedForm {
	c := *f
	c.content = content
	return &c
}

// WithParameters returns a copy with a replacement parameter bag; nil clears.
func (f *BitMaskedForm) WithParameters(parameters map[string]interface{}) *BitMaskedForm {
	c := *f
	c.parameters = parameters
	return &c
}

// WithFormKey returns a copy with a replacement form key; nil clears.
func (f *BitMaskedForm) WithFormKey(formKey *string) *BitMaskedForm {
	c := *f
	c.formKey = formKey
	return &c
}

func (f *BitMaskedForm) Equal(other Form) bool {
	o, ok := other.(*BitMaskedForm)
	return ok &&
		f.mask == o.mask &&
		f.validWhen == o.validWhen &&
		f.lsbOrder == o.lsbOrder &&
		formKeysEqual(f.formKey, o.formKey) &&
		typeParametersEqual(f.parameters, o.parameters) &&
		f.content.Equal(o.content)
}

func (f *BitMaskedForm) Type() types.Type {
	return optionTypeOf(f.content, f.parameters)
}

func (f *BitMaskedForm) String() string { return formString(f) }

func (f *BitMaskedForm) PurelistDepth() int { return f.content.PurelistDepth() }

func (f *BitMaskedForm) MinMaxDepth() (int, int) { return f.content.MinMaxDepth() }

func (f *BitMaskedForm) BranchDepth() (bool, int) { return f.content.BranchDepth() }

func (f *BitMaskedForm) PurelistIsRegular() bool { return f.content.PurelistIsRegular() }

func (f *BitMaskedForm) PurelistParameter(key string) interface{} {
	if f.parameters != nil {
		if value, ok := f.parameters[key]; ok {
			return value
		}
	}
	return f.content.PurelistParameter(key)
}

func (f *BitMaskedForm) toDictPart(verbose bool) map[string]interface{} {
	out := map[string]interface{}{
		"class":      "BitMaskedArray",
		"mask":       string(f.mask),
		"valid_when": f.validWhen,
		"lsb_order":  f.lsbOrder,
		"content":    f.content.toDictPart(verbose),
	}
	return f.toDictExtra(out, verbose)
}

func (f *BitMaskedForm) columns(path []string, listIndicator string, out *[]string) {
	f.content.columns(path, listIndicator, out)
}

func (f *BitMaskedForm) selectColumns(m *specifierMatcher) Form {
	next := f.content.selectColumns(m)
	if next == nil {
		return nil
	}
	return f.WithContent(next)
}

func (f *BitMaskedForm) pruneColumns(insideRecordOrUnion bool) Form {
	next := f.content.pruneColumns(insideRecordOrUnion)
	if next == nil {
		return nil
	}
	return f.WithContent(next)
}

func (f *BitMaskedForm) columnTypes(out *[]types.Type) {
	f.content.columnTypes(out)
}

func (f *BitMaskedForm) expectedFromBuffers(getkey GetKeyFunc, recursive bool, out *[]BufferExpectation) {
	*out = append(*out, BufferExpectation{Key: getkey(f, "mask"), DType: f.mask.Primitive()})
	if recursive {
		f.content.expectedFromBuffers(getkey, recursive, out)
	}
}
