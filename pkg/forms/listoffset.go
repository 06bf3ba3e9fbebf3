package forms

import (
	"strings"

	"github.com/ajitpratap0/ragged/pkg/dtypes"
	"github.com/ajitpratap0/ragged/pkg/errors"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// ListOffsetForm is a variable-length list encoded with a single monotonic
// offsets array; semantically a compacted ListForm.
type ListOffsetForm struct {
	meta
	offsets dtypes.Index
	content Form
}

// NewListOffsetForm creates a ListOffsetForm. Offsets must be i32, u32, or
// i64.
func NewListOffsetForm(offsets dtypes.Index, content Form, parameters map[string]interface{}, formKey *string) (*ListOffsetForm, error) {
	if !offsets.OneOf(dtypes.IndexInt32, dtypes.IndexUInt32, dtypes.IndexInt64) {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"ListOffsetForm 'offsets' must be one of i32, u32, i64, not %q", string(offsets)).
			WithDetail("offsets", string(offsets))
	}
	if content == nil {
		return nil, errors.New(errors.ErrorTypeValidation,
			"ListOffsetForm 'content' must be a Form, not nil")
	}
	return &ListOffsetForm{meta{parameters, formKey}, offsets, content}, nil
}

// Offsets returns the offsets index dtype.
func (f *ListOffsetForm) Offsets() dtypes.Index { return f.offsets }

// Content returns the child form.
func (f *ListOffsetForm) Content() Form { return f.content }

func (f *ListOffsetForm) Class() string { return "ListOffsetArray" }

// Copy returns a new ListOffsetForm with the same fields, sharing the child.
func (f *ListOffsetForm) Copy() *ListOffsetForm {
	c := *f
	return &c
}

// WithContent returns a copy with a replacement child.
func (f *ListOffsetForm) WithContent(content Form) *ListOffsetForm {
	c := *f
	c.content = content
	return &c
}

// WithParameters returns a copy with a replacement parameter bag; nil clears.
func (f *ListOffsetForm) WithParameters(parameters map[string]interface{}) *ListOffsetForm {
	c := *f
	c.parameters = parameters
	return &c
}

// WithFormKey returns a copy with a replacement form key; nil clears.
func (f *ListOffsetForm) WithFormKey(formKey *string) *ListOffsetForm {
	c := *f
	c.formKey = formKey
	return &c
}

func (f *ListOffsetForm) Equal(other Form) bool {
	o, ok := other.(*ListOffsetForm)
	return ok &&
		f.offsets == o.offsets &&
		formKeysEqual(f.formKey, o.formKey) &&
		typeParametersEqual(f.parameters, o.parameters) &&
		f.content.Equal(o.content)
}

func (f *ListOffsetForm) Type() types.Type {
	out, _ := types.NewListType(f.content.Type(), f.parameters)
	return out
}

func (f *ListOffsetForm) String() string { return formString(f) }

func (f *ListOffsetForm) PurelistDepth() int { return f.content.PurelistDepth() + 1 }

func (f *ListOffsetForm) MinMaxDepth() (int, int) {
	mn, mx := f.content.MinMaxDepth()
	return mn + 1, mx + 1
}

func (f *ListOffsetForm) BranchDepth() (bool, int) {
	branch, depth := f.content.BranchDepth()
	return branch, depth + 1
}

func (f *ListOffsetForm) PurelistIsRegular() bool { return false }

func (f *ListOffsetForm) PurelistParameter(key string) interface{} {
	if f.parameters != nil {
		if value, ok := f.parameters[key]; ok {
			return value
		}
	}
	return f.content.PurelistParameter(key)
}

func (f *ListOffsetForm) toDictPart(verbose bool) map[string]interface{} {
	out := map[string]interface{}{
		"class":   "ListOffsetArray",
		"offsets": string(f.offsets),
		"content": f.content.toDictPart(verbose),
	}
	return f.toDictExtra(out, verbose)
}

func (f *ListOffsetForm) columns(path []string, listIndicator string, out *[]string) {
	if isStringLike(f) {
		*out = append(*out, strings.Join(path, "."))
		return
	}
	if listIndicator != "" {
		path = append(path[:len(path):len(path)], listIndicator)
	}
	f.content.columns(path, listIndicator, out)
}

func (f *ListOffsetForm) selectColumns(m *specifierMatcher) Form {
	if isStringLike(f) {
		if m.matchIfEmpty {
			return f
		}
		return nil
	}
	next := f.content.selectColumns(m)
	if next == nil {
		return nil
	}
	return f.WithContent(next)
}

func (f *ListOffsetForm) pruneColumns(insideRecordOrUnion bool) Form {
	next := f.content.pruneColumns(insideRecordOrUnion)
	if next == nil {
		return nil
	}
	return f.WithContent(next)
}

func (f *ListOffsetForm) columnTypes(out *[]types.Type) {
	if isStringLike(f) {
		*out = append(*out, f.Type())
		return
	}
	f.content.columnTypes(out)
}

func (f *ListOffsetForm) expectedFromBuffers(getkey GetKeyFunc, recursive bool, out *[]BufferExpectation) {
	*out = append(*out, BufferExpectation{Key: getkey(f, "offsets"), DType: f.offsets.Primitive()})
	if recursive {
		f.content.expectedFromBuffers(getkey, recursive, out)
	}
}
