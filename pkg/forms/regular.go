package forms

import (
	"strings"

	"github.com/ajitpratap0/ragged/pkg/errors"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// RegularForm is a fixed-size list: every outer element holds exactly Size
// inner elements, or an unknown sentinel count.
type RegularForm struct {
	meta
	content Form
	size    int64
}

// NewRegularForm creates a RegularForm. Size must be non-negative or
// types.UnknownLength.
func NewRegularForm(content Form, size int64, parameters map[string]interface{}, formKey *string) (*RegularForm, error) {
	if content == nil {
		return nil, errors.New(errors.ErrorTypeValidation,
			"RegularForm 'content' must be a Form, not nil")
	}
	if size < 0 && size != types.UnknownLength {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"RegularForm 'size' must be a non-negative integer or UnknownLength, not %d", size).
			WithDetail("size", size)
	}
	return &RegularForm{meta{parameters, formKey}, content, size}, nil
}

// Content returns the child form.
func (f *RegularForm) Content() Form { return f.content }

// Size returns the fixed element count, or types.UnknownLength.
func (f *RegularForm) Size() int64 { return f.size }

func (f *RegularForm) Class() string { return "RegularArray" }

// Copy returns a new RegularForm with the same fields, sharing the child.
func (f *RegularForm) Copy() *RegularForm {
	c := *f
	return &c
}

// WithContent returns a copy with a replacement child.
func (f *RegularForm) WithContent(content Form) *RegularForm {
	c := *f
	c.content = content
	return &c
}

// WithParameters returns a copy with a replacement parameter bag; nil clears.
func (f *RegularForm) WithParameters(parameters map[string]interface{}) *RegularForm {
	c := *f
	c.parameters = parameters
	return &c
}

// WithFormKey returns a copy with a replacement form key; nil clears.
func (f *RegularForm) WithFormKey(formKey *string) *RegularForm {
	c := *f
	c.formKey = formKey
	return &c
}

func (f *RegularForm) Equal(other Form) bool {
	o, ok := other.(*RegularForm)
	return ok &&
		f.size == o.size &&
		formKeysEqual(f.formKey, o.formKey) &&
		typeParametersEqual(f.parameters, o.parameters) &&
		f.content.Equal(o.content)
}

func (f *RegularForm) Type() types.Type {
	out, _ := types.NewRegularType(f.content.Type(), f.size, f.parameters)
	return out
}

func (f *RegularForm) String() string { return formString(f) }

func (f *RegularForm) PurelistDepth() int { return f.content.PurelistDepth() + 1 }

func (f *RegularForm) MinMaxDepth() (int, int) {
	mn, mx := f.content.MinMaxDepth()
	return mn + 1, mx + 1
}

func (f *RegularForm) BranchDepth() (bool, int) {
	branch, depth := f.content.BranchDepth()
	return branch, depth + 1
}

func (f *RegularForm) PurelistIsRegular() bool { return f.content.PurelistIsRegular() }

func (f *RegularForm) PurelistParameter(key string) interface{} {
	if f.parameters != nil {
		if value, ok := f.parameters[key]; ok {
			return value
		}
	}
	return f.content.PurelistParameter(key)
}

func (f *RegularForm) toDictPart(verbose bool) map[string]interface{} {
	var size interface{}
	if f.size != types.UnknownLength {
		size = f.size
	}
	out := map[string]interface{}{
		"class":   "RegularArray",
		"size":    size,
		"content": f.content.toDictPart(verbose),
	}
	return f.toDictExtra(out, verbose)
}

func (f *RegularForm) columns(path []string, listIndicator string, out *[]string) {
	if isStringLike(f) {
		*out = append(*out, strings.Join(path, "."))
		return
	}
	if listIndicator != "" {
		path = append(path[:len(path):len(path)], listIndicator)
	}
	f.content.columns(path, listIndicator, out)
}

func (f *RegularForm) selectColumns(m *specifierMatcher) Form {
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

func (f *RegularForm) pruneColumns(insideRecordOrUnion bool) Form {
	next := f.content.pruneColumns(insideRecordOrUnion)
	if next == nil {
		return nil
	}
	return f.WithContent(next)
}

func (f *RegularForm) columnTypes(out *[]types.Type) {
	if isStringLike(f) {
		*out = append(*out, f.Type())
		return
	}
	f.content.columnTypes(out)
}

func (f *RegularForm) expectedFromBuffers(getkey GetKeyFunc, recursive bool, out *[]BufferExpectation) {
	if recursive {
		f.content.expectedFromBuffers(getkey, recursive, out)
	}
}
