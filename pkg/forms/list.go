package forms

import (
	"strings"

	"github.com/ajitpratap0/ragged/pkg/dtypes"
	"github.com/ajitpratap0/ragged/pkg/errors"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// ListForm is a variable-length list encoded with separate starts and stops
// index arrays.
type ListForm struct {
	meta
	starts  dtypes.Index
	stops   dtypes.Index
	content Form
}

// NewListForm creates a ListForm. Starts and stops must be i32, u32, or i64.
func NewListForm(starts, stops dtypes.Index, content Form, parameters map[string]interface{}, formKey *string) (*ListForm, error) {
	if !starts.OneOf(dtypes.IndexInt32, dtypes.IndexUInt32, dtypes.IndexInt64) {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"ListForm 'starts' must be one of i32, u32, i64, not %q", string(starts)).
			WithDetail("starts", string(starts))
	}
	if !stops.OneOf(dtypes.IndexInt32, dtypes.IndexUInt32, dtypes.IndexInt64) {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"ListForm 'stops' must be one of i32, u32, i64, not %q", string(stops)).
			WithDetail("stops", string(stops))
	}
	if content == nil {
		return nil, errors.New(errors.ErrorTypeValidation,
			"ListForm 'content' must be a Form, not nil")
	}
	return &ListForm{meta{parameters, formKey}, starts, stops, content}, nil
}

// Starts returns the starts index dtype.
func (f *ListForm) Starts() dtypes.Index { return f.starts }

// Stops returns the stops index dtype.
func (f *ListForm) Stops() dtypes.Index { return f.stops }

// Content returns the child form.
func (f *ListForm) Content() Form { return f.content }

func (f *ListForm) Class() string { return "ListArray" }

// Copy returns a new ListForm with the same fields, sharing the child.
func (f *ListForm) Copy() *ListForm {
	c := *f
	return &c
}

// WithContent returns a copy with a replacement child.
func (f *ListForm) WithContent(content Form) *ListForm {
	c := *f
	c.content = content
	return &c
}

// WithParameters returns a copy with a replacement parameter bag; nil clears.
func (f *ListForm) WithParameters(parameters map[string]interface{}) *ListForm {
	c := *f
	c.parameters = parameters
	return &c
}

// WithFormKey returns a copy with a replacement form key; nil clears.
func (f *ListForm) WithFormKey(formKey *string) *ListForm {
	c := *f
	c.formKey = formKey
	return &c
}

func (f *ListForm) Equal(other Form) bool {
	o, ok := other.(*ListForm)
	return ok &&
		f.starts == o.starts &&
		f.stops == o.stops &&
		formKeysEqual(f.formKey, o.formKey) &&
		typeParametersEqual(f.parameters, o.parameters) &&
		f.content.Equal(o.content)
}

func (f *ListForm) Type() types.Type {
	out, _ := types.NewListType(f.content.Type(), f.parameters)
	return out
}

func (f *ListForm) String() string { return formString(f) }

func (f *ListForm) PurelistDepth() int { return f.content.PurelistDepth() + 1 }

func (f *ListForm) MinMaxDepth() (int, int) {
	mn, mx := f.content.MinMaxDepth()
	return mn + 1, mx + 1
}

func (f *ListForm) BranchDepth() (bool, int) {
	branch, depth := f.content.BranchDepth()
	return branch, depth + 1
}

func (f *ListForm) PurelistIsRegular() bool { return false }

func (f *ListForm) PurelistParameter(key string) interface{} {
	if f.parameters != nil {
		if value, ok := f.parameters[key]; ok {
			return value
		}
	}
	return f.content.PurelistParameter(key)
}

func (f *ListForm) toDictPart(verbose bool) map[string]interface{} {
	out := map[string]interface{}{
		"class":   "ListArray",
		"starts":  string(f.starts),
		"stops":   string(f.stops),
		"content": f.content.toDictPart(verbose),
	}
	return f.toDictExtra(out, verbose)
}

func (f *ListForm) columns(path []string, listIndicator string, out *[]string) {
	if isStringLike(f) {
		*out = append(*out, strings.Join(path, "."))
		return
	}
	if listIndicator != "" {
		path = append(path[:len(path):len(path)], listIndicator)
	}
	f.content.columns(path, listIndicator, out)
}

func (f *ListForm) selectColumns(m *specifierMatcher) Form {
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

func (f *ListForm) pruneColumns(insideRecordOrUnion bool) Form {
	next := f.content.pruneColumns(insideRecordOrUnion)
	if next == nil {
		return nil
	}
	return f.WithContent(next)
}

func (f *ListForm) columnTypes(out *[]types.Type) {
	if isStringLike(f) {
		*out = append(*out, f.Type())
		return
	}
	f.content.columnTypes(out)
}

func (f *ListForm) expectedFromBuffers(getkey GetKeyFunc, recursive bool, out *[]BufferExpectation) {
	*out = append(*out,
		BufferExpectation{Key: getkey(f, "starts"), DType: f.starts.Primitive()},
		BufferExpectation{Key: getkey(f, "stops"), DType: f.stops.Primitive()},
	)
	if recursive {
		f.content.expectedFromBuffers(getkey, recursive, out)
	}
}
