package forms

import (
	"github.com/ajitpratap0/ragged/pkg/dtypes"
	"github.com/ajitpratap0/ragged/pkg/errors"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// IndexedForm is a gather: an index array reorders or duplicates the child's
// elements without introducing missing values.
type IndexedForm struct {
	meta
	index   dtypes.Index
	content Form
}

// NewIndexedForm creates an IndexedForm. Index must be i32, u32, or i64.
// No canonicalization is performed; see SimplifiedIndexedForm.
func NewIndexedForm(index dtypes.Index, content Form, parameters map[string]interface{}, formKey *string) (*IndexedForm, error) {
	if !index.OneOf(dtypes.IndexInt32, dtypes.IndexUInt32, dtypes.IndexInt64) {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"IndexedForm 'index' must be one of i32, u32, i64, not %q", string(index)).
			WithDetail("index", string(index))
	}
	if content == nil {
		return nil, errors.New(errors.ErrorTypeValidation,
			"IndexedForm 'content' must be a Form, not nil")
	}
	return &IndexedForm{meta{parameters, formKey}, index, content}, nil
}

// SimplifiedIndexedForm is the canonicalizing constructor. An index over a
// union is absorbed into the union; an index over an option or another index
// merges into a single wrapper. A categorical parameter blocks union
// absorption, since the index is then semantically load-bearing.
func SimplifiedIndexedForm(index dtypes.Index, content Form, parameters map[string]interface{}, formKey *string) (Form, error) {
	if IsUnion(content) && !isCategorical(parameters) {
		union := content.(*UnionForm)
		return union.WithParameters(mergeParameters(union.parameters, parameters)), nil
	}
	if IsOption(content) {
		inner := contentOf(content)
		if inner == nil {
			// UnmaskedForm and friends always carry a child.
			return nil, errors.New(errors.ErrorTypeInternal, "option form without content")
		}
		return SimplifiedIndexedOptionForm(dtypes.IndexInt64, inner,
			mergeParameters(content.Parameters(), parameters), nil)
	}
	if IsIndexed(content) {
		inner := contentOf(content)
		return NewIndexedForm(dtypes.IndexInt64, inner,
			mergeParameters(content.Parameters(), parameters), nil)
	}
	return NewIndexedForm(index, content, parameters, formKey)
}

// Index returns the index dtype.
func (f *IndexedForm) Index() dtypes.Index { return f.index }

// Content returns the child form.
func (f *IndexedForm) Content() Form { return f.content }

func (f *IndexedForm) Class() string { return "IndexedArray" }

// Copy returns a new IndexedForm with the same fields, sharing the child.
func (f *IndexedForm) Copy() *IndexedForm {
	c := *f
	return &c
}

// WithContent returns a copy with a replacement child.
func (f *IndexedForm) WithContent(content Form) *IndexedForm {
	c := *f
	c.content = content
	return &c
}

// WithParameters returns a copy with a replacement parameter bag; nil clears.
func (f *IndexedForm) WithParameters(parameters map[string]interface{}) *IndexedForm {
	c := *f
	c.parameters = parameters
	return &c
}

// WithFormKey returns a copy with a replacement form key; nil clears.
func (f *IndexedForm) WithFormKey(formKey *string) *IndexedForm {
	c := *f
	c.formKey = formKey
	return &c
}

func (f *IndexedForm) Equal(other Form) bool {
	o, ok := other.(*IndexedForm)
	return ok &&
		f.index == o.index &&
		formKeysEqual(f.formKey, o.formKey) &&
		typeParametersEqual(f.parameters, o.parameters) &&
		f.content.Equal(o.content)
}

// Type dissolves the gather: an IndexedForm has its child's type, with this
// node's parameters merged in.
func (f *IndexedForm) Type() types.Type {
	out := f.content.Type()
	if len(f.parameters) > 0 {
		out = withTypeParameters(out, mergeParameters(out.Parameters(), f.parameters))
	}
	return out
}

func (f *IndexedForm) String() string { return formString(f) }

func (f *IndexedForm) PurelistDepth() int { return f.content.PurelistDepth() }

func (f *IndexedForm) MinMaxDepth() (int, int) { return f.content.MinMaxDepth() }

func (f *IndexedForm) BranchDepth() (bool, int) { return f.content.BranchDepth() }

func (f *IndexedForm) PurelistIsRegular() bool { return f.content.PurelistIsRegular() }

func (f *IndexedForm) PurelistParameter(key string) interface{} {
	if f.parameters != nil {
		if value, ok := f.parameters[key]; ok {
			return value
		}
	}
	return f.content.PurelistParameter(key)
}

func (f *IndexedForm) toDictPart(verbose bool) map[string]interface{} {
	out := map[string]interface{}{
		"class":   "IndexedArray",
		"index":   string(f.index),
		"content": f.content.toDictPart(verbose),
	}
	return f.toDictExtra(out, verbose)
}

func (f *IndexedForm) columns(path []string, listIndicator string, out *[]string) {
	f.content.columns(path, listIndicator, out)
}

func (f *IndexedForm) selectColumns(m *specifierMatcher) Form {
	next := f.content.selectColumns(m)
	if next == nil {
		return nil
	}
	return f.WithContent(next)
}

func (f *IndexedForm) pruneColumns(insideRecordOrUnion bool) Form {
	next := f.content.pruneColumns(insideRecordOrUnion)
	if next == nil {
		return nil
	}
	return f.WithContent(next)
}

func (f *IndexedForm) columnTypes(out *[]types.Type) {
	f.content.columnTypes(out)
}

func (f *IndexedForm) expectedFromBuffers(getkey GetKeyFunc, recursive bool, out *[]BufferExpectation) {
	*out = append(*out, BufferExpectation{Key: getkey(f, "index"), DType: f.index.Primitive()})
	if recursive {
		f.content.expectedFromBuffers(getkey, recursive, out)
	}
}
