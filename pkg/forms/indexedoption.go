package forms

import (
	"github.com/ajitpratap0/ragged/pkg/dtypes"
	"github.com/ajitpratap0/ragged/pkg/errors"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// IndexedOptionForm is a gather whose index uses a negative sentinel to mark
// missing slots; the canonical target of option-layer merges.
type IndexedOptionForm struct {
	meta
	index   dtypes.Index
	content Form
}

// NewIndexedOptionForm creates an IndexedOptionForm. The index must be a
// signed dtype (i32 or i64) so it can carry the missing sentinel. No
// canonicalization is performed; see SimplifiedIndexedOptionForm.
func NewIndexedOptionForm(index dtypes.Index, content Form, parameters map[string]interface{}, formKey *string) (*IndexedOptionForm, error) {
	if !index.OneOf(dtypes.IndexInt32, dtypes.IndexInt64) {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"IndexedOptionForm 'index' must be one of i32, i64, not %q", string(index)).
			WithDetail("index", string(index))
	}
	if content == nil {
		return nil, errors.New(errors.ErrorTypeValidation,
			"IndexedOptionForm 'content' must be a Form, not nil")
	}
	return &IndexedOptionForm{meta{parameters, formKey}, index, content}, nil
}

// SimplifiedIndexedOptionForm is the canonicalizing constructor. An option
// over a union distributes into a union of options; an option over another
// option or an index merges into one IndexedOptionForm, the outer sentinel
// winning over any inner indirection.
func SimplifiedIndexedOptionForm(index dtypes.Index, content Form, parameters map[string]interface{}, formKey *string) (Form, error) {
	if IsUnion(content) && !isCategorical(parameters) {
		return content.(*UnionForm).unionOfOptionArrays(index, parameters)
	}
	if IsOption(content) || IsIndexed(content) {
		inner := contentOf(content)
		return SimplifiedIndexedOptionForm(dtypes.IndexInt64, inner,
			mergeParameters(content.Parameters(), parameters), nil)
	}
	return NewIndexedOptionForm(index, content, parameters, formKey)
}

// Index returns the index dtype.
func (f *IndexedOptionForm) Index() dtypes.Index { return f.index }

// Content returns the child form.
func (f *IndexedOptionForm) Content() Form { return f.content }

func (f *IndexedOptionForm) Class() string { return "IndexedOptionArray" }

// Copy returns a new IndexedOptionForm with the same fields, sharing the
// child.
func (f *IndexedOptionForm) Copy() *IndexedOptionForm {
	c := *f
	return &c
}

// WithContent returns a copy with a replacement child.
func (f *IndexedOptionForm) WithContent(content Form) *IndexedOptionForm {
	c := *f
	c.content = content
	return &c
}

// WithParameters returns a copy with a replacement parameter bag; nil clears.
func (f *IndexedOptionForm) WithParameters(parameters map[string]interface{}) *IndexedOptionForm {
	c := *f
	c.parameters = parameters
	return &c
}

// WithFormKey returns a copy with a replacement form key; nil clears.
func (f *IndexedOptionForm) WithFormKey(formKey *string) *IndexedOptionForm {
	c := *f
	c.formKey = formKey
	return &c
}

func (f *IndexedOptionForm) Equal(other Form) bool {
	o, ok := other.(*IndexedOptionForm)
	return ok &&
		f.index == o.index &&
		formKeysEqual(f.formKey, o.formKey) &&
		typeParametersEqual(f.parameters, o.parameters) &&
		f.content.Equal(o.content)
}

func (f *IndexedOptionForm) Type() types.Type {
	return optionTypeOf(f.content, f.parameters)
}

func (f *IndexedOptionForm) String() string { return formString(f) }

func (f *IndexedOptionForm) PurelistDepth() int { return f.content.PurelistDepth() }

func (f *IndexedOptionForm) MinMaxDepth() (int, int) { return f.content.MinMaxDepth() }

func (f *IndexedOptionForm) BranchDepth() (bool, int) { return f.content.BranchDepth() }

func (f *IndexedOptionForm) PurelistIsRegular() bool { return f.content.PurelistIsRegular() }

func (f *IndexedOptionForm) PurelistParameter(key string) interface{} {
	if f.parameters != nil {
		if value, ok := f.parameters[key]; ok {
			return value
		}
	}
	return f.content.PurelistParameter(key)
}

func (f *IndexedOptionForm) toDictPart(verbose bool) map[string]interface{} {
	out := map[string]interface{}{
		"class":   "IndexedOptionArray",
		"index":   string(f.index),
		"content": f.content.toDictPart(verbose),
	}
	return f.toDictExtra(out, verbose)
}

func (f *IndexedOptionForm) columns(path []string, listIndicator string, out *[]string) {
	f.content.columns(path, listIndicator, out)
}

func (f *IndexedOptionForm) selectColumns(m *specifierMatcher) Form {
	next := f.content.selectColumns(m)
	if next == nil {
		return nil
	}
	return f.WithContent(next)
}

func (f *IndexedOptionForm) pruneColumns(insideRecordOrUnion bool) Form {
	next := f.content.pruneColumns(insideRecordOrUnion)
	if next == nil {
		return nil
	}
	return f.WithContent(next)
}

func (f *IndexedOptionForm) columnTypes(out *[]types.Type) {
	f.content.columnTypes(out)
}

func (f *IndexedOptionForm) expectedFromBuffers(getkey GetKeyFunc, recursive bool, out *[]BufferExpectation) {
	*out = append(*out, BufferExpectation{Key: getkey(f, "index"), DType: f.index.Primitive()})
	if recursive {
		f.content.expectedFromBuffers(getkey, recursive, out)
	}
}
