package forms

import (
	"github.com/ajitpratap0/ragged/pkg/dtypes"
	"github.com/ajitpratap0/ragged/pkg/errors"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// UnionForm is a sum of heterogeneous branches: a tag array selects the
// branch and an index array selects the offset within that branch.
type UnionForm struct {
	meta
	tags     dtypes.Index
	index    dtypes.Index
	contents []Form
}

// NewUnionForm creates a UnionForm. Tags must be i8 and the index one of
// i32, u32, i64. No canonicalization is performed; see SimplifiedUnionForm.
func NewUnionForm(tags, index dtypes.Index, contents []Form, parameters map[string]interface{}, formKey *string) (*UnionForm, error) {
	if tags != dtypes.IndexInt8 {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"UnionForm 'tags' must be i8, not %q", string(tags)).
			WithDetail("tags", string(tags))
	}
	if !index.OneOf(dtypes.IndexInt32, dtypes.IndexUInt32, dtypes.IndexInt64) {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"UnionForm 'index' must be one of i32, u32, i64, not %q", string(index)).
			WithDetail("index", string(index))
	}
	for i, content := range contents {
		if content == nil {
			return nil, errors.Newf(errors.ErrorTypeValidation,
				"UnionForm all 'contents' must be Forms, content %d is nil", i).
				WithDetail("index", i)
		}
	}
	return &UnionForm{meta{parameters, formKey}, tags, index, contents}, nil
}

// SimplifiedUnionForm is the canonicalizing constructor: nested unions are
// flattened into the parent's branch list, and a single-branch union
// dissolves into that branch.
func SimplifiedUnionForm(tags, index dtypes.Index, contents []Form, parameters map[string]interface{}, formKey *string) (Form, error) {
	flattened := make([]Form, 0, len(contents))
	for _, content := range contents {
		if union, ok := content.(*UnionForm); ok {
			flattened = append(flattened, union.contents...)
		} else {
			flattened = append(flattened, content)
		}
	}
	if len(flattened) == 1 {
		return flattened[0], nil
	}
	return NewUnionForm(tags, index, flattened, parameters, formKey)
}

// unionOfOptionArrays distributes an option layer over the branches: each
// branch becomes option-shaped and the union itself stays non-optional.
func (f *UnionForm) unionOfOptionArrays(index dtypes.Index, parameters map[string]interface{}) (Form, error) {
	contents := make([]Form, len(f.contents))
	for i, content := range f.contents {
		wrapped, err := SimplifiedIndexedOptionForm(dtypes.IndexInt64, content, nil, nil)
		if err != nil {
			return nil, err
		}
		contents[i] = wrapped
	}
	return SimplifiedUnionForm(f.tags, index, contents,
		mergeParameters(f.parameters, parameters), nil)
}

// Tags returns the tag dtype.
func (f *UnionForm) Tags() dtypes.Index { return f.tags }

// Index returns the index dtype.
func (f *UnionForm) Index() dtypes.Index { return f.index }

// Contents returns the branch forms in tag order.
func (f *UnionForm) Contents() []Form { return f.contents }

// Content returns the branch form for the given tag value.
func (f *UnionForm) Content(index int) (Form, error) {
	if index < 0 || index >= len(f.contents) {
		return nil, errors.Newf(errors.ErrorTypeNotFound,
			"no content %d in union with %d contents", index, len(f.contents)).
			WithDetail("index", index)
	}
	return f.contents[index], nil
}

func (f *UnionForm) Class() string { return "UnionArray" }

// Copy returns a new UnionForm with the same fields, sharing the branches.
func (f *UnionForm) Copy() *UnionForm {
	c := *f
	return &c
}

// WithContents returns a copy with replacement branches.
func (f *UnionForm) WithContents(contents []Form) *UnionForm {
	c := *f
	c.contents = contents
	return &c
}

// WithParameters returns a copy with a replacement parameter bag; nil clears.
func (f *UnionForm) WithParameters(parameters map[string]interface{}) *UnionForm {
	c := *f
	c.parameters = parameters
	return &c
}

// WithFormKey returns a copy with a replacement form key; nil clears.
func (f *UnionForm) WithFormKey(formKey *string) *UnionForm {
	c := *f
	c.formKey = formKey
	return &c
}

func (f *UnionForm) Equal(other Form) bool {
	o, ok := other.(*UnionForm)
	if !ok ||
		f.tags != o.tags ||
		f.index != o.index ||
		len(f.contents) != len(o.contents) ||
		!formKeysEqual(f.formKey, o.formKey) ||
		!typeParametersEqual(f.parameters, o.parameters) {
		return false
	}
	for i, content := range f.contents {
		if !content.Equal(o.contents[i]) {
			return false
		}
	}
	return true
}

func (f *UnionForm) Type() types.Type {
	contents := make([]types.Type, len(f.contents))
	for i, content := range f.contents {
		contents[i] = content.Type()
	}
	out, _ := types.NewUnionType(contents, f.parameters)
	return out
}

func (f *UnionForm) String() string { return formString(f) }

// PurelistDepth is the branches' common depth, or -1 when they disagree.
func (f *UnionForm) PurelistDepth() int {
	depth := 0
	for i, content := range f.contents {
		d := content.PurelistDepth()
		if i == 0 {
			depth = d
		} else if d != depth {
			return -1
		}
	}
	if len(f.contents) == 0 {
		return 1
	}
	return depth
}

func (f *UnionForm) MinMaxDepth() (int, int) {
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

func (f *UnionForm) BranchDepth() (bool, int) {
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

func (f *UnionForm) PurelistIsRegular() bool {
	for _, content := range f.contents {
		if !content.PurelistIsRegular() {
			return false
		}
	}
	return true
}

// PurelistParameter returns the value only when every branch agrees on it.
func (f *UnionForm) PurelistParameter(key string) interface{} {
	if f.parameters != nil {
		if value, ok := f.parameters[key]; ok {
			return value
		}
	}
	var out interface{}
	for i, content := range f.contents {
		value := content.PurelistParameter(key)
		if i == 0 {
			out = value
		} else if !parameterValuesEqual(out, value) {
			return nil
		}
	}
	return out
}

func (f *UnionForm) toDictPart(verbose bool) map[string]interface{} {
	contents := make([]interface{}, len(f.contents))
	for i, content := range f.contents {
		contents[i] = content.toDictPart(verbose)
	}
	out := map[string]interface{}{
		"class":    "UnionArray",
		"tags":     string(f.tags),
		"index":    string(f.index),
		"contents": contents,
	}
	return f.toDictExtra(out, verbose)
}

func (f *UnionForm) columns(path []string, listIndicator string, out *[]string) {
	for _, content := range f.contents {
		content.columns(path, listIndicator, out)
	}
}

func (f *UnionForm) selectColumns(m *specifierMatcher) Form {
	contents := make([]Form, 0, len(f.contents))
	for _, content := range f.contents {
		next := content.selectColumns(m)
		if next == nil {
			continue
		}
		contents = append(contents, next)
	}
	if len(contents) == 0 {
		return nil
	}
	return f.WithContents(contents)
}

func (f *UnionForm) pruneColumns(insideRecordOrUnion bool) Form {
	contents := make([]Form, 0, len(f.contents))
	for _, content := range f.contents {
		next := content.pruneColumns(true)
		if next == nil {
			continue
		}
		contents = append(contents, next)
	}
	if len(contents) == 0 {
		return nil
	}
	return f.WithContents(contents)
}

func (f *UnionForm) columnTypes(out *[]types.Type) {
	for _, content := range f.contents {
		content.columnTypes(out)
	}
}

func (f *UnionForm) expectedFromBuffers(getkey GetKeyFunc, recursive bool, out *[]BufferExpectation) {
	*out = append(*out, BufferExpectation{Key: getkey(f, "tags"), DType: f.tags.Primitive()})
	*out = append(*out, BufferExpectation{Key: getkey(f, "index"), DType: f.index.Primitive()})
	if recursive {
		for _, content := range f.contents {
			content.expectedFromBuffers(getkey, recursive, out)
		}
	}
}
