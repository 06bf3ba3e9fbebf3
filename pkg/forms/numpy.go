package forms

import (
	"strings"

	"github.com/ajitpratap0/ragged/pkg/dtypes"
	"github.com/ajitpratap0/ragged/pkg/errors"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// NumpyForm is the leaf variant: a primitive dtype plus an optional inner
// fixed shape. An empty inner shape means one scalar per element.
type NumpyForm struct {
	meta
	primitive  dtypes.Primitive
	innerShape []int64
}

// NewNumpyForm creates a NumpyForm, validating the primitive tag and inner
// shape sizes.
func NewNumpyForm(primitive dtypes.Primitive, innerShape []int64, parameters map[string]interface{}, formKey *string) (*NumpyForm, error) {
	if !primitive.Valid() {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"NumpyForm 'primitive' must be a known dtype, not %q", string(primitive)).
			WithDetail("primitive", string(primitive))
	}
	for i, size := range innerShape {
		if size < 0 {
			return nil, errors.Newf(errors.ErrorTypeValidation,
				"NumpyForm 'inner_shape' sizes must be non-negative, dimension %d is %d", i, size).
				WithDetail("inner_shape", innerShape)
		}
	}
	return &NumpyForm{meta{parameters, formKey}, primitive, innerShape}, nil
}

// Primitive returns the leaf dtype tag.
func (f *NumpyForm) Primitive() dtypes.Primitive { return f.primitive }

// InnerShape returns the fixed inner dimensions; empty means scalar.
func (f *NumpyForm) InnerShape() []int64 { return f.innerShape }

func (f *NumpyForm) Class() string { return "NumpyArray" }

// Copy returns a new NumpyForm with the same fields, sharing the parameter
// bag.
func (f *NumpyForm) Copy() *NumpyForm {
	c := *f
	return &c
}

// WithParameters returns a copy with a replacement parameter bag; nil clears.
func (f *NumpyForm) WithParameters(parameters map[string]interface{}) *NumpyForm {
	c := *f
	c.parameters = parameters
	return &c
}

// WithFormKey returns a copy with a replacement form key; nil clears.
func (f *NumpyForm) WithFormKey(formKey *string) *NumpyForm {
	c := *f
	c.formKey = formKey
	return &c
}

func (f *NumpyForm) Equal(other Form) bool {
	o, ok := other.(*NumpyForm)
	if !ok ||
		f.primitive != o.primitive ||
		len(f.innerShape) != len(o.innerShape) ||
		!formKeysEqual(f.formKey, o.formKey) ||
		!typeParametersEqual(f.parameters, o.parameters) {
		return false
	}
	for i := range f.innerShape {
		if f.innerShape[i] != o.innerShape[i] {
			return false
		}
	}
	return true
}

// Type derives the semantic type; inner dimensions become nested regular
// types with this node's parameters on the outermost.
func (f *NumpyForm) Type() types.Type {
	var out types.Type
	if len(f.innerShape) == 0 {
		out, _ = types.NewNumpyType(f.primitive, f.parameters)
		return out
	}
	out, _ = types.NewNumpyType(f.primitive, nil)
	for i := len(f.innerShape) - 1; i > 0; i-- {
		out, _ = types.NewRegularType(out, f.innerShape[i], nil)
	}
	out, _ = types.NewRegularType(out, f.innerShape[0], f.parameters)
	return out
}

func (f *NumpyForm) String() string { return formString(f) }

func (f *NumpyForm) PurelistDepth() int { return len(f.innerShape) + 1 }

func (f *NumpyForm) MinMaxDepth() (int, int) {
	depth := len(f.innerShape) + 1
	return depth, depth
}

func (f *NumpyForm) BranchDepth() (bool, int) { return false, len(f.innerShape) + 1 }

func (f *NumpyForm) PurelistIsRegular() bool { return true }

func (f *NumpyForm) PurelistParameter(key string) interface{} { return f.Parameter(key) }

func (f *NumpyForm) toDictPart(verbose bool) map[string]interface{} {
	out := map[string]interface{}{
		"class":     "NumpyArray",
		"primitive": string(f.primitive),
	}
	if verbose || len(f.innerShape) > 0 {
		shape := make([]interface{}, len(f.innerShape))
		for i, size := range f.innerShape {
			shape[i] = size
		}
		out["inner_shape"] = shape
	}
	return f.toDictExtra(out, verbose)
}

func (f *NumpyForm) columns(path []string, listIndicator string, out *[]string) {
	*out = append(*out, strings.Join(path, "."))
}

func (f *NumpyForm) selectColumns(m *specifierMatcher) Form {
	if m.matchIfEmpty {
		return f
	}
	return nil
}

func (f *NumpyForm) pruneColumns(insideRecordOrUnion bool) Form { return f }

func (f *NumpyForm) columnTypes(out *[]types.Type) {
	*out = append(*out, f.Type())
}

func (f *NumpyForm) expectedFromBuffers(getkey GetKeyFunc, recursive bool, out *[]BufferExpectation) {
	*out = append(*out, BufferExpectation{Key: getkey(f, "data"), DType: f.primitive})
}
