package forms

import (
	"strings"

	"github.com/ajitpratap0/ragged/pkg/types"
)

// EmptyForm is the zero-length, typeless leaf. It unifies with any other
// form under simplified merges and derives to the unknown type.
type EmptyForm struct {
	meta
}

// NewEmptyForm creates an EmptyForm.
func NewEmptyForm(parameters map[string]interface{}, formKey *string) *EmptyForm {
	return &EmptyForm{meta{parameters, formKey}}
}

func (f *EmptyForm) Class() string { return "EmptyArray" }

// Copy returns a new EmptyForm with the same fields.
func (f *EmptyForm) Copy() *EmptyForm {
	c := *f
	return &c
}

// WithParameters returns a copy with a replacement parameter bag; nil clears.
func (f *EmptyForm) WithParameters(parameters map[string]interface{}) *EmptyForm {
	c := *f
	c.parameters = parameters
	return &c
}

// WithFormKey returns a copy with a replacement form key; nil clears.
func (f *EmptyForm) WithFormKey(formKey *string) *EmptyForm {
	c := *f
	c.formKey = formKey
	return &c
}

func (f *EmptyForm) Equal(other Form) bool {
	o, ok := other.(*EmptyForm)
	return ok &&
		formKeysEqual(f.formKey, o.formKey) &&
		typeParametersEqual(f.parameters, o.parameters)
}

func (f *EmptyForm) Type() types.Type {
	return types.NewUnknownType(f.parameters)
}

func (f *EmptyForm) String() string { return formString(f) }

func (f *EmptyForm) PurelistDepth() int { return 1 }

func (f *EmptyForm) MinMaxDepth() (int, int) { return 1, 1 }

func (f *EmptyForm) BranchDepth() (bool, int) { return false, 1 }

func (f *EmptyForm) PurelistIsRegular() bool { return true }

func (f *EmptyForm) PurelistParameter(key string) interface{} { return f.Parameter(key) }

func (f *EmptyForm) toDictPart(verbose bool) map[string]interface{} {
	out := map[string]interface{}{"class": "EmptyArray"}
	return f.toDictExtra(out, verbose)
}

func (f *EmptyForm) columns(path []string, listIndicator string, out *[]string) {
	*out = append(*out, strings.Join(path, "."))
}

func (f *EmptyForm) selectColumns(m *specifierMatcher) Form {
	if m.matchIfEmpty {
		return f
	}
	return nil
}

func (f *EmptyForm) pruneColumns(insideRecordOrUnion bool) Form { return f }

func (f *EmptyForm) columnTypes(out *[]types.Type) {
	*out = append(*out, f.Type())
}

func (f *EmptyForm) expectedFromBuffers(getkey GetKeyFunc, recursive bool, out *[]BufferExpectation) {
	// An EmptyForm owns no buffers.
}
