// Package forms implements the schema metadata tree ("Form") describing the
// physical shape of a nested, variable-length array without holding any data
// buffers. A Form knows how many levels of nesting exist, where missing
// values occur, how union branches are tagged, and how records are laid out,
// plus the index/offset/mask encodings a materialized array would use.
//
// Forms are immutable after construction except for the form key; every
// transformation (copy, simplify, select, prune) allocates new nodes and may
// share unchanged subtrees, which is safe precisely because nodes are never
// mutated in place.
package forms

import (
	"fmt"

	jsonpool "github.com/ajitpratap0/ragged/pkg/json"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// Form is the closed set of schema node variants: NumpyForm, EmptyForm,
// RegularForm, ListForm, ListOffsetForm, IndexedForm, IndexedOptionForm,
// ByteMaskedForm, BitMaskedForm, UnmaskedForm, RecordForm, UnionForm.
// All implementations live in this package; consumers dispatch with type
// switches and can rely on the set being exhaustive.
type Form interface {
	fmt.Stringer

	// Class returns the serialization discriminator, e.g. "ListOffsetArray".
	Class() string
	// Parameters returns the metadata attached to this node; may be nil.
	Parameters() map[string]interface{}
	// Parameter returns one parameter value, or nil.
	Parameter(key string) interface{}
	// FormKey returns the opaque string namespacing this node's buffers,
	// or nil.
	FormKey() *string
	// SetFormKey replaces the form key. This is the only mutation a Form
	// permits and it is not thread-safe: callers must serialize writers or
	// avoid mutation after publishing a Form to other goroutines.
	SetFormKey(key *string)
	// Equal compares variant identity, physical fields, form key, and the
	// reserved type-level parameters.
	Equal(other Form) bool
	// Type derives the semantic type, erasing physical encoding.
	Type() types.Type

	// PurelistDepth is the number of list levels down to the first record
	// or leaf, counting the leaf itself.
	PurelistDepth() int
	// MinMaxDepth returns the minimum and maximum leaf depth.
	MinMaxDepth() (int, int)
	// BranchDepth reports whether the tree branches into different depths,
	// and the minimum depth.
	BranchDepth() (bool, int)
	// PurelistIsRegular reports whether every list level down to the first
	// record or leaf has a fixed size.
	PurelistIsRegular() bool
	// PurelistParameter returns the named parameter of the outermost node
	// that defines it along the pure list chain.
	PurelistParameter(key string) interface{}

	toDictPart(verbose bool) map[string]interface{}
	columns(path []string, listIndicator string, out *[]string)
	selectColumns(m *specifierMatcher) Form
	pruneColumns(insideRecordOrUnion bool) Form
	columnTypes(out *[]types.Type)
	expectedFromBuffers(getkey GetKeyFunc, recursive bool, out *[]BufferExpectation)
}

// meta carries the attributes shared by every Form variant.
type meta struct {
	parameters map[string]interface{}
	formKey    *string
}

func (m *meta) Parameters() map[string]interface{} { return m.parameters }

func (m *meta) Parameter(key string) interface{} {
	if m.parameters == nil {
		return nil
	}
	return m.parameters[key]
}

func (m *meta) FormKey() *string { return m.formKey }

func (m *meta) SetFormKey(key *string) { m.formKey = key }

// toDictExtra appends the shared attributes to a serialized node. In verbose
// mode parameters and form_key are always present; otherwise only when
// non-default.
func (m *meta) toDictExtra(out map[string]interface{}, verbose bool) map[string]interface{} {
	if verbose || len(m.parameters) > 0 {
		params := m.parameters
		if params == nil {
			params = map[string]interface{}{}
		}
		out["parameters"] = params
	}
	if verbose || m.formKey != nil {
		if m.formKey == nil {
			out["form_key"] = nil
		} else {
			out["form_key"] = *m.formKey
		}
	}
	return out
}

func formKeysEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// FormKeyOf is a convenience for building the *string form keys taken by
// constructors.
func FormKeyOf(key string) *string { return &key }

// ToDict serializes a Form into a JSON-compatible nested map. With verbose,
// parameters and form_key appear on every node even when empty.
func ToDict(f Form, verbose bool) map[string]interface{} {
	return f.toDictPart(verbose)
}

// ToJSON serializes a Form into its wire format (always verbose).
func ToJSON(f Form) (string, error) {
	return jsonpool.MarshalToString(f.toDictPart(true))
}

// formString renders the compact dict as indented JSON; shared String()
// implementation for all variants.
func formString(f Form) string {
	data, err := jsonpool.MarshalIndent(f.toDictPart(false), "", "    ")
	if err != nil {
		return "<invalid form>"
	}
	return string(data)
}

// Variant predicates. Option-ness and indexed-ness span several variants, so
// they are package functions rather than per-variant flags.

// IsNumpy reports whether f is a NumpyForm.
func IsNumpy(f Form) bool { _, ok := f.(*NumpyForm); return ok }

// IsEmpty reports whether f is an EmptyForm.
func IsEmpty(f Form) bool { _, ok := f.(*EmptyForm); return ok }

// IsList reports whether f is a list-shaped composite (ListForm,
// ListOffsetForm, or RegularForm).
func IsList(f Form) bool {
	switch f.(type) {
	case *ListForm, *ListOffsetForm, *RegularForm:
		return true
	}
	return false
}

// IsOption reports whether f is option-shaped (IndexedOptionForm,
// ByteMaskedForm, BitMaskedForm, or UnmaskedForm).
func IsOption(f Form) bool {
	switch f.(type) {
	case *IndexedOptionForm, *ByteMaskedForm, *BitMaskedForm, *UnmaskedForm:
		return true
	}
	return false
}

// IsIndexed reports whether f carries a gather index (IndexedForm or
// IndexedOptionForm).
func IsIndexed(f Form) bool {
	switch f.(type) {
	case *IndexedForm, *IndexedOptionForm:
		return true
	}
	return false
}

// IsRecord reports whether f is a RecordForm.
func IsRecord(f Form) bool { _, ok := f.(*RecordForm); return ok }

// IsUnion reports whether f is a UnionForm.
func IsUnion(f Form) bool { _, ok := f.(*UnionForm); return ok }

// isStringLike reports whether f is a list flagged as a string or bytestring;
// the column engine treats such lists as leaves.
func isStringLike(f Form) bool {
	switch f.Parameter("__array__") {
	case "string", "bytestring":
		return IsList(f)
	}
	return false
}

// contentOf returns the single child of a one-child composite, or nil.
func contentOf(f Form) Form {
	switch v := f.(type) {
	case *RegularForm:
		return v.content
	case *ListForm:
		return v.content
	case *ListOffsetForm:
		return v.content
	case *IndexedForm:
		return v.content
	case *IndexedOptionForm:
		return v.content
	case *ByteMaskedForm:
		return v.content
	case *BitMaskedForm:
		return v.content
	case *UnmaskedForm:
		return v.content
	}
	return nil
}

// withTypeParameters rebuilds a Type with a replacement parameter bag.
// Needed when an indexed wrapper dissolves into its child's type but carries
// parameters of its own.
func withTypeParameters(t types.Type, params map[string]interface{}) types.Type {
	if params == nil {
		return t
	}
	switch v := t.(type) {
	case *types.NumpyType:
		out, _ := types.NewNumpyType(v.Primitive(), params)
		return out
	case *types.UnknownType:
		return types.NewUnknownType(params)
	case *types.ListType:
		out, _ := types.NewListType(v.Content(), params)
		return out
	case *types.RegularType:
		out, _ := types.NewRegularType(v.Content(), v.Size(), params)
		return out
	case *types.OptionType:
		out, _ := types.NewOptionType(v.Content(), params)
		return out
	case *types.RecordType:
		var fields []string
		if !v.IsTuple() {
			fields = v.Fields()
		}
		out, _ := types.NewRecordType(v.Contents(), fields, params)
		return out
	case *types.UnionType:
		out, _ := types.NewUnionType(v.Contents(), params)
		return out
	}
	return t
}

// optionTypeOf builds the OptionType for an option-shaped form, merging
// adjacent option layers and distributing over unions.
func optionTypeOf(content Form, params map[string]interface{}) types.Type {
	opt, _ := types.NewOptionType(content.Type(), params)
	return opt.SimplifyOptionUnion()
}
