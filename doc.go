// Package ragged provides schema metadata ("forms") for nested,
// variable-length arrays: a pure, buffer-free description of how a ragged
// array is laid out, with the tools to validate, compare, transform, and
// serialize those descriptions.
//
// A Form records the physical shape of an array without holding any data:
// how many levels of nesting exist, where missing values occur, how union
// branches are tagged, how records are laid out, and which index, offset,
// and mask encodings a materialized array would use.
//
// # Quick Start
//
// Build a schema, project it, and enumerate its buffers:
//
//	import (
//	    "github.com/ajitpratap0/ragged/pkg/dtypes"
//	    "github.com/ajitpratap0/ragged/pkg/forms"
//	)
//
//	pt, _ := forms.NewNumpyForm(dtypes.Float64, nil, nil, nil)
//	eta, _ := forms.NewNumpyForm(dtypes.Float64, nil, nil, nil)
//	jet, _ := forms.NewRecordForm([]forms.Form{pt, eta}, []string{"pt", "eta"}, nil, nil)
//	jets, _ := forms.NewListOffsetForm(dtypes.IndexInt64, jet, nil, nil)
//
//	fmt.Println(jets.Type())               // var * {pt: float64, eta: float64}
//	fmt.Println(forms.Columns(jets, ""))   // [pt eta]
//
//	selected, _ := forms.SelectColumns(jets, []string{"pt"}, true)
//	out, _ := forms.ToJSON(selected)
//
// Round-trip through the JSON interchange format:
//
//	restored, _ := forms.FromJSON(out)
//	fmt.Println(restored.Equal(selected))  // true
//
// # Key Packages
//
//	pkg/forms   - Form variants, simplification, serialization, column
//	              selection, buffer-key enumeration, Arrow export
//	pkg/types   - Semantic type algebra derived from forms
//	pkg/dtypes  - Primitive and index dtype enums
//	pkg/errors  - Structured error handling
//	pkg/logger  - Structured logging for the CLI
//	pkg/config  - CLI configuration loading
//
// # CLI
//
// The ragged command inspects schema files:
//
//	ragged describe schema.json
//	ragged columns schema.json --list-indicator list
//	ragged select schema.json "jets.{pt,eta}"
//	ragged buffers schema.json
//	ragged arrow schema.json
package ragged
