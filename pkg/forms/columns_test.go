package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/ragged/pkg/dtypes"
)

// eventForm is the running example for the column engine: a record with a
// scalar, a jagged list, a nested record, and a string column.
func eventForm(t *testing.T) *RecordForm {
	t.Helper()
	i64 := mustNumpy(t, dtypes.Int64)
	f64 := mustNumpy(t, dtypes.Float64)

	point := mustRecord(t, []Form{f64, f64}, []string{"x", "y"})
	hits := mustListOffset(t, dtypes.IndexInt64, point)

	return mustRecord(t,
		[]Form{i64, hits, stringForm(t)},
		[]string{"id", "hits", "label"})
}

func TestColumns(t *testing.T) {
	t.Run("dotted paths to every leaf", func(t *testing.T) {
		assert.Equal(t,
			[]string{"id", "hits.x", "hits.y", "label"},
			Columns(eventForm(t), ""))
	})

	t.Run("list indicator marks list boundaries", func(t *testing.T) {
		assert.Equal(t,
			[]string{"id", "hits.list.x", "hits.list.y", "label"},
			Columns(eventForm(t), "list"))
	})

	t.Run("string lists are leaves", func(t *testing.T) {
		assert.Equal(t, []string{""}, Columns(stringForm(t), "list"))
	})

	t.Run("tuples use positional names", func(t *testing.T) {
		tuple := mustRecord(t, []Form{mustNumpy(t, dtypes.Int64), mustNumpy(t, dtypes.Float64)}, nil)
		assert.Equal(t, []string{"0", "1"}, Columns(tuple, ""))
	})

	t.Run("unions enumerate every branch", func(t *testing.T) {
		i64 := mustNumpy(t, dtypes.Int64)
		f64 := mustNumpy(t, dtypes.Float64)
		union, err := NewUnionForm(dtypes.IndexInt8, dtypes.IndexInt64, []Form{i64, f64}, nil, nil)
		require.NoError(t, err)
		record := mustRecord(t, []Form{union}, []string{"v"})
		assert.Equal(t, []string{"v", "v"}, Columns(record, ""))
	})
}

func TestColumnTypes(t *testing.T) {
	columnTypes := ColumnTypes(eventForm(t))
	require.Len(t, columnTypes, 4)
	assert.Equal(t, "int64", columnTypes[0].String())
	assert.Equal(t, "float64", columnTypes[1].String())
	assert.Equal(t, "float64", columnTypes[2].String())
	assert.Equal(t, "string", columnTypes[3].String())
}

func TestSelectColumns(t *testing.T) {
	t.Run("single field", func(t *testing.T) {
		selected, err := SelectColumns(eventForm(t), []string{"id"}, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"id"}, Columns(selected, ""))
	})

	t.Run("empty specifier selects everything", func(t *testing.T) {
		original := eventForm(t)
		selected, err := SelectColumns(original, []string{""}, true)
		require.NoError(t, err)
		assert.True(t, original.Equal(selected))
	})

	t.Run("glob matching all fields is the identity on a flat record", func(t *testing.T) {
		i64 := mustNumpy(t, dtypes.Int64)
		f64 := mustNumpy(t, dtypes.Float64)
		flat := mustRecord(t, []Form{i64, f64}, []string{"a", "b"})

		selected, err := SelectColumns(flat, []string{"*"}, true)
		require.NoError(t, err)
		assert.True(t, flat.Equal(selected))
	})

	t.Run("nested selection", func(t *testing.T) {
		selected, err := SelectColumns(eventForm(t), []string{"hits.x"}, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"hits.x"}, Columns(selected, ""))
	})

	t.Run("exhausted pattern matches the whole subtree", func(t *testing.T) {
		selected, err := SelectColumns(eventForm(t), []string{"hits"}, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"hits.x", "hits.y"}, Columns(selected, ""))
	})

	t.Run("selection result is a subset matching the pattern", func(t *testing.T) {
		original := Columns(eventForm(t), "")
		selected, err := SelectColumns(eventForm(t), []string{"h*"}, true)
		require.NoError(t, err)
		for _, column := range Columns(selected, "") {
			assert.Contains(t, original, column)
			assert.True(t, fnmatchcase(column[:4], "h*"))
		}
	})

	t.Run("unmatched record prunes to an empty record", func(t *testing.T) {
		selected, err := SelectColumns(eventForm(t), []string{"nope"}, true)
		require.NoError(t, err)
		record, ok := selected.(*RecordForm)
		require.True(t, ok)
		assert.Empty(t, record.Fields())
	})

	t.Run("unmatched leaf root collapses to empty", func(t *testing.T) {
		selected, err := SelectColumns(mustNumpy(t, dtypes.Int64), []string{"a"}, true)
		require.NoError(t, err)
		assert.True(t, IsEmpty(selected))
	})

	t.Run("pattern deeper than a leaf selects nothing", func(t *testing.T) {
		selected, err := SelectColumns(eventForm(t), []string{"id.deeper"}, true)
		require.NoError(t, err)
		record, ok := selected.(*RecordForm)
		require.True(t, ok)
		assert.Empty(t, record.Fields())
	})

	t.Run("surviving fields keep original order", func(t *testing.T) {
		selected, err := SelectColumns(eventForm(t), []string{"label", "id"}, true)
		require.NoError(t, err)
		record, ok := selected.(*RecordForm)
		require.True(t, ok)
		assert.Equal(t, []string{"id", "label"}, record.Fields())
	})

	t.Run("wrappers above records survive selection", func(t *testing.T) {
		masked, err := NewByteMaskedForm(dtypes.IndexInt8, eventForm(t), true, nil, nil)
		require.NoError(t, err)
		selected, err := SelectColumns(masked, []string{"id"}, true)
		require.NoError(t, err)
		_, ok := selected.(*ByteMaskedForm)
		assert.True(t, ok)
	})
}

func TestSelectColumnsBraces(t *testing.T) {
	t.Run("expansion equals explicit specifiers", func(t *testing.T) {
		braced, err := SelectColumns(eventForm(t), []string{"hits.{x,y}"}, true)
		require.NoError(t, err)
		explicit, err := SelectColumns(eventForm(t), []string{"hits.x", "hits.y"}, true)
		require.NoError(t, err)
		assert.True(t, braced.Equal(explicit))
	})

	t.Run("disabled expansion treats braces literally", func(t *testing.T) {
		selected, err := SelectColumns(eventForm(t), []string{"hits.{x,y}"}, false)
		require.NoError(t, err)
		record, ok := selected.(*RecordForm)
		require.True(t, ok)
		assert.Empty(t, record.Fields())
	})
}

func TestExpandBraces(t *testing.T) {
	expand := func(text string) []string {
		return expandBracesInto(text, nil, map[string]struct{}{})
	}

	t.Run("single group", func(t *testing.T) {
		assert.Equal(t, []string{"a.z", "b.z"}, expand("{a,b}.z"))
	})

	t.Run("cross product", func(t *testing.T) {
		assert.Equal(t, []string{"ax", "ay", "bx", "by"}, expand("{a,b}{x,y}"))
	})

	t.Run("no groups", func(t *testing.T) {
		assert.Equal(t, []string{"plain"}, expand("plain"))
	})

	t.Run("duplicates are removed", func(t *testing.T) {
		assert.Equal(t, []string{"aa"}, expand("{a,a}a"))
	})
}

func TestFnmatchcase(t *testing.T) {
	cases := []struct {
		name, pattern string
		want          bool
	}{
		{"muon_pt", "*", true},
		{"muon_pt", "muon_*", true},
		{"muon_pt", "MUON_*", false},
		{"muon_pt", "muon_p?", true},
		{"muon_pt", "muon_p", false},
		{"x1", "x[0-9]", true},
		{"xa", "x[0-9]", false},
		{"xa", "x[!0-9]", true},
		{"abc", "a*c", true},
		{"abc", "a*b", false},
		{"", "*", true},
		{"literal[", "literal[", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, fnmatchcase(tc.name, tc.pattern),
			"fnmatchcase(%q, %q)", tc.name, tc.pattern)
	}
}
