package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/ragged/pkg/dtypes"
	"github.com/ajitpratap0/ragged/pkg/errors"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// complexForm builds a tree touching most variants, for round-trip tests.
func complexForm(t *testing.T) Form {
	t.Helper()
	i64 := mustNumpy(t, dtypes.Int64)
	f64 := mustNumpy(t, dtypes.Float64)

	masked, err := NewByteMaskedForm(dtypes.IndexInt8, f64, true,
		map[string]interface{}{"units": "GeV"}, FormKeyOf("energy"))
	require.NoError(t, err)

	union, err := NewUnionForm(dtypes.IndexInt8, dtypes.IndexInt64,
		[]Form{i64, stringForm(t)}, nil, nil)
	require.NoError(t, err)

	jagged := mustListOffset(t, dtypes.IndexInt32, union)

	record, err := NewRecordForm(
		[]Form{i64, masked, jagged, stringForm(t)},
		[]string{"id", "energy", "hits", "label"},
		nil, FormKeyOf("event"))
	require.NoError(t, err)
	return record
}

func TestRoundTripJSON(t *testing.T) {
	original := complexForm(t)

	encoded, err := ToJSON(original)
	require.NoError(t, err)

	decoded, err := FromJSON(encoded)
	require.NoError(t, err)
	assert.True(t, original.Equal(decoded))
}

func TestRoundTripDict(t *testing.T) {
	forms := map[string]func(t *testing.T) Form{
		"empty": func(t *testing.T) Form { return NewEmptyForm(nil, nil) },
		"regular unknown size": func(t *testing.T) Form {
			f, err := NewRegularForm(mustNumpy(t, dtypes.Bool), types.UnknownLength, nil, nil)
			require.NoError(t, err)
			return f
		},
		"list with starts and stops": func(t *testing.T) Form {
			f, err := NewListForm(dtypes.IndexUInt32, dtypes.IndexUInt32, mustNumpy(t, dtypes.Int32), nil, nil)
			require.NoError(t, err)
			return f
		},
		"bit masked": func(t *testing.T) Form {
			f, err := NewBitMaskedForm(dtypes.IndexUInt8, mustNumpy(t, dtypes.Float32), false, true, nil, nil)
			require.NoError(t, err)
			return f
		},
		"unmasked": func(t *testing.T) Form {
			f, err := NewUnmaskedForm(mustNumpy(t, dtypes.Int16), nil, FormKeyOf("node9"))
			require.NoError(t, err)
			return f
		},
		"indexed": func(t *testing.T) Form {
			f, err := NewIndexedForm(dtypes.IndexUInt32, mustNumpy(t, dtypes.Int8), nil, nil)
			require.NoError(t, err)
			return f
		},
		"numpy with inner shape": func(t *testing.T) Form {
			f, err := NewNumpyForm(dtypes.Float64, []int64{2, 3}, nil, nil)
			require.NoError(t, err)
			return f
		},
		"tuple": func(t *testing.T) Form {
			return mustRecord(t, []Form{mustNumpy(t, dtypes.Int64)}, nil)
		},
	}

	for name, build := range forms {
		t.Run(name, func(t *testing.T) {
			original := build(t)
			decoded, err := FromDict(ToDict(original, true))
			require.NoError(t, err)
			assert.True(t, original.Equal(decoded))

			compact, err := FromDict(ToDict(original, false))
			require.NoError(t, err)
			assert.True(t, original.Equal(compact))
		})
	}
}

func TestFromDictPrimitiveShorthand(t *testing.T) {
	f, err := FromDict("float64")
	require.NoError(t, err)

	leaf, ok := f.(*NumpyForm)
	require.True(t, ok)
	assert.Equal(t, dtypes.Float64, leaf.Primitive())
}

func TestFromDictLegacyAliases(t *testing.T) {
	cases := map[string]map[string]interface{}{
		"ListArray64": {
			"class":  "ListArray64",
			"starts": "i64", "stops": "i64",
			"content": "int64",
		},
		"ListOffsetArrayU32": {
			"class":   "ListOffsetArrayU32",
			"offsets": "u32",
			"content": "int64",
		},
		"IndexedArray32": {
			"class": "IndexedArray32",
			"index": "i32",
			"content": map[string]interface{}{
				"class": "NumpyArray", "primitive": "int64",
			},
		},
		"IndexedOptionArray64": {
			"class":   "IndexedOptionArray64",
			"index":   "i64",
			"content": "int64",
		},
		"UnionArray8_32": {
			"class": "UnionArray8_32",
			"tags":  "i8", "index": "i32",
			"contents": []interface{}{"int64", "float64"},
		},
	}

	for alias, payload := range cases {
		t.Run(alias, func(t *testing.T) {
			legacy, err := FromDict(payload)
			require.NoError(t, err)

			// The modern spelling of the same payload decodes equal.
			modern := map[string]interface{}{}
			for k, v := range payload {
				modern[k] = v
			}
			modern["class"] = map[string]string{
				"ListArray64":          "ListArray",
				"ListOffsetArrayU32":   "ListOffsetArray",
				"IndexedArray32":       "IndexedArray",
				"IndexedOptionArray64": "IndexedOptionArray",
				"UnionArray8_32":       "UnionArray",
			}[alias]
			expected, err := FromDict(modern)
			require.NoError(t, err)
			assert.True(t, legacy.Equal(expected))
		})
	}
}

func TestFromDictRecordShapes(t *testing.T) {
	newStyle := map[string]interface{}{
		"class":    "RecordArray",
		"fields":   []interface{}{"a", "b"},
		"contents": []interface{}{"int64", "float64"},
	}
	oldMapping := map[string]interface{}{
		"class": "RecordArray",
		"contents": map[string]interface{}{
			"a": "int64",
			"b": "float64",
		},
	}
	oldTuple := map[string]interface{}{
		"class":    "RecordArray",
		"contents": []interface{}{"int64", "float64"},
	}

	t.Run("mapping equals new style", func(t *testing.T) {
		fromNew, err := FromDict(newStyle)
		require.NoError(t, err)
		fromOld, err := FromDict(oldMapping)
		require.NoError(t, err)
		assert.True(t, fromNew.Equal(fromOld))
	})

	t.Run("list without fields is a tuple", func(t *testing.T) {
		f, err := FromDict(oldTuple)
		require.NoError(t, err)
		record, ok := f.(*RecordForm)
		require.True(t, ok)
		assert.True(t, record.IsTuple())
	})

	t.Run("explicit null fields is a tuple", func(t *testing.T) {
		f, err := FromDict(map[string]interface{}{
			"class":    "RecordArray",
			"fields":   nil,
			"contents": []interface{}{"int64"},
		})
		require.NoError(t, err)
		record, ok := f.(*RecordForm)
		require.True(t, ok)
		assert.True(t, record.IsTuple())
	})

	t.Run("new style rejects mapping contents", func(t *testing.T) {
		_, err := FromDict(map[string]interface{}{
			"class":    "RecordArray",
			"fields":   []interface{}{"a"},
			"contents": map[string]interface{}{"a": "int64"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not be mappings")
	})
}

func TestFromDictRejections(t *testing.T) {
	t.Run("virtual arrays", func(t *testing.T) {
		_, err := FromDict(map[string]interface{}{"class": "VirtualArray"})
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeUnsupported))
		assert.Contains(t, err.Error(), "VirtualArrays are not supported")
	})

	t.Run("unrecognised class", func(t *testing.T) {
		_, err := FromDict(map[string]interface{}{"class": "FancyArray"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `input class: "FancyArray" was not recognised`)
	})

	t.Run("positional state", func(t *testing.T) {
		_, err := FromDict([]interface{}{false, nil, nil})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FromState")
	})

	t.Run("wrong shape", func(t *testing.T) {
		_, err := FromDict(42)
		assert.Error(t, err)
	})
}

func TestFromDictTypeInsensitiveToAliases(t *testing.T) {
	legacy, err := FromDict(map[string]interface{}{
		"class":   "ListOffsetArray32",
		"offsets": "i32",
		"content": "float64",
	})
	require.NoError(t, err)

	modern, err := FromDict(map[string]interface{}{
		"class":   "ListOffsetArray",
		"offsets": "i64",
		"content": "float64",
	})
	require.NoError(t, err)

	// Physical encodings differ, semantic types agree.
	assert.False(t, legacy.Equal(modern))
	assert.True(t, legacy.Type().Equal(modern.Type()))
}

func TestFromState(t *testing.T) {
	t.Run("byte masked with form key prefix", func(t *testing.T) {
		f, err := FromState("ByteMaskedArray", []interface{}{
			false,
			map[string]interface{}{"units": "GeV"},
			"node0",
			"i8",
			"float64",
			true,
		})
		require.NoError(t, err)

		masked, ok := f.(*ByteMaskedForm)
		require.True(t, ok)
		require.NotNil(t, masked.FormKey())
		assert.Equal(t, "part0-node0", *masked.FormKey())
		assert.True(t, masked.ValidWhen())
		assert.Equal(t, "GeV", masked.Parameter("units"))
	})

	t.Run("nil form key stays nil", func(t *testing.T) {
		f, err := FromState("UnmaskedArray", []interface{}{false, nil, nil, "int64"})
		require.NoError(t, err)
		assert.Nil(t, f.FormKey())
	})

	t.Run("record with nested mapping content", func(t *testing.T) {
		f, err := FromState("RecordArray", []interface{}{
			false, nil, nil,
			[]interface{}{
				map[string]interface{}{"class": "NumpyArray", "primitive": "int64"},
			},
			[]interface{}{"x"},
		})
		require.NoError(t, err)
		record, ok := f.(*RecordForm)
		require.True(t, ok)
		assert.Equal(t, []string{"x"}, record.Fields())
	})

	t.Run("legacy alias classes accepted", func(t *testing.T) {
		f, err := FromState("ListOffsetArray64", []interface{}{false, nil, nil, "i64", "int64"})
		require.NoError(t, err)
		_, ok := f.(*ListOffsetForm)
		assert.True(t, ok)
	})

	t.Run("short state rejected", func(t *testing.T) {
		_, err := FromState("EmptyArray", []interface{}{false})
		assert.Error(t, err)
	})

	t.Run("unknown class rejected", func(t *testing.T) {
		_, err := FromState("FancyArray", []interface{}{false, nil, nil})
		assert.Error(t, err)
	})
}
