package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/ragged/pkg/dtypes"
)

func TestPlainConstructorsNeverCollapse(t *testing.T) {
	leaf := mustNumpy(t, dtypes.Int64)
	inner, err := NewIndexedOptionForm(dtypes.IndexInt64, leaf, nil, nil)
	require.NoError(t, err)

	outer, err := NewIndexedOptionForm(dtypes.IndexInt64, inner, nil, nil)
	require.NoError(t, err)

	nested, ok := outer.Content().(*IndexedOptionForm)
	require.True(t, ok)
	assert.True(t, nested.Equal(inner))
}

func TestSimplifiedOptionOverOption(t *testing.T) {
	leaf := mustNumpy(t, dtypes.Int64)
	inner, err := NewIndexedOptionForm(dtypes.IndexInt32, leaf, nil, nil)
	require.NoError(t, err)

	simplified, err := SimplifiedIndexedOptionForm(dtypes.IndexInt64, inner, nil, nil)
	require.NoError(t, err)

	merged, ok := simplified.(*IndexedOptionForm)
	require.True(t, ok)
	assert.Equal(t, dtypes.IndexInt64, merged.Index())
	assert.True(t, merged.Content().Equal(leaf))
}

func TestSimplifiedOptionOverIndexed(t *testing.T) {
	leaf := mustNumpy(t, dtypes.Int64)
	gather, err := NewIndexedForm(dtypes.IndexUInt32, leaf, nil, nil)
	require.NoError(t, err)

	t.Run("byte mask merges into indexed option", func(t *testing.T) {
		simplified, err := SimplifiedByteMaskedForm(dtypes.IndexInt8, gather, true, nil, nil)
		require.NoError(t, err)

		merged, ok := simplified.(*IndexedOptionForm)
		require.True(t, ok)
		assert.Equal(t, dtypes.IndexInt64, merged.Index())
		assert.True(t, merged.Content().Equal(leaf))
	})

	t.Run("bit mask merges the same way", func(t *testing.T) {
		simplified, err := SimplifiedBitMaskedForm(dtypes.IndexUInt8, gather, true, true, nil, nil)
		require.NoError(t, err)
		_, ok := simplified.(*IndexedOptionForm)
		assert.True(t, ok)
	})
}

func TestSimplifiedIndexedOverIndexed(t *testing.T) {
	leaf := mustNumpy(t, dtypes.Int64)
	inner, err := NewIndexedForm(dtypes.IndexInt32, leaf, nil, nil)
	require.NoError(t, err)

	simplified, err := SimplifiedIndexedForm(dtypes.IndexInt32, inner, nil, nil)
	require.NoError(t, err)

	merged, ok := simplified.(*IndexedForm)
	require.True(t, ok)
	assert.Equal(t, dtypes.IndexInt64, merged.Index())
	assert.True(t, merged.Content().Equal(leaf))
}

func TestSimplifiedIndexedOverOption(t *testing.T) {
	leaf := mustNumpy(t, dtypes.Int64)
	option, err := NewIndexedOptionForm(dtypes.IndexInt32, leaf, nil, nil)
	require.NoError(t, err)

	simplified, err := SimplifiedIndexedForm(dtypes.IndexInt64, option, nil, nil)
	require.NoError(t, err)

	// The option layer wins: the result is option-shaped.
	merged, ok := simplified.(*IndexedOptionForm)
	require.True(t, ok)
	assert.True(t, merged.Content().Equal(leaf))
}

func TestSimplifiedOptionOverUnion(t *testing.T) {
	i64 := mustNumpy(t, dtypes.Int64)
	f64 := mustNumpy(t, dtypes.Float64)
	union, err := NewUnionForm(dtypes.IndexInt8, dtypes.IndexInt64, []Form{i64, f64}, nil, nil)
	require.NoError(t, err)

	simplified, err := SimplifiedIndexedOptionForm(dtypes.IndexInt64, union, nil, nil)
	require.NoError(t, err)

	distributed, ok := simplified.(*UnionForm)
	require.True(t, ok, "optionality must distribute over the union")
	require.Len(t, distributed.Contents(), 2)
	for _, branch := range distributed.Contents() {
		assert.True(t, IsOption(branch), "every branch becomes option-shaped")
	}
}

func TestCategoricalBlocksUnionAbsorption(t *testing.T) {
	i64 := mustNumpy(t, dtypes.Int64)
	f64 := mustNumpy(t, dtypes.Float64)
	union, err := NewUnionForm(dtypes.IndexInt8, dtypes.IndexInt64, []Form{i64, f64}, nil, nil)
	require.NoError(t, err)

	categorical := map[string]interface{}{"__array__": "categorical"}
	simplified, err := SimplifiedIndexedOptionForm(dtypes.IndexInt64, union, categorical, nil)
	require.NoError(t, err)

	// The index is semantically load-bearing for categoricals, so the
	// wrapper survives.
	wrapper, ok := simplified.(*IndexedOptionForm)
	require.True(t, ok)
	assert.True(t, IsUnion(wrapper.Content()))
}

func TestSimplifiedUnmasked(t *testing.T) {
	leaf := mustNumpy(t, dtypes.Int64)

	t.Run("dissolves over option children", func(t *testing.T) {
		option, err := NewIndexedOptionForm(dtypes.IndexInt64, leaf, nil, nil)
		require.NoError(t, err)

		simplified, err := SimplifiedUnmaskedForm(option, nil, nil)
		require.NoError(t, err)
		assert.True(t, simplified.Equal(option))
	})

	t.Run("wraps plain children", func(t *testing.T) {
		simplified, err := SimplifiedUnmaskedForm(leaf, nil, nil)
		require.NoError(t, err)
		_, ok := simplified.(*UnmaskedForm)
		assert.True(t, ok)
	})
}

func TestSimplifiedUnion(t *testing.T) {
	i64 := mustNumpy(t, dtypes.Int64)
	f64 := mustNumpy(t, dtypes.Float64)

	t.Run("flattens nested unions", func(t *testing.T) {
		inner, err := NewUnionForm(dtypes.IndexInt8, dtypes.IndexInt64, []Form{i64, f64}, nil, nil)
		require.NoError(t, err)

		simplified, err := SimplifiedUnionForm(dtypes.IndexInt8, dtypes.IndexInt64,
			[]Form{inner, stringForm(t)}, nil, nil)
		require.NoError(t, err)

		union, ok := simplified.(*UnionForm)
		require.True(t, ok)
		assert.Len(t, union.Contents(), 3)
	})

	t.Run("single branch dissolves", func(t *testing.T) {
		simplified, err := SimplifiedUnionForm(dtypes.IndexInt8, dtypes.IndexInt64, []Form{i64}, nil, nil)
		require.NoError(t, err)
		assert.True(t, simplified.Equal(i64))
	})
}

func TestSimplificationMergesParameters(t *testing.T) {
	leaf := mustNumpy(t, dtypes.Int64)
	inner, err := NewIndexedOptionForm(dtypes.IndexInt64, leaf,
		map[string]interface{}{"a": "inner", "b": "inner"}, nil)
	require.NoError(t, err)

	simplified, err := SimplifiedIndexedOptionForm(dtypes.IndexInt64, inner,
		map[string]interface{}{"b": "outer"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "inner", simplified.Parameter("a"))
	assert.Equal(t, "outer", simplified.Parameter("b"), "outer layer wins on conflict")
}

func TestSimplifiedIsIdempotent(t *testing.T) {
	leaf := mustNumpy(t, dtypes.Int64)
	option, err := NewIndexedOptionForm(dtypes.IndexInt32, leaf, nil, nil)
	require.NoError(t, err)

	once, err := SimplifiedIndexedOptionForm(dtypes.IndexInt64, option, nil, nil)
	require.NoError(t, err)
	twice, err := SimplifiedIndexedOptionForm(dtypes.IndexInt64, once, nil, nil)
	require.NoError(t, err)

	assert.True(t, once.Equal(twice))

	// At most one option-flavored wrapper survives.
	merged, ok := twice.(*IndexedOptionForm)
	require.True(t, ok)
	assert.False(t, IsOption(merged.Content()))
	assert.False(t, IsIndexed(merged.Content()))
}
