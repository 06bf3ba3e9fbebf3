package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/ragged/pkg/dtypes"
)

func TestExpectedFromBuffers(t *testing.T) {
	leaf := mustNumpy(t, dtypes.Float64)
	leaf.SetFormKey(FormKeyOf("pt"))

	masked, err := NewByteMaskedForm(dtypes.IndexInt8, leaf, true, nil, FormKeyOf("mask0"))
	require.NoError(t, err)

	list, err := NewListOffsetForm(dtypes.IndexInt32, masked, nil, FormKeyOf("jets"))
	require.NoError(t, err)

	t.Run("recursive walk in tree order", func(t *testing.T) {
		assert.Equal(t, []BufferExpectation{
			{Key: "jets-offsets", DType: dtypes.Int32},
			{Key: "mask0-mask", DType: dtypes.Int8},
			{Key: "pt-data", DType: dtypes.Float64},
		}, ExpectedFromBuffers(list, DefaultBufferKey, true))
	})

	t.Run("non-recursive stops at the root", func(t *testing.T) {
		assert.Equal(t, []BufferExpectation{
			{Key: "jets-offsets", DType: dtypes.Int32},
		}, ExpectedFromBuffers(list, DefaultBufferKey, false))
	})

	t.Run("union owns tags and index", func(t *testing.T) {
		union, err := NewUnionForm(dtypes.IndexInt8, dtypes.IndexInt64,
			[]Form{mustNumpy(t, dtypes.Int64)}, nil, FormKeyOf("u"))
		require.NoError(t, err)

		expectations := ExpectedFromBuffers(union, DefaultBufferKey, false)
		assert.Equal(t, []BufferExpectation{
			{Key: "u-tags", DType: dtypes.Int8},
			{Key: "u-index", DType: dtypes.Int64},
		}, expectations)
	})

	t.Run("structural nodes own nothing", func(t *testing.T) {
		record := mustRecord(t, []Form{mustNumpy(t, dtypes.Int64)}, []string{"a"})
		assert.Empty(t, ExpectedFromBuffers(record, DefaultBufferKey, false))

		regular, err := NewRegularForm(mustNumpy(t, dtypes.Int64), 2, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, ExpectedFromBuffers(regular, DefaultBufferKey, false))

		assert.Empty(t, ExpectedFromBuffers(NewEmptyForm(nil, nil), DefaultBufferKey, true))
	})

	t.Run("default key without form key", func(t *testing.T) {
		bare := mustNumpy(t, dtypes.Int64)
		assert.Equal(t, []BufferExpectation{
			{Key: "data", DType: dtypes.Int64},
		}, ExpectedFromBuffers(bare, DefaultBufferKey, true))
	})
}

func TestCannedContainers(t *testing.T) {
	t.Run("length zero", func(t *testing.T) {
		container := LengthZeroContainer()
		require.Contains(t, container, "")
		assert.Len(t, container[""], 8)
		for _, b := range container[""] {
			assert.Zero(t, b)
		}
	})

	t.Run("length one covers the widest dtype", func(t *testing.T) {
		container := LengthOneContainer()
		require.Contains(t, container, "")
		assert.Len(t, container[""], 32)
	})

	t.Run("zero buffer key maps everything to the shared entry", func(t *testing.T) {
		leaf := mustNumpy(t, dtypes.Complex128)
		expectations := ExpectedFromBuffers(leaf, ZeroBufferKey, true)
		require.Len(t, expectations, 1)
		assert.Equal(t, "", expectations[0].Key)

		// The shared stub is large enough for one element of any dtype.
		assert.GreaterOrEqual(t, len(LengthOneContainer()[""]), expectations[0].DType.ByteWidth())
	})
}
