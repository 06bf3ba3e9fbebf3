package forms

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/ragged/pkg/dtypes"
	"github.com/ajitpratap0/ragged/pkg/types"
)

func TestToArrowSchema(t *testing.T) {
	i64 := mustNumpy(t, dtypes.Int64)
	f64 := mustNumpy(t, dtypes.Float64)

	option, err := NewIndexedOptionForm(dtypes.IndexInt64, f64, nil, nil)
	require.NoError(t, err)

	jagged := mustListOffset(t, dtypes.IndexInt64, i64)

	record := mustRecord(t,
		[]Form{i64, option, jagged, stringForm(t)},
		[]string{"id", "energy", "hits", "label"})

	schema, err := ToArrowSchema(record)
	require.NoError(t, err)
	require.Equal(t, 4, schema.NumFields())

	t.Run("plain leaf", func(t *testing.T) {
		field := schema.Field(0)
		assert.Equal(t, "id", field.Name)
		assert.Equal(t, arrow.PrimitiveTypes.Int64, field.Type)
		assert.False(t, field.Nullable)
	})

	t.Run("option becomes nullability", func(t *testing.T) {
		field := schema.Field(1)
		assert.Equal(t, arrow.PrimitiveTypes.Float64, field.Type)
		assert.True(t, field.Nullable)
	})

	t.Run("64-bit offsets become a large list", func(t *testing.T) {
		field := schema.Field(2)
		assert.Equal(t, arrow.LargeListOf(arrow.PrimitiveTypes.Int64), field.Type)
	})

	t.Run("string flavored list", func(t *testing.T) {
		field := schema.Field(3)
		assert.Equal(t, arrow.BinaryTypes.LargeString, field.Type)
	})
}

func TestToArrowType(t *testing.T) {
	t.Run("temporal dtypes", func(t *testing.T) {
		ts, err := NewNumpyForm("datetime64[us]", nil, nil, nil)
		require.NoError(t, err)
		dt, err := ToArrowType(ts)
		require.NoError(t, err)
		assert.Equal(t, arrow.FixedWidthTypes.Timestamp_us, dt)

		dur, err := NewNumpyForm("timedelta64[ns]", nil, nil, nil)
		require.NoError(t, err)
		dt, err = ToArrowType(dur)
		require.NoError(t, err)
		assert.Equal(t, arrow.FixedWidthTypes.Duration_ns, dt)
	})

	t.Run("inner shape becomes fixed size lists", func(t *testing.T) {
		tensor, err := NewNumpyForm(dtypes.Float32, []int64{2, 3}, nil, nil)
		require.NoError(t, err)
		dt, err := ToArrowType(tensor)
		require.NoError(t, err)
		assert.Equal(t, arrow.FixedSizeListOf(2, arrow.FixedSizeListOf(3, arrow.PrimitiveTypes.Float32)), dt)
	})

	t.Run("regular of known size", func(t *testing.T) {
		regular, err := NewRegularForm(mustNumpy(t, dtypes.Int32), 4, nil, nil)
		require.NoError(t, err)
		dt, err := ToArrowType(regular)
		require.NoError(t, err)
		assert.Equal(t, arrow.FixedSizeListOf(4, arrow.PrimitiveTypes.Int32), dt)
	})

	t.Run("regular of unknown size fails", func(t *testing.T) {
		regular, err := NewRegularForm(mustNumpy(t, dtypes.Int32), types.UnknownLength, nil, nil)
		require.NoError(t, err)
		_, err = ToArrowType(regular)
		assert.Error(t, err)
	})

	t.Run("32-bit offsets become a plain list", func(t *testing.T) {
		list := mustListOffset(t, dtypes.IndexInt32, mustNumpy(t, dtypes.Int64))
		dt, err := ToArrowType(list)
		require.NoError(t, err)
		assert.Equal(t, arrow.ListOf(arrow.PrimitiveTypes.Int64), dt)
	})

	t.Run("empty becomes null", func(t *testing.T) {
		dt, err := ToArrowType(NewEmptyForm(nil, nil))
		require.NoError(t, err)
		assert.Equal(t, arrow.Null, dt)
	})

	t.Run("union becomes a dense union", func(t *testing.T) {
		union, err := NewUnionForm(dtypes.IndexInt8, dtypes.IndexInt64,
			[]Form{mustNumpy(t, dtypes.Int64), mustNumpy(t, dtypes.Float64)}, nil, nil)
		require.NoError(t, err)
		dt, err := ToArrowType(union)
		require.NoError(t, err)
		assert.Equal(t, arrow.DENSE_UNION, dt.ID())
	})

	t.Run("complex has no arrow equivalent", func(t *testing.T) {
		c, err := NewNumpyForm(dtypes.Complex128, nil, nil, nil)
		require.NoError(t, err)
		_, err = ToArrowType(c)
		assert.Error(t, err)
	})

	t.Run("nested record", func(t *testing.T) {
		inner := mustRecord(t, []Form{mustNumpy(t, dtypes.Float64)}, []string{"x"})
		dt, err := ToArrowType(inner)
		require.NoError(t, err)
		assert.Equal(t, arrow.StructOf(arrow.Field{Name: "x", Type: arrow.PrimitiveTypes.Float64}), dt)
	})
}
