package dtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimitiveValid(t *testing.T) {
	t.Run("fixed width members", func(t *testing.T) {
		for _, p := range []Primitive{
			Bool, Int8, UInt8, Int16, UInt16, Int32, UInt32, Int64, UInt64,
			Float16, Float32, Float64, Complex64, Complex128,
		} {
			assert.True(t, p.Valid(), "expected %q to be valid", p)
		}
	})

	t.Run("temporal tags", func(t *testing.T) {
		assert.True(t, Primitive("datetime64[ns]").Valid())
		assert.True(t, Primitive("datetime64[10us]").Valid())
		assert.True(t, Primitive("timedelta64[s]").Valid())
	})

	t.Run("rejects unknown tags", func(t *testing.T) {
		assert.False(t, Primitive("int128").Valid())
		assert.False(t, Primitive("datetime64").Valid())
		assert.False(t, Primitive("datetime64[lightyears]").Valid())
		assert.False(t, Primitive("").Valid())
	})
}

func TestPrimitiveByteWidth(t *testing.T) {
	assert.Equal(t, 1, Bool.ByteWidth())
	assert.Equal(t, 2, Float16.ByteWidth())
	assert.Equal(t, 8, Int64.ByteWidth())
	assert.Equal(t, 16, Complex128.ByteWidth())
	assert.Equal(t, 8, Primitive("datetime64[ms]").ByteWidth())
	assert.Equal(t, 0, Primitive("nope").ByteWidth())
}

func TestPrimitiveTemporal(t *testing.T) {
	assert.True(t, Primitive("datetime64[s]").IsDatetime())
	assert.False(t, Primitive("datetime64[s]").IsTimedelta())
	assert.True(t, Primitive("timedelta64[ns]").IsTimedelta())
	assert.Equal(t, "us", Primitive("datetime64[us]").TemporalUnit())
	assert.Equal(t, "", Int32.TemporalUnit())
	assert.False(t, Int32.IsTemporal())
}

func TestIndex(t *testing.T) {
	t.Run("members and primitives", func(t *testing.T) {
		assert.Equal(t, Int8, IndexInt8.Primitive())
		assert.Equal(t, UInt8, IndexUInt8.Primitive())
		assert.Equal(t, Int32, IndexInt32.Primitive())
		assert.Equal(t, UInt32, IndexUInt32.Primitive())
		assert.Equal(t, Int64, IndexInt64.Primitive())
	})

	t.Run("validity", func(t *testing.T) {
		assert.True(t, IndexInt64.Valid())
		assert.False(t, Index("i16").Valid())
		assert.False(t, Index("int64").Valid())
	})

	t.Run("signedness", func(t *testing.T) {
		assert.True(t, IndexInt32.Signed())
		assert.False(t, IndexUInt32.Signed())
		assert.False(t, IndexUInt8.Signed())
	})

	t.Run("one of", func(t *testing.T) {
		assert.True(t, IndexInt32.OneOf(IndexInt32, IndexInt64))
		assert.False(t, IndexUInt32.OneOf(IndexInt32, IndexInt64))
	})
}
