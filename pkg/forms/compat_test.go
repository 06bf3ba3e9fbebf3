package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/ragged/pkg/dtypes"
)

func TestGeneratedCompatibility(t *testing.T) {
	i64 := mustNumpy(t, dtypes.Int64)
	f64 := mustNumpy(t, dtypes.Float64)

	t.Run("nil is compatible with anything", func(t *testing.T) {
		assert.True(t, GeneratedCompatibility(i64, nil))
	})

	t.Run("identical leaves", func(t *testing.T) {
		assert.True(t, GeneratedCompatibility(i64, mustNumpy(t, dtypes.Int64)))
		assert.False(t, GeneratedCompatibility(i64, f64))
	})

	t.Run("all parameters participate", func(t *testing.T) {
		tagged, err := NewNumpyForm(dtypes.Int64, nil,
			map[string]interface{}{"__doc__": "run number"}, nil)
		require.NoError(t, err)
		assert.False(t, GeneratedCompatibility(i64, tagged))

		advisory, err := NewNumpyForm(dtypes.Int64, nil,
			map[string]interface{}{"units": "GeV"}, nil)
		require.NoError(t, err)
		assert.False(t, GeneratedCompatibility(i64, advisory))
	})

	t.Run("physical encoding matters", func(t *testing.T) {
		a := mustListOffset(t, dtypes.IndexInt64, i64)
		b := mustListOffset(t, dtypes.IndexInt32, i64)
		assert.False(t, GeneratedCompatibility(a, b))
		assert.True(t, GeneratedCompatibility(a, mustListOffset(t, dtypes.IndexInt64, i64)))
	})

	t.Run("record fields compare as a set", func(t *testing.T) {
		a := mustRecord(t, []Form{i64, f64}, []string{"x", "y"})
		b := mustRecord(t, []Form{f64, i64}, []string{"y", "x"})
		assert.True(t, GeneratedCompatibility(a, b))

		missing := mustRecord(t, []Form{i64}, []string{"x"})
		assert.False(t, GeneratedCompatibility(a, missing))

		tuple := mustRecord(t, []Form{i64, f64}, nil)
		assert.False(t, GeneratedCompatibility(a, tuple))
	})

	t.Run("different variants are incompatible", func(t *testing.T) {
		assert.False(t, GeneratedCompatibility(i64, NewEmptyForm(nil, nil)))
	})
}
