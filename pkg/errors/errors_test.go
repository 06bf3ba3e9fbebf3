package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrorTypeValidation, "size must be non-negative")
	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "validation: size must be non-negative", err.Error())
	assert.NotEmpty(t, err.Stack)
}

func TestNewf(t *testing.T) {
	err := Newf(ErrorTypeData, "input class: %q was not recognised", "Bogus")
	assert.Equal(t, `data: input class: "Bogus" was not recognised`, err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, ErrorTypeInternal, "ignored"))
	})

	t.Run("wraps foreign errors", func(t *testing.T) {
		cause := fmt.Errorf("unexpected end of JSON input")
		err := Wrap(cause, ErrorTypeData, "failed to decode form")
		require.NotNil(t, err)
		assert.Equal(t, "data: failed to decode form: unexpected end of JSON input", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("preserves the original stack", func(t *testing.T) {
		inner := New(ErrorTypeValidation, "bad index")
		err := Wrap(inner, ErrorTypeData, "while decoding")
		assert.Equal(t, inner.Stack, err.Stack)
	})

	t.Run("formatted variant", func(t *testing.T) {
		err := Wrapf(stderrors.New("boom"), ErrorTypeInternal, "field %s", "hits")
		assert.Equal(t, "internal: field hits: boom", err.Error())
	})
}

func TestWithDetail(t *testing.T) {
	err := New(ErrorTypeValidation, "invalid offsets").
		WithDetail("offsets", "i63").
		WithDetail("class", "ListOffsetArray")
	assert.Equal(t, "i63", err.Details["offsets"])
	assert.Equal(t, "ListOffsetArray", err.Details["class"])
}

func TestIsType(t *testing.T) {
	err := New(ErrorTypeNotFound, "no field")
	wrapped := fmt.Errorf("lookup: %w", err)

	assert.True(t, IsType(err, ErrorTypeNotFound))
	assert.True(t, IsType(wrapped, ErrorTypeNotFound))
	assert.False(t, IsType(err, ErrorTypeValidation))
	assert.False(t, IsType(stderrors.New("plain"), ErrorTypeNotFound))
}
