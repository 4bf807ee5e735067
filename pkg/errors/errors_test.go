package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataFor(t *testing.T) {
	t.Run("known codes map to expected statuses", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, MetadataFor(CodeValidation).HTTPStatus)
		assert.Equal(t, http.StatusBadRequest, MetadataFor(CodeReferenceNotFound).HTTPStatus)
		assert.Equal(t, http.StatusBadRequest, MetadataFor(CodeInsufficientStock).HTTPStatus)
		assert.Equal(t, http.StatusUnauthorized, MetadataFor(CodeUnauthorized).HTTPStatus)
		assert.Equal(t, http.StatusNotFound, MetadataFor(CodeNotFound).HTTPStatus)
		assert.Equal(t, http.StatusConflict, MetadataFor(CodeConflict).HTTPStatus)
	})

	t.Run("unknown code falls back to internal", func(t *testing.T) {
		meta := MetadataFor(Code("NOPE"))
		assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
	})
}

func TestErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("db down")
	err := Wrap(CodeDependency, cause, "lookup failed")

	require.Error(t, err)
	assert.Equal(t, CodeDependency, err.Code())
	assert.ErrorIs(t, err, cause)
}

func TestAs(t *testing.T) {
	t.Run("extracts typed error through wrapping", func(t *testing.T) {
		inner := New(CodeInsufficientStock, "not enough on hand")
		wrapped := fmt.Errorf("adjust: %w", inner)

		typed := As(wrapped)
		require.NotNil(t, typed)
		assert.Equal(t, CodeInsufficientStock, typed.Code())
	})

	t.Run("returns nil for plain errors", func(t *testing.T) {
		assert.Nil(t, As(fmt.Errorf("plain")))
		assert.Nil(t, As(nil))
	})
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "bad payload").WithDetails(map[string]string{"quantity": "must be positive"})
	assert.NotNil(t, err.Details())
}
