package lifecycle

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "claims_pkey" (SQLSTATE 23505)`)))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: claims.id")))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(nil))
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := storageErr("create claim", cause)
	assert.True(t, errors.Is(err, cause))

	var se *StorageError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "create claim", se.Op)
	assert.Equal(t, "create claim: boom", err.Error())
}

func TestValidationErrorMessage(t *testing.T) {
	err := validationErr("NIK harus 16 digit")
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "NIK harus 16 digit", err.Error())

	wrapped := fmt.Errorf("handling submission: %w", err)
	assert.True(t, errors.As(wrapped, &ve))
}
