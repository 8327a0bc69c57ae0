package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	serialization := &pgconn.PgError{Code: pgerrcode.SerializationFailure}

	t.Run("bare error", func(t *testing.T) {
		assert.True(t, isSerializationFailure(serialization))
	})

	t.Run("wrapped error", func(t *testing.T) {
		assert.True(t, isSerializationFailure(fmt.Errorf("check overlap failed: %w", serialization)))
	})

	t.Run("other sqlstate", func(t *testing.T) {
		unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		assert.False(t, isSerializationFailure(unique))
	})

	t.Run("non-postgres error", func(t *testing.T) {
		assert.False(t, isSerializationFailure(errors.New("connection reset")))
		assert.False(t, isSerializationFailure(nil))
	})
}
