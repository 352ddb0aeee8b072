package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSQLStateClassification(t *testing.T) {
	dup := fmt.Errorf("inserting: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isDuplicateKeyError(dup))
	assert.False(t, isCheckViolation(dup))

	assert.True(t, isCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isDuplicateKeyError(errors.New("plain")))
	assert.False(t, isDuplicateKeyError(nil))
}

func TestPropertyOnlyUniqueViolationIsDuplicate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		code := rapid.StringMatching(`[0-9A-Z]{5}`).Draw(t, "code")
		got := isDuplicateKeyError(&pgconn.PgError{Code: code})
		if got != (code == "23505") {
			t.Fatalf("isDuplicateKeyError(%q) = %v", code, got)
		}
	})
}
