package database_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/kirana/internal/database"
)

func TestViolationCodes(t *testing.T) {
	unique := fmt.Errorf("inserting: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, database.IsUniqueViolation(unique))
	assert.False(t, database.IsForeignKeyViolation(unique))
	assert.True(t, database.IsForeignKeyViolation(fk))
	assert.False(t, database.IsUniqueViolation(errors.New("boom")))
	assert.False(t, database.IsUniqueViolation(nil))
}
