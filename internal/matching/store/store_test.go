package store_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kirana/internal/matching/store"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock
}

func TestStore_FindMatch(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY LENGTH(raw_pattern) DESC")).
		WithArgs("BASMATI 1121 25KG").
		WillReturnRows(sqlmock.NewRows([]string{"item_name"}).AddRow("Basmati Rice"))

	got, err := store.New(db).FindMatch(context.Background(), "BASMATI 1121 25KG")
	require.NoError(t, err)
	assert.Equal(t, "Basmati Rice", got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FindMatch_NoMatch(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("FROM item_aliases").WillReturnError(sql.ErrNoRows)

	got, err := store.New(db).FindMatch(context.Background(), "Salt")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_FindMatch_Error(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("FROM item_aliases").WillReturnError(errors.New("connection reset"))

	_, err := store.New(db).FindMatch(context.Background(), "Salt")
	assert.EqualError(t, err, "finding alias: connection reset")
}

func TestStore_SaveAlias_Upserts(t *testing.T) {
	db, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (raw_pattern) DO UPDATE")).
		WithArgs("BASMATI", "Basmati Rice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "raw_pattern", "item_name", "created_at"}).
			AddRow(id.String(), "BASMATI", "Basmati Rice", time.Now()))

	a, err := store.New(db).SaveAlias(context.Background(), "BASMATI", "Basmati Rice")
	require.NoError(t, err)
	assert.Equal(t, id, a.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListAliases(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT id, raw_pattern, item_name, created_at FROM item_aliases").
		WillReturnRows(sqlmock.NewRows([]string{"id", "raw_pattern", "item_name", "created_at"}).
			AddRow(uuid.NewString(), "ATTA", "Atta", time.Now()).
			AddRow(uuid.NewString(), "TOOR", "Toor Dal", time.Now()))

	aliases, err := store.New(db).ListAliases(context.Background())
	require.NoError(t, err)
	require.Len(t, aliases, 2)
	assert.Equal(t, "Toor Dal", aliases[1].ItemName)
}
