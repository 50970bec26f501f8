//go:build integration

// Package dbtest starts a migrated Postgres container for integration tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MrJamesThe3rd/kirana/internal/database"
	"github.com/MrJamesThe3rd/kirana/internal/database/migrations"
)

// New returns a connection to a fresh database with every migration applied.
// The container is terminated when the test finishes.
func New(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("kirana_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m, err := migrations.New(db)
	require.NoError(t, err)
	require.NoError(t, m.Up())

	return db
}
