// Package itf provides integration-test fixtures: a throwaway database
// per test, a pgx pool over it with the schema applied, and a context
// carrying a transaction that rolls back on cleanup.
package itf

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"

	"github.com/iota-uz/relations/modules/relations/infrastructure/persistence"
	"github.com/iota-uz/relations/pkg/composables"
	"github.com/iota-uz/relations/pkg/configuration"
)

// TestEnvironment holds everything an integration test needs. Ctx
// carries both the pool and the open transaction, so code under test
// joins the transaction through composables.UseTx.
type TestEnvironment struct {
	Ctx  context.Context
	Pool *pgxpool.Pool
	Tx   pgx.Tx
}

// Setup creates a database named after the test, applies the schema and
// opens a transaction that is rolled back when the test finishes.
func Setup(tb testing.TB) *TestEnvironment {
	tb.Helper()

	dbName := sanitizeDBName(tb.Name())
	createDB(tb, dbName)

	pool := newPool(tb, dbOpts(dbName))
	tb.Cleanup(pool.Close)

	ctx := context.Background()
	if _, err := pool.Exec(ctx, persistence.Schema); err != nil {
		tb.Fatalf("apply schema: %v", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(func() {
		if err := tx.Rollback(context.Background()); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			tb.Logf("rollback: %v", err)
		}
	})

	ctx = composables.WithPool(ctx, pool)
	ctx = composables.WithTx(ctx, tx)
	return &TestEnvironment{Ctx: ctx, Pool: pool, Tx: tx}
}

// SetupPool is Setup without the wrapping transaction. Tests that
// exercise commit/rollback behavior or concurrent transactions use this
// and manage their own lifecycles through the pool.
func SetupPool(tb testing.TB) *TestEnvironment {
	tb.Helper()

	dbName := sanitizeDBName(tb.Name())
	createDB(tb, dbName)

	pool := newPool(tb, dbOpts(dbName))
	tb.Cleanup(pool.Close)

	ctx := context.Background()
	if _, err := pool.Exec(ctx, persistence.Schema); err != nil {
		tb.Fatalf("apply schema: %v", err)
	}

	return &TestEnvironment{Ctx: composables.WithPool(ctx, pool), Pool: pool}
}

func newPool(tb testing.TB, opts string) *pgxpool.Pool {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	config, err := pgxpool.ParseConfig(opts)
	if err != nil {
		tb.Fatal(err)
	}
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		tb.Fatalf("create pool: %v", err)
	}
	return pool
}

func createDB(tb testing.TB, name string) {
	tb.Helper()

	c := configuration.Use()
	adminConnStr := fmt.Sprintf(
		"host=%s port=%s user=%s dbname=postgres password=%s sslmode=disable",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password,
	)
	db, err := sql.Open("postgres", adminConnStr)
	if err != nil {
		tb.Fatal(err)
	}
	defer func() {
		if cErr := db.Close(); cErr != nil {
			tb.Logf("close admin connection: %v", cErr)
		}
	}()

	if _, err := db.ExecContext(context.Background(), "DROP DATABASE IF EXISTS "+name); err != nil {
		tb.Fatal(err)
	}
	if _, err := db.ExecContext(context.Background(), "CREATE DATABASE "+name); err != nil {
		tb.Fatal(err)
	}
}

func dbOpts(name string) string {
	c := configuration.Use()
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		c.Database.Host, c.Database.Port, c.Database.User, name, c.Database.Password,
	)
}

// Postgres caps identifiers at 63 bytes; longer test names get truncated
// with a hash suffix for uniqueness.
const maxDBNameLength = 63

func sanitizeDBName(name string) string {
	sanitized := strings.ToLower(name)
	for _, ch := range []string{"/", " ", "-", ".", "(", ")", "[", "]"} {
		sanitized = strings.ReplaceAll(sanitized, ch, "_")
	}
	for strings.Contains(sanitized, "__") {
		sanitized = strings.ReplaceAll(sanitized, "__", "_")
	}
	sanitized = strings.Trim(sanitized, "_")
	if sanitized == "" {
		sanitized = "test_db"
	}
	if len(sanitized) <= maxDBNameLength {
		return sanitized
	}

	hash := fmt.Sprintf("%x", sha256.Sum256([]byte(name)))[:8]
	return sanitized[:maxDBNameLength-9] + "_" + hash
}
