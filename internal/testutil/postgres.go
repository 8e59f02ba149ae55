// Package testutil starts throwaway infrastructure for repository integration tests
package testutil

import (
	"context"
	"os/exec"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"dbtrain-backend/internal/infrastructure/database"
	"dbtrain-backend/migrations"
)

// SetupPostgres starts a PostgreSQL container, applies every up migration and
// returns a connected pool. The test is skipped under -short or without docker.
func SetupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "dbtrain_test",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Error terminating postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	portNum, err := strconv.Atoi(port.Port())
	require.NoError(t, err)

	db := database.NewPostgresDB(&database.DBConfig{
		Host:              host,
		Port:              portNum,
		Username:          "test",
		Password:          "test",
		DBName:            "dbtrain_test",
		MaxConns:          5,
		MinConns:          1,
		MaxConnLifetime:   time.Hour,
		MaxConnIdleTime:   time.Minute,
		HealthCheckPeriod: time.Minute,
		MaxRetries:        5,
		RetryDelay:        200 * time.Millisecond,
		ConnectTimeout:    5 * time.Second,
	})
	require.NoError(t, db.Connect(ctx))
	t.Cleanup(func() { _ = db.Close() })

	list, err := migrations.Load(migrations.Up)
	require.NoError(t, err)
	for _, m := range list {
		_, err := db.Pool.Exec(ctx, m.SQL)
		require.NoError(t, err, "migration %s", m.Name)
	}

	return db.Pool
}

// Truncate empties every application table between subtests
func Truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`TRUNCATE entry_tags, entries, tags, author_profiles, authors RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}
