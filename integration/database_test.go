//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startContainer starts a database container and returns its host and mapped port.
func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) (string, string) {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	return host, mapped.Port()
}

// exerciseHistory runs migrations, two analyses and every history subcommand against a backend.
func exerciseHistory(t *testing.T, backend, connStr string) {
	t.Helper()
	env := []string{
		"STACKSCAN_HISTORY_BACKEND=" + backend,
		"STACKSCAN_HISTORY_DB_CONNECT=" + connStr,
	}

	_, _, err := runStackscan(t, env, "history", "migrate")
	require.NoError(t, err)

	_, _, err = runStackscan(t, env, "history", "clear")
	require.NoError(t, err)

	for range 2 {
		_, _, err = runStackscan(t, env, springFixture(t), "--output", "json", "--save=false")
		require.NoError(t, err)
	}

	stdout, _, err := runStackscan(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total Runs: 2")

	stdout, _, err = runStackscan(t, env, "history", "list", "--color", "no")
	require.NoError(t, err)
	assert.Contains(t, stdout, "java_maven")

	_, _, err = runStackscan(t, env, "history", "export", "--output-file", t.TempDir()+"/export")
	require.NoError(t, err)

	_, _, err = runStackscan(t, env, "history", "migrate", "--target-version", "0")
	require.NoError(t, err)
}

// TestHistoryWithMySQL tests run history with a MySQL backend.
func TestHistoryWithMySQL(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "stackscan",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}, "3306")

	exerciseHistory(t, "mysql", fmt.Sprintf("root:secret123@tcp(%s:%s)/stackscan", host, port))
}

// TestHistoryWithPostgres tests run history with a PostgreSQL backend.
func TestHistoryWithPostgres(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}, "5432")

	exerciseHistory(t, "postgresql", fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port))
}
