//go:build e2e

package database_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ltplabs/ecatalog/pkg/dbsdk"
)

/*
 * Container setup and fixtures for the database service end-to-end tests.
 */

const testImageName = "ecatalog-database-test:latest"

// TestMain builds the image once for the whole package and removes it
// afterwards. Without docker the suite is skipped.
func TestMain(m *testing.M) {
	if _, err := exec.LookPath("docker"); err != nil {
		fmt.Fprintln(os.Stdout, "docker not found, skipping database e2e tests")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building Database Service Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Database Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/database/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// setupDatabaseContainer starts a fresh database service and returns a
// client for it. The container is terminated when the test ends.
func setupDatabaseContainer(t *testing.T) *dbsdk.Client {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8001/tcp"},
		Env: map[string]string{
			"DB_PATH":              "/data/ecatalog.db",
			"MAINTENANCE_SCHEDULE": "off",
			"ENV":                  "test",
			"LOG_LEVEL":            "info",
			"LOG_FORMAT":           "json",
		},
		WaitingFor: wait.ForHTTP("/readyz").
			WithPort("8001/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8001")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return dbsdk.New(fmt.Sprintf("http://%s:%s", host, mappedPort.Port()), 10*time.Second)
}

// seedAdminAndClient creates one admin and one client whose access ends on
// expiresAt.
func seedAdminAndClient(t *testing.T, db *dbsdk.Client, expiresAt time.Time) (*dbsdk.Admin, *dbsdk.Cliente) {
	t.Helper()
	ctx := t.Context()

	admin, err := db.CreateAdmin(ctx, dbsdk.CreateAdminRequest{
		Nome:         "Ana",
		Email:        "ana@ltplabs.com",
		PasswordHash: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
	})
	require.NoError(t, err)

	client, err := db.CreateCliente(ctx, dbsdk.CreateClienteRequest{
		Nome:          "Rui",
		Email:         "rui@example.com",
		PasswordHash:  "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		DataExpiracao: dbsdk.FormatTime(expiresAt),
		CriadoPor:     admin.ID,
	})
	require.NoError(t, err)

	return admin, client
}

// assertStatus checks err is a database service error with the given status.
func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)

	var apiErr *dbsdk.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Error())
}
