package license_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/keyward/pkg/cryptox"
	"github.com/aussiebroadwan/keyward/pkg/licensesdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for license service end-to-end tests.
 * This includes container setup, service operations, and assertions.
 */

const (
	testImageName = "keyward-license-test:latest"

	adminKey   = "test-admin-key-12345"
	jwtSecret  = "e2e-test-secret-0123456789abcdef0123456789abcdef"
	testClient = "Acme Pty Ltd"
)

// adminKeyHash is computed once in TestMain and injected into each container.
var adminKeyHash string

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	hash, err := cryptox.HashKey(adminKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash admin key: %v\n", err)
		os.Exit(1)
	}
	adminKeyHash = hash

	fmt.Fprintf(os.Stdout, "Building License Service Docker image...")

	// Build the Docker image once before all tests
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	// Run all tests
	exitCode := m.Run()

	// Clean up the Docker image after all tests complete
	fmt.Fprintf(os.Stdout, "Cleaning up License Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/license/Dockerfile",
		"../../../")
	cmd.Dir = "." // Ensure we're in the test directory
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupLicenseContainer starts the license service in a container and returns the base URL.
func setupLicenseContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"LICENSE_DATABASE_FILE":  "/keyward.db",
			"LICENSE_ADMIN_KEY_HASH": adminKeyHash,
			"LICENSE_JWT_SECRET":     jwtSecret,
			"LICENSE_ISSUER":         "keyward",
			"ENV":                    "test",
			"LOG_LEVEL":              "info",
			"LOG_FORMAT":             "json",
			// Increase rate limits for E2E tests to prevent test failures
			// Tests often make many rapid requests which would otherwise hit the strict production limits
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	// Get the mapped port
	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// adminLogin exchanges the shared admin key for an operator session.
func adminLogin(t *testing.T, client *licensesdk.SDKClient) *licensesdk.AdminSession {
	t.Helper()

	session, err := client.Login(t.Context(), adminKey)
	require.NoError(t, err, "Admin login should succeed")
	require.NotNil(t, session)
	require.NotEmpty(t, session.Token(), "Session token should not be empty")

	return session
}

// issueLicense creates a fresh license valid for the given number of days and
// returns its key.
func issueLicense(t *testing.T, session *licensesdk.AdminSession, days int) string {
	t.Helper()

	lic, err := session.CreateLicense(t.Context(), licensesdk.CreateLicenseRequest{
		ClientName:   testClient,
		DurationDays: days,
	})
	require.NoError(t, err, "License creation should succeed")
	require.NotEmpty(t, lic.Key, "License key should not be empty")
	require.Equal(t, licensesdk.StatusActive, lic.Status)

	return lic.Key
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *licensesdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// assertAPIError verifies an error is an APIError with the expected code.
func assertAPIError(t *testing.T, err error, want *licensesdk.APIError, context string) {
	t.Helper()
	require.Error(t, err, context)
	require.ErrorIs(t, err, want, "%s - expected %s, got: %v", context, want.Code, err)
}
