package license_test

import (
	"testing"

	"github.com/aussiebroadwan/keyward/pkg/licensesdk"
	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness check endpoint works on a fresh service.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupLicenseContainer(t)
	defer cleanup()

	client := licensesdk.NewSDKClient(baseURL)

	health, err := client.Livez(t.Context())
	assertHealthy(t, health, err)

	t.Logf("Livez endpoint is healthy")
}

// TestReadyzEndpoint verifies the readiness check reports the database and the
// server date source as available.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupLicenseContainer(t)
	defer cleanup()

	client := licensesdk.NewSDKClient(baseURL)

	health, err := client.Readyz(t.Context())
	assertHealthy(t, health, err)

	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "ok", health.Checks.TimeAuthority)
}
