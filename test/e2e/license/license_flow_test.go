package license_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/keyward/pkg/hwid"
	"github.com/aussiebroadwan/keyward/pkg/licensesdk"
	"github.com/stretchr/testify/require"
)

// TestLicenseLifecycle walks the whole customer journey: issue, activate on a
// machine, verify on startup, reject a second machine, revoke, reinstate.
func TestLicenseLifecycle(t *testing.T) {
	baseURL, cleanup := setupLicenseContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := licensesdk.NewSDKClient(baseURL)
	session := adminLogin(t, client)

	key := issueLicense(t, session, 365)

	machineA := "e2e-fingerprint-machine-a"
	machineB := "e2e-fingerprint-machine-b"

	// Before activation, verification finds nothing for the machine.
	_, err := client.VerifyFingerprint(ctx, machineA)
	assertAPIError(t, err, licensesdk.ErrNotActivated, "verify before activation")

	// First activation binds the license to machine A.
	res, err := client.ActivateFingerprint(ctx, key, machineA)
	require.NoError(t, err, "First activation should succeed")
	require.Equal(t, licensesdk.StatusActive, res.Status)
	require.Equal(t, key, res.LicenseKey)
	require.Positive(t, res.DaysRemaining)

	// Re-activating on the same machine is an idempotent success.
	res, err = client.ActivateFingerprint(ctx, key, machineA)
	require.NoError(t, err, "Re-activation on the same machine should succeed")
	require.Equal(t, licensesdk.StatusActive, res.Status)

	// A second machine must not steal the license.
	_, err = client.ActivateFingerprint(ctx, key, machineB)
	assertAPIError(t, err, licensesdk.ErrAlreadyBound, "activation on a second machine")

	// Machine A verifies cleanly on startup.
	res, err = client.VerifyFingerprint(ctx, machineA)
	require.NoError(t, err, "Verification on the bound machine should succeed")
	require.Equal(t, licensesdk.StatusActive, res.Status)
	require.Contains(t, res.Message, testClient)

	// Revocation takes effect on the very next verification.
	require.NoError(t, session.RevokeLicense(ctx, key))

	_, err = client.VerifyFingerprint(ctx, machineA)
	assertAPIError(t, err, licensesdk.ErrLicenseRevoked, "verify after revocation")

	// The machine can still see what happened via the info endpoint.
	infoClient := licensesdk.NewSDKClient(baseURL)
	infoClient.Fingerprint = hwid.Static(machineA)
	info, err := infoClient.Info(ctx)
	require.NoError(t, err, "Info should describe a revoked license without rejecting")
	require.Equal(t, licensesdk.StatusRevoked, info.Status)

	// Reinstatement restores the binding untouched.
	require.NoError(t, session.ReinstateLicense(ctx, key))

	res, err = client.VerifyFingerprint(ctx, machineA)
	require.NoError(t, err, "Verification after reinstatement should succeed")
	require.Equal(t, licensesdk.StatusActive, res.Status)
}

// TestActivateUnknownAndInvalidKeys verifies the ordered activation failures.
func TestActivateUnknownAndInvalidKeys(t *testing.T) {
	baseURL, cleanup := setupLicenseContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := licensesdk.NewSDKClient(baseURL)

	// A malformed key is rejected before any lookup.
	_, err := client.ActivateFingerprint(ctx, "not-a-uuid", "e2e-fingerprint")
	assertAPIError(t, err, licensesdk.ErrInvalidRequest, "activation with a malformed key")

	// A well-formed key that was never issued.
	_, err = client.ActivateFingerprint(ctx, "00000000-0000-4000-8000-000000000000", "e2e-fingerprint")
	assertAPIError(t, err, licensesdk.ErrKeyNotFound, "activation with an unknown key")
}

// TestOneLicensePerMachine verifies a machine cannot hold two licenses.
func TestOneLicensePerMachine(t *testing.T) {
	baseURL, cleanup := setupLicenseContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := licensesdk.NewSDKClient(baseURL)
	session := adminLogin(t, client)

	first := issueLicense(t, session, 180)
	second := issueLicense(t, session, 180)

	machine := "e2e-fingerprint-single-seat"

	_, err := client.ActivateFingerprint(ctx, first, machine)
	require.NoError(t, err)

	_, err = client.ActivateFingerprint(ctx, second, machine)
	assertAPIError(t, err, licensesdk.ErrAlreadyBound, "second license on the same machine")

	// The original binding is intact.
	res, err := client.VerifyFingerprint(ctx, machine)
	require.NoError(t, err)
	require.Equal(t, first, res.LicenseKey)
}

// TestEnsureActivatedFlow exercises the SDK startup helper end to end.
func TestEnsureActivatedFlow(t *testing.T) {
	baseURL, cleanup := setupLicenseContainer(t)
	defer cleanup()

	ctx := t.Context()
	adminClient := licensesdk.NewSDKClient(baseURL)
	session := adminLogin(t, adminClient)

	key := issueLicense(t, session, 90)

	client := licensesdk.NewSDKClient(baseURL)
	client.Fingerprint = hwid.Static("e2e-fingerprint-startup")

	prompts := 0
	res, err := client.EnsureActivated(ctx, func(context.Context) (string, error) {
		prompts++
		return key, nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, prompts, "First startup should prompt exactly once")
	require.Equal(t, licensesdk.StatusActive, res.Status)

	// Second startup verifies silently.
	res, err = client.EnsureActivated(ctx, func(context.Context) (string, error) {
		prompts++
		return "", nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, prompts, "Later startups should not prompt")
	require.Equal(t, licensesdk.StatusActive, res.Status)
}
