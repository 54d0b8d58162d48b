// Package hwid produces the stable machine fingerprint a license gets bound
// to. It is deliberately tiny: the engine treats the fingerprint as an opaque
// string and everything here is injectable so tests never depend on the host
// they run on.
package hwid

import (
	"errors"
	"strings"

	"github.com/denisbrodbeck/machineid"
)

// appID keys the HMAC so the raw OS machine ID never leaves the host and the
// fingerprint cannot be correlated with other applications using the same
// library. Changing it invalidates every existing activation.
const appID = "keyward"

var ErrUnavailable = errors.New("hwid: machine id unavailable")

// Provider returns the current machine's fingerprint. The engine and SDK
// accept a Provider rather than calling the package function directly, so
// tests can substitute deterministic values.
type Provider func() (string, error)

// Fingerprint returns the app-scoped hardware fingerprint for this machine.
// Best-effort stable across reboots; containers without a machine-id file
// will fail rather than fabricate one.
func Fingerprint() (string, error) {
	id, err := machineid.ProtectedID(appID)
	if err != nil {
		return "", ErrUnavailable
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrUnavailable
	}
	return id, nil
}

// Static returns a Provider that always yields fp. For tests.
func Static(fp string) Provider {
	return func() (string, error) { return fp, nil }
}

// Failing returns a Provider that always fails. For tests.
func Failing() Provider {
	return func() (string, error) { return "", ErrUnavailable }
}

// Mask shortens a fingerprint for logging. Fingerprints identify customer
// hardware, so logs carry only a prefix.
func Mask(fp string) string {
	if len(fp) <= 8 {
		return fp
	}
	return fp[:8] + "..."
}
