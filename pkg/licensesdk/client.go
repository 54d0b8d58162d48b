package licensesdk

import (
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/keyward/pkg/hwid"
)

// SDKClient is a client for the keyward license service. It provides the
// machine-facing operations (activate, verify, info) and can create
// authenticated AdminSessions for operator tooling.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Fingerprint resolves this machine's fingerprint. Defaults to the real
	// hardware fingerprint; override in tests or when acting on behalf of
	// another machine is explicitly intended.
	Fingerprint hwid.Provider
}

// NewSDKClient creates a new license service client bound to this machine's
// hardware fingerprint.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Fingerprint: hwid.Fingerprint,
	}
}

func (c *SDKClient) fingerprint() (string, error) {
	if c.Fingerprint == nil {
		return hwid.Fingerprint()
	}
	return c.Fingerprint()
}
