package azure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirudhbiyani/cloud-samples/pkg/samples"
)

func TestNewCredentialUnknownMode(t *testing.T) {
	_, err := NewCredential(CredentialOptions{Mode: "ntlm"})
	require.Error(t, err)
	assert.True(t, samples.IsCategory(err, samples.CategoryConfig))

	f := samples.Classify(err)
	assert.Equal(t, samples.OutcomeInvalidConfiguration, f.Outcome)
}

func TestNewCredentialModes(t *testing.T) {
	// Construction does not hit the network; the credential chain is
	// only exercised by GetToken.
	for _, mode := range []string{"", AuthDefault, AuthInteractive, AuthDeviceCode} {
		cred, err := NewCredential(CredentialOptions{Mode: mode, TenantID: "tenant-1"})
		require.NoError(t, err, "mode %q", mode)
		assert.NotNil(t, cred)
	}
}
