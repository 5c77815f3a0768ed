package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullConfig() *Config {
	return &Config{
		NetSuiteEndpoint: "https://acct.restlets.api.netsuite.com/app/site/hosting/restlet.nl",
		TokenURL:         "https://acct.suitetalk.api.netsuite.com/services/rest/auth/oauth2/v1/token",
		ClientID:         "client-1",
		CertificateID:    "cert-1",
		PrivateKeyPath:   "/etc/sync/key.pem",
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, fullConfig().Validate())

	missing := fullConfig()
	missing.ClientID = ""
	err := missing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NETSUITE_CLIENT_ID")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NETSUITE_ENDPOINT", "https://example.test/restlet")
	cfg := Load()

	assert.Equal(t, "https://example.test/restlet", cfg.NetSuiteEndpoint)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "9091", cfg.MetricsPort)
	assert.NotEmpty(t, cfg.RabbitMQURL)
}
