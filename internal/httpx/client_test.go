package httpx

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientWithoutProxy(t *testing.T) {
	client, err := NewClient(Options{Timeout: 5 * time.Second, UserAgent: "test-agent"})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, client.Timeout)
	assert.NotNil(t, client.Transport)
}

func TestNewClientRejectsProxyWithoutCert(t *testing.T) {
	_, err := NewClient(Options{ProxyURL: "http://localhost:8080"})
	require.Error(t, err)
}

func TestNewClientRejectsCertWithoutProxy(t *testing.T) {
	_, err := NewClient(Options{CertPath: "/tmp/root.der"})
	require.Error(t, err)
}

func TestNewClientRejectsMissingCertFile(t *testing.T) {
	_, err := NewClient(Options{
		ProxyURL: "http://localhost:8080",
		CertPath: filepath.Join(t.TempDir(), "absent.der"),
	})
	require.Error(t, err)
}

func TestNewClientRejectsUndecodableCert(t *testing.T) {
	certPath := filepath.Join(t.TempDir(), "garbage.der")
	require.NoError(t, os.WriteFile(certPath, []byte("not DER"), 0o600))
	_, err := NewClient(Options{ProxyURL: "http://localhost:8080", CertPath: certPath})
	require.Error(t, err)
}
