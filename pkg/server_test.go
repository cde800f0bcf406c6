package pkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerNeedsBinary(t *testing.T) {
	_, err := NewServer(ServerConfig{})
	assert.Error(t, err)
}

func TestNewServerDefaults(t *testing.T) {
	s, err := NewServer(ServerConfig{Binary: "/usr/local/bin/savanna"})
	require.NoError(t, err)
	assert.Equal(t, SshPort, s.Addr)
	assert.Equal(t, ServerIdleTimeout, s.IdleTimeout)
	assert.NotNil(t, s.Handler)
}

func TestNewServerMissingHostKey(t *testing.T) {
	_, err := NewServer(ServerConfig{Binary: "savanna", HostKeyFile: "/nonexistent/host_key"})
	assert.Error(t, err)
}

func TestNewHostKey(t *testing.T) {
	signer, err := NewHostKey()
	require.NoError(t, err)
	assert.Equal(t, "ssh-ed25519", signer.PublicKey().Type())
}

func TestSessionName(t *testing.T) {
	name := SessionName("alice")
	assert.True(t, strings.HasPrefix(name, "alice@"))
	assert.Len(t, strings.Split(strings.TrimPrefix(name, "alice@"), "-"), 2)
}
