package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0o644))
	t.Chdir(dir)
	t.Setenv("APP_ENV", "config")
}

func TestNew_LoadsYAML(t *testing.T) {
	writeConfigFile(t, `
env:
  env: test
  serviceName: sliceco
http:
  port: 5000
auth:
  tokenTtl: 30m
stripe:
  secretKey: sk_test_abc
`)

	cfg, err := New()

	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Env.Env)
	assert.Equal(t, 5000, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "sk_test_abc", cfg.Stripe.SecretKey)
}

func TestNew_AppliesDefaults(t *testing.T) {
	writeConfigFile(t, "env:\n  env: test\n")

	cfg, err := New()

	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.HTTP.Port)
	assert.Equal(t, ".data", cfg.Storage.DataDir)
	assert.Equal(t, ".logs", cfg.Storage.LogDir)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, time.Hour, cfg.Maintenance.GCInterval)
	assert.Equal(t, 24*time.Hour, cfg.Maintenance.LogRotationInterval)
}

func TestNew_CartTTLFollowsTokenTTL(t *testing.T) {
	writeConfigFile(t, "auth:\n  tokenTtl: 2h\n")

	cfg, err := New()

	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.Cart.TTL)
}

func TestNew_EnvOverlay(t *testing.T) {
	writeConfigFile(t, "stripe:\n  secretKey: from_file\n")
	t.Setenv("STRIPE_SECRETKEY", "from_env")

	cfg, err := New()

	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.Stripe.SecretKey)
}

func TestNew_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "config")

	_, err := New()

	assert.Error(t, err)
}
