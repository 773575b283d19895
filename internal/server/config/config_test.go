package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Empty(t, c.EndpointAddrGRPC)
	assert.Empty(t, c.DatabaseDSN)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, 50, c.FavouritesLimit)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, 5*time.Second, c.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, c.HealthCheckInterval)
	assert.False(t, c.UseMemoryStore)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "missing dsn", cfg: Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour}, wantErr: ErrMissingDatabaseDSN},
		{name: "memory store needs no dsn", cfg: Config{SecretKey: "k", UseMemoryStore: true, AccessTokenValidityDuration: time.Hour}},
		{name: "missing secret", cfg: Config{DatabaseDSN: "postgres://x"}, wantErr: ErrMissingSecretKey},
		{name: "ok", cfg: Config{DatabaseDSN: "postgres://x", SecretKey: "k", AccessTokenValidityDuration: time.Hour}},
		{name: "zero ttl", cfg: Config{DatabaseDSN: "postgres://x", SecretKey: "k"}, wantErr: ErrInvalidValue},
		{name: "negative ttl", cfg: Config{DatabaseDSN: "postgres://x", SecretKey: "k", AccessTokenValidityDuration: -time.Minute}, wantErr: ErrInvalidValue},
		{name: "bcrypt cost too high", cfg: Config{DatabaseDSN: "postgres://x", SecretKey: "k", AccessTokenValidityDuration: time.Hour, BcryptCost: 32}, wantErr: ErrInvalidValue},
		{name: "bcrypt cost too low", cfg: Config{DatabaseDSN: "postgres://x", SecretKey: "k", AccessTokenValidityDuration: time.Hour, BcryptCost: 3}, wantErr: ErrInvalidValue},
		{name: "max bcrypt cost", cfg: Config{DatabaseDSN: "postgres://x", SecretKey: "k", AccessTokenValidityDuration: time.Hour, BcryptCost: 31}},
		{name: "negative favourites limit", cfg: Config{DatabaseDSN: "postgres://x", SecretKey: "k", AccessTokenValidityDuration: time.Hour, FavouritesLimit: -1}, wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfig_LayersApplyInOrder(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempFile(t, "cfg.json", `{"database_dsn": "postgres://from-file", "bcrypt_cost": 12}`)

	t.Setenv("DATABASE_URL", "postgres://from-env")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("PORT", "3000")

	os.Args = []string{"server", "-c", path, "-s", "flag-secret"}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://from-file", cfg.DatabaseDSN)
	assert.Equal(t, "flag-secret", cfg.SecretKey)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, time.Hour, cfg.AccessTokenValidityDuration)
}
