package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:      EnvDevelopment,
		Timezone: "UTC",
		Docstore: DocstoreConfig{Driver: DocstoreMemory},
		Session:  SessionConfig{Driver: SessionMemory, Secret: devSessionSecret, TTL: time.Hour},
		Blob:     BlobConfig{SignedURLSecret: devBlobSecret},
	}
}

func TestValidateDevelopmentAllowsDefaults(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateProductionRejectsDevSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.Env = EnvProduction
	cfg.Docstore.Driver = DocstorePostgres

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")

	cfg.Session.Secret = "a-real-secret"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BLOB_SIGNED_URL_SECRET")

	cfg.Blob.SignedURLSecret = "another-real-secret"
	require.NoError(t, cfg.Validate())
}

func TestValidateProductionRejectsMemoryStore(t *testing.T) {
	cfg := validConfig()
	cfg.Env = EnvProduction
	cfg.Session.Secret = "s"
	cfg.Blob.SignedURLSecret = "b"

	require.Error(t, cfg.Validate())
}

func TestValidateUnknownDrivers(t *testing.T) {
	cfg := validConfig()
	cfg.Docstore.Driver = "mongo"
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Session.Driver = "memcached"
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Docstore.Driver = DocstoreFirestore
	require.Error(t, cfg.Validate())
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("nope", time.Minute))
	assert.Equal(t, 2*time.Hour, parseDuration("2h", time.Minute))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a, ,b "))
}
