package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alzentdigital/website/pkg/config"
)

// Tests in this file share the process environment and the parse cache,
// so none of them run in parallel.

type mailConfig struct {
	Recipient string        `env:"TEST_CFG_RECIPIENT" envDefault:"info@alzentdigital.com"`
	Timeout   time.Duration `env:"TEST_CFG_TIMEOUT" envDefault:"30s"`
	Retries   int           `env:"TEST_CFG_RETRIES" envDefault:"1"`
}

type cachedConfig struct {
	Value string `env:"TEST_CFG_CACHED"`
}

type requiredConfig struct {
	Secret string `env:"TEST_CFG_REQUIRED,required"`
}

type fileConfig struct {
	Origin string   `env:"TEST_CFG_ORIGIN"`
	Langs  []string `env:"TEST_CFG_LANGS" envSeparator:","`
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_CFG_RETRIES", "3")

	var cfg mailConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "info@alzentdigital.com", cfg.Recipient)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retries)
}

func TestLoad_CachesPerType(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_CFG_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_CFG_CACHED", "second")
	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	config.ResetCache()
	var third cachedConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Value)
}

func TestLoad_Errors(t *testing.T) {
	config.ResetCache()
	require.NoError(t, os.Unsetenv("TEST_CFG_REQUIRED"))

	var cfg requiredConfig
	assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad(&cfg) })

	var nilCfg *requiredConfig
	assert.ErrorIs(t, config.Load(nilCfg), config.ErrNilPointer)
}

func TestLoadEnv(t *testing.T) {
	config.ResetCache()
	dir := t.TempDir()
	base := filepath.Join(dir, ".env")
	override := filepath.Join(dir, ".env.local")
	require.NoError(t, os.WriteFile(base, []byte("TEST_CFG_ORIGIN=https://alzentdigital.com\nTEST_CFG_LANGS=en,es\n"), 0o600))
	require.NoError(t, os.WriteFile(override, []byte("TEST_CFG_LANGS=en,es,zh\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("TEST_CFG_ORIGIN")
		_ = os.Unsetenv("TEST_CFG_LANGS")
	})

	require.NoError(t, config.LoadEnv(base, override))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "https://alzentdigital.com", cfg.Origin)
	assert.Equal(t, []string{"en", "es", "zh"}, cfg.Langs)

	assert.ErrorIs(t, config.LoadEnv(filepath.Join(dir, "missing")), config.ErrLoadingEnvFile)
	assert.NoError(t, config.LoadEnv())
}
