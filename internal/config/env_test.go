package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_parseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv("ECOVATE_STORE_DRIVER", "postgres")
	t.Setenv("ECOVATE_SESSION_TTL", "1h")
	t.Setenv("ECOVATE_LOGIN_ATTEMPTS_PER_MINUTE", "9")
	t.Setenv("ECOVATE_S3_BUCKET", "b")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 9, cfg.LoginAttemptsPerMinute)
	assert.Equal(t, "b", cfg.S3Bucket)
	assert.Equal(t, "ecovate.db", cfg.StoreDSN)
}

func Test_parseEnv_BadIntKeepsDefault(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv("ECOVATE_LOGIN_ATTEMPTS_PER_MINUTE", "many")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	assert.Equal(t, 5, cfg.LoginAttemptsPerMinute)
}

func Test_parseEnv_BadDurationPanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv("ECOVATE_INVEST_DELAY", "soon")
	require.Panics(t, func() { parseEnv(&Config{}) })
}

func Test_parseEnv_DotenvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeEnvFile(t, "ECOVATE_FACTORS_FILE=/etc/eco/factors.yaml\nECOVATE_S3_REGION=eu-central-1\n")
	// register the keys with t.Setenv so they are restored after the test
	t.Setenv("ECOVATE_FACTORS_FILE", "")
	t.Setenv("ECOVATE_S3_REGION", "ap-south-1")
	require.NoError(t, os.Unsetenv("ECOVATE_FACTORS_FILE"))

	os.Args = []string{"testbin", "-env", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "/etc/eco/factors.yaml", cfg.FactorsFile)
	// the process environment wins over the file
	assert.Equal(t, "ap-south-1", cfg.S3Region)
}

func Test_parseEnv_MissingExplicitFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "missing.env")}

	require.Panics(t, func() { parseEnv(&Config{}) })
}
