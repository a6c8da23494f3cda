package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ecovate/internal/config"
	"github.com/dmitrijs2005/ecovate/internal/logging"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.StoreDSN = filepath.Join(t.TempDir(), "nested", "eco.db")
	c.SessionSecret = "app-test"
	c.AssistantDelay = time.Millisecond
	c.InvestDelay = time.Millisecond
	return c
}

func TestNewApp_UnknownDriver(t *testing.T) {
	c := testConfig(t)
	c.StoreDriver = "oracle"
	_, err := NewApp(context.Background(), c, logging.Discard())
	require.Error(t, err)
}

func TestNewApp_MissingFactorsFile(t *testing.T) {
	c := testConfig(t)
	c.FactorsFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := NewApp(context.Background(), c, logging.Discard())
	require.Error(t, err)
}

func TestApp_RunRestoresSession(t *testing.T) {
	stubTerminal(t, false, nil, nil)
	capturePrints(t)
	c := testConfig(t)
	ctx := context.Background()

	first, err := NewApp(ctx, c, logging.Discard())
	require.NoError(t, err)
	var out bytes.Buffer
	first.out = &out
	first.reader = input("register", "zoe@example.com", "pw", "Zoe", "", "demo", "exit")
	first.Run(ctx)
	assert.Contains(t, out.String(), "Welcome, Zoe!")

	second, err := NewApp(ctx, c, logging.Discard())
	require.NoError(t, err)
	out.Reset()
	second.out = &out
	second.reader = input("exit")
	second.Run(ctx)

	assert.Contains(t, out.String(), "Welcome back, Zoe!")
	assert.Len(t, second.userData.State().CarbonOffsets, 5)
}
