package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	configFlags := []string{"-c", "-config"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{"separate value", []string{"-c", "eco.json", "-d", "eco.db"}, configFlags, []string{"-c", "eco.json"}},
		{"equals form", []string{"-config=eco.json", "-l", "debug"}, configFlags, []string{"-config=eco.json"}},
		{"order preserved", []string{"-config=a.json", "-c", "b.json", "-s", "postgres"}, configFlags, []string{"-config=a.json", "-c", "b.json"}},
		{"nothing allowed present", []string{"-s", "sqlite", "-f=factors.yaml", "extra"}, configFlags, []string{}},
		{"trailing flag without value", []string{"-c"}, configFlags, []string{"-c"}},
		{"dash token is not a value", []string{"-c", "-d"}, configFlags, []string{"-c"}},
		{"equals token after flag", []string{"-c", "-config=b.json"}, configFlags, []string{"-c", "-config=b.json"}},
		{"several allowed flags", []string{"-d", "eco.db", "-env", ".env.local", "-l", "warn"}, []string{"-d", "-l"}, []string{"-d", "eco.db", "-l", "warn"}},
		{"empty", []string{}, configFlags, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", JsonConfigFlags())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", JsonConfigFlags())
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1", "-y", "2"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", JsonConfigFlags())
	})
}

func TestEnvFileFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-c", "cfg.json", "-env", "prod.env"}
	assert.Equal(t, "prod.env", EnvFileFlags())
	assert.Equal(t, "cfg.json", JsonConfigFlags())

	os.Args = []string{"testbin", "-env=local.env"}
	assert.Equal(t, "local.env", EnvFileFlags())

	os.Args = []string{"testbin", "-d", "ecovate.db"}
	assert.Empty(t, EnvFileFlags())
}
