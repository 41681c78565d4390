package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseViewport(t *testing.T) {
	v, err := ParseViewport("1920x1080")
	require.NoError(t, err)
	assert.Equal(t, Viewport{Width: 1920, Height: 1080}, v)
	assert.Equal(t, "1920x1080", v.String())

	for _, bad := range []string{"", "1920", "x1080", "0x10", "axb"} {
		_, err := ParseViewport(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DriverPlaywright, cfg.Driver)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, Viewport{Width: 1920, Height: 1080}, cfg.Viewport)
	assert.Equal(t, 1, cfg.Workers)
}

func TestLoadEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BANK_E2E_BASE_URL", "http://localhost:8000/#")
	t.Setenv("BANK_E2E_HEADLESS", "false")
	t.Setenv("BANK_E2E_SLOW_MO", "250ms")
	t.Setenv("BANK_E2E_DRIVER", "Selenium")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/#/", cfg.BaseURL)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 250*time.Millisecond, cfg.SlowMo)
	assert.Equal(t, DriverSelenium, cfg.Driver)
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BANK_E2E_WORKERS", "2")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--workers=4", "--viewport=1280x720"}))

	cfg, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, Viewport{Width: 1280, Height: 720}, cfg.Viewport)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BANK_E2E_DRIVER", "lynx")

	_, err := Load(nil)
	assert.Error(t, err)
}
