package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.APIBaseURL)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, "fmsdesk.db", c.SessionDBPath)
	assert.Equal(t, "downloads", c.DownloadDir)
	assert.False(t, c.Verbose)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url":    "https://json.example",
		"request_timeout": "5s",
		"download_dir":    "from-json",
	})

	t.Setenv("FMS_API_BASE_URL", "https://env.example")
	t.Setenv("FMS_LOG_FILE", "env.log")
	t.Setenv("FMS_DOWNLOAD_DIR", "from-env")

	os.Args = []string{"fmsdesk", "-config", path, "-d", "from-flag"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	want := defaults()
	want.APIBaseURL = "https://json.example"
	want.RequestTimeout = 5 * time.Second
	want.LogFilePath = "env.log"
	want.DownloadDir = "from-flag"

	if diff := cmp.Diff(&want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}
