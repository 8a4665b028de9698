package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), again)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
max_limit = 32
enable_filter = true

[index]
default_limit = 5
vocabulary = ["words_dictionary.json", "extra.txt"]

[http]
addr = "127.0.0.1:9000"
read_timeout_ms = 250
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Server.MaxLimit)
	assert.True(t, cfg.Server.EnableFilter)
	assert.Equal(t, 60, cfg.Server.MaxPrefix)
	assert.Equal(t, 5, cfg.Index.DefaultLimit)
	assert.Equal(t, []string{"words_dictionary.json", "extra.txt"}, cfg.Index.Vocabulary)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.HTTP.ReadTimeout())
	assert.Equal(t, 10*time.Second, cfg.HTTP.WriteTimeout())
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	// max_prefix has the wrong type, so a strict decode fails.
	content := `
[server]
max_limit = 20
max_prefix = "forty"

[index]
default_score = 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Server.MaxLimit)
	assert.Equal(t, 60, cfg.Server.MaxPrefix)
	assert.Equal(t, 2.0, cfg.Index.DefaultScore)
}

func TestLoadConfigGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is [not toml"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestNormalizedFixesBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.MaxLimit = 0
	cfg.Server.MinPrefix = 5
	cfg.Server.MaxPrefix = 2
	cfg.Index.DefaultLimit = 500
	cfg.Index.DefaultScore = -1
	cfg.normalized()

	assert.Equal(t, 64, cfg.Server.MaxLimit)
	assert.Equal(t, 60, cfg.Server.MaxPrefix)
	assert.Equal(t, 64, cfg.Index.DefaultLimit)
	assert.Equal(t, 1.0, cfg.Index.DefaultScore)
}

func TestUpdateSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := InitConfig(path)
	require.NoError(t, err)

	limit, filter := 12, true
	require.NoError(t, cfg.Update(path, &limit, nil, nil, &filter))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 12, loaded.Server.MaxLimit)
	assert.True(t, loaded.Server.EnableFilter)
	assert.Equal(t, 10, loaded.Index.DefaultLimit)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cli]\ndefault_limit = 3\n"), 0o644))

	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 3, cfg.CLI.DefaultLimit)
}
