package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvAPIToken, "")
	t.Setenv(EnvPageSize, "")
	t.Setenv(EnvLogLevel, "")
	t.Chdir(dir)
	return dir
}

func writeConfig(t *testing.T, dir, body string, perm os.FileMode) {
	t.Helper()
	cfgDir := filepath.Join(dir, ".coursedesk")
	require.NoError(t, os.MkdirAll(cfgDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config"), []byte(body), perm))
	require.NoError(t, os.Chmod(filepath.Join(cfgDir, "config"), perm))
}

func TestSaveConfigCreatesDirectories(t *testing.T) {
	isolate(t)

	cfg := Config{Token: "test-token"}
	require.NoError(t, cfg.Save())

	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadConfigNonExistent(t *testing.T) {
	isolate(t)

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestSaveLoadRoundtripWithAllFields(t *testing.T) {
	isolate(t)

	original := Config{
		BaseURL:  "https://courses.example.edu",
		Token:    "tok_verylongtokenstring12345",
		Username: "registrar",
		PageSize: 25,
		LogLevel: "debug",
		LogFile:  "/tmp/coursedesk.log",
		Timeout:  45 * time.Second,
	}
	require.NoError(t, original.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "token: abc\nbase_url: http://api.local/\n", 0600)

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://api.local", loaded.BaseURL)
	assert.Equal(t, DefaultPageSize, loaded.PageSize)
	assert.Equal(t, 30*time.Second, loaded.Timeout)
	assert.Equal(t, filepath.Join(dir, ".coursedesk", "coursedesk.log"), loaded.LogPath())
}

func TestLoadConfigEmptyFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "", 0600)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "invalid: yaml: content:", 0600)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestConfigPermissionsStrictlyEnforced(t *testing.T) {
	isolate(t)

	cfg := Config{Token: "secret"}
	require.NoError(t, cfg.Save())
	require.NoError(t, os.Chmod(Path(), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permissions")

	_, err = Resolve()
	require.Error(t, err, "an insecure file is never skipped")
}

func TestSaveTightensExistingFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "token: old\n", 0644)

	cfg := Config{Token: "new"}
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "new", loaded.Token)
}

func TestResolveFromEnvOnly(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIToken, "env-token")
	t.Setenv(EnvPageSize, "50")

	cfg, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestResolveEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "token: file-token\nbase_url: http://file\nlog_level: info\n", 0600)
	t.Setenv(EnvAPIURL, "http://env:9000")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, "http://env:9000", cfg.BaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestResolveReadsDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.Unsetenv(EnvAPIToken))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvAPIToken+"=dotenv-token\n"), 0600))

	cfg, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, "dotenv-token", cfg.Token)
}

func TestResolveWithoutTokenFails(t *testing.T) {
	isolate(t)

	_, err := Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvAPIToken)
}

func TestApplyEnvRejectsBadPageSize(t *testing.T) {
	isolate(t)
	t.Setenv(EnvPageSize, "zero")

	cfg := &Config{}
	err := cfg.ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPageSize)
}

func TestPathReturnsCorrectLocation(t *testing.T) {
	path := Path()
	assert.Contains(t, path, ".coursedesk")
	assert.Contains(t, path, "config")
}

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Empty(t, cfg.Token)
}

func TestLoadOrDefaultKeepsTokenlessFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "base_url: http://api.local\n", 0600)

	cfg, err := LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, "http://api.local", cfg.BaseURL)
}

func TestLoadParsesTimeout(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "token: abc\ntimeout: 5s\n", 0600)

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, loaded.Timeout)
}
