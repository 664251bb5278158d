package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadFromFilesPrecedence(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{"app_port":"9000","chef_name":"Json Chef","menu_seed":true,"rate_limit_per_minute":50}`)
	envPath := writeFile(t, dir, ".env", "# comment\nCHEF_NAME=\"Dotenv Chef\"\nTELEGRAM_TOKEN=abc\n")

	require.NoError(t, loadFromFiles(jsonPath, envPath))
	t.Cleanup(func() { _ = loadFromFiles(filepath.Join(dir, "none.json"), filepath.Join(dir, "none.env")) })

	assert.Equal(t, "9000", get("APP_PORT", defaultAppPort))
	assert.Equal(t, "Dotenv Chef", get("CHEF_NAME", defaultChefName), ".env overrides app.json")
	assert.Equal(t, "abc", get("TELEGRAM_TOKEN", ""))
	assert.Equal(t, "true", get("MENU_SEED", "false"))
	assert.Equal(t, "50", get("RATE_LIMIT_PER_MINUTE", defaultRateLimit))
}

func TestProcessEnvWins(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "APP_PORT=7000\n")
	require.NoError(t, loadFromFiles(filepath.Join(dir, "missing.json"), envPath))
	t.Cleanup(func() { _ = loadFromFiles(filepath.Join(dir, "none.json"), filepath.Join(dir, "none.env")) })

	t.Setenv("APP_PORT", "7100")
	assert.Equal(t, "7100", get("APP_PORT", defaultAppPort))
}

func TestMissingFilesUseDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, loadFromFiles(filepath.Join(dir, "nope.json"), filepath.Join(dir, "nope.env")))

	assert.Equal(t, defaultAppEnv, get("APP_ENV", ""))
	assert.Equal(t, defaultChefName, get("CHEF_NAME", ""))
	assert.Equal(t, "", get("GRPC_PORT", ""))
}

func TestMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{"app_port":`)
	err := loadFromFiles(jsonPath, filepath.Join(dir, "nope.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestBoolAndInt(t *testing.T) {
	t.Setenv("MENU_SEED", "yes")
	t.Setenv("BOT_WORKERS", "not-a-number")

	assert.True(t, Bool("MENU_SEED", false))
	assert.Equal(t, 9, Int("BOT_WORKERS", 9))
	assert.False(t, Bool("SOMETHING_UNSET_FOR_TEST", false))
}

func TestDuration(t *testing.T) {
	t.Setenv("MENU_CARD_EVERY", "15m")
	assert.Equal(t, 15*time.Minute, MenuCardEvery())

	t.Setenv("MENU_CARD_EVERY", "-1s")
	assert.Zero(t, MenuCardEvery())

	t.Setenv("MENU_CARD_EVERY", "hourly")
	assert.Zero(t, MenuCardEvery())
}
