package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/esiqveland/tinynotify"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFilesLastWins(t *testing.T) {
	dir := t.TempDir()
	user := writeFile(t, dir, "user.toml", `
app_name = "mail"
app_icon = "mail-unread"
urgency = "Low"
expire_timeout = 0
`)
	local := writeFile(t, dir, "local.toml", `
app_icon = "web-browser"
category = "email.arrived"
call_timeout_ms = 250
`)

	cfg, err := LoadFiles(user, filepath.Join(dir, "missing.toml"), local)
	require.NoError(t, err)
	require.Equal(t, "mail", cfg.AppName)
	require.Equal(t, "web-browser", cfg.AppIcon)
	require.Equal(t, "low", cfg.Urgency)
	require.Equal(t, "email.arrived", cfg.Category)
	require.NotNil(t, cfg.ExpireTimeout)
	require.Equal(t, 0, *cfg.ExpireTimeout)
	require.Equal(t, 250*time.Millisecond, cfg.CallTimeout())
}

func TestLoadFilesDefaults(t *testing.T) {
	cfg, err := LoadFiles()
	require.NoError(t, err)
	require.Empty(t, cfg.AppName)
	require.Nil(t, cfg.ExpireTimeout)
	require.Equal(t, tinynotify.CallTimeout, cfg.CallTimeout())
}

func TestLoadFilesErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFiles(writeFile(t, dir, "bad.toml", `app_name = `))
	require.Error(t, err)

	_, err = LoadFiles(writeFile(t, dir, "urgency.toml", `urgency = "loud"`))
	require.Error(t, err)
}

func TestParseUrgency(t *testing.T) {
	tests := []struct {
		input string
		want  tinynotify.Urgency
	}{
		{"low", tinynotify.UrgencyLow},
		{"0", tinynotify.UrgencyLow},
		{"Normal", tinynotify.UrgencyNormal},
		{"critical", tinynotify.UrgencyCritical},
		{"2", tinynotify.UrgencyCritical},
	}
	for _, tt := range tests {
		got, err := ParseUrgency(tt.input)
		require.NoError(t, err, tt.input)
		require.Equal(t, tt.want, got, tt.input)
	}

	_, err := ParseUrgency("3")
	require.Error(t, err)
}

func TestApply(t *testing.T) {
	timeout := 3000
	cfg := &Config{Urgency: "critical", Category: "device", ExpireTimeout: &timeout}

	n := tinynotify.NewNotification("foo", "")
	cfg.Apply(n)

	u, ok := n.Urgency()
	require.True(t, ok)
	require.Equal(t, tinynotify.UrgencyCritical, u)
	require.Equal(t, "device", n.Category())
	require.Equal(t, 3*time.Second, n.ExpireTimeout())

	empty := tinynotify.NewNotification("foo", "")
	(&Config{}).Apply(empty)
	_, ok = empty.Urgency()
	require.False(t, ok)
	require.Equal(t, tinynotify.ExpireTimeoutSetByNotificationServer, empty.ExpireTimeout())
}

func TestPaths(t *testing.T) {
	paths := Paths()
	require.Len(t, paths, 2)
	require.Equal(t, filepath.Join("tinynotify", "config.toml"), filepath.Join(filepath.Base(filepath.Dir(paths[0])), filepath.Base(paths[0])))
	require.Equal(t, "tinynotify.toml", paths[1])
}
