package main

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"--version"}, &stdout, &stderr))
	require.Equal(t, "tinynotify-send dev\n", stdout.String())
}

func TestRunSystemWideUnsupported(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 1, run([]string{"-s", "foo"}, &stdout, &stderr))
	require.Equal(t, "System-wide notification not supported.\n", stderr.String())
}

func TestRunInvalidArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 1, run(nil, &stdout, &stderr))
	require.Contains(t, stderr.String(), "summary is required")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.New("Connecting to D-Bus failed: no bus"))
	require.Equal(t, "error: Connecting to D-Bus failed: no bus\n", buf.String())
}

func TestUseColorHonorsNoColor(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	color.NoColor = true
	require.False(t, useColor(os.Stderr))

	color.NoColor = false
	require.False(t, useColor(&bytes.Buffer{}))
}
