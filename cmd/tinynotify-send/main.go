// tinynotify-send sends a desktop notification through the session bus.
//
// Usage:
//
//	tinynotify-send [options] SUMMARY [BODY]
//
// Defaults are read from $XDG_CONFIG_HOME/tinynotify/config.toml and
// ./tinynotify.toml; command line options override them.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/esiqveland/tinynotify"
	"github.com/esiqveland/tinynotify/internal/cli"
	"github.com/esiqveland/tinynotify/internal/config"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		printError(stderr, fmt.Errorf("reading config: %w", err))
		return 1
	}

	n, flags, err := cli.Parse(args, "tinynotify-send "+version, cfg, stdout, stderr)
	switch {
	case errors.Is(err, cli.ErrExit):
		return 0
	case err != nil:
		return 1
	}
	if flags.SystemWide {
		fmt.Fprintln(stderr, "System-wide notification not supported.")
		return 1
	}

	logger := log.New(io.Discard, "", 0)
	if flags.Verbose {
		logger = log.New(stderr, "tinynotify: ", log.LstdFlags)
	}

	opts := append(cfg.SessionOptions(),
		tinynotify.WithAppName(flags.AppName),
		tinynotify.WithLogger(logger))
	s := tinynotify.NewSession(opts...)
	defer s.Close()

	for _, a := range n.Actions() {
		key := a.Key
		n.AddAction(key, a.Label, func(*tinynotify.Notification, string) {
			fmt.Fprintln(stdout, key)
		})
	}

	waiting := flags.Foreground || flags.Background(n)
	closed := false
	if waiting {
		n.OnClosed(func(*tinynotify.Notification, tinynotify.Reason) {
			closed = true
		})
	}

	if err := s.Send(n); err != nil {
		printError(stderr, err)
		return 1
	}

	// wait until the notification is closed
	for waiting && !closed {
		if _, err := s.DispatchEvent(-1); err != nil {
			printError(stderr, err)
			return 1
		}
	}
	return 0
}

// useColor honors NO_COLOR through color.NoColor and only colors terminals.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && !color.NoColor && isatty.IsTerminal(f.Fd())
}

func printError(w io.Writer, err error) {
	prefix := "error:"
	if useColor(w) {
		prefix = color.New(color.FgRed, color.Bold).Sprint(prefix)
	}
	fmt.Fprintf(w, "%s %v\n", prefix, err)
}
