// Package cli turns tinynotify-send's command line into a Notification.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/esiqveland/tinynotify"
	"github.com/esiqveland/tinynotify/internal/config"
)

// DefaultAppName is sent as application name when neither the flag nor
// the config file sets one.
const DefaultAppName = "tinynotify-send"

var (
	// ErrExit is returned after --help or --version was handled; the
	// caller should exit successfully.
	ErrExit = errors.New("exit requested")
	// ErrUsage is returned for invalid arguments, already reported.
	ErrUsage = errors.New("invalid arguments")
)

// Flags are the command line switches that do not go into the Notification.
type Flags struct {
	AppName    string
	SystemWide bool
	Local      bool
	Foreground bool
	Verbose    bool
}

// Background reports whether the caller has to wait for events although
// it was not asked to stay in the foreground: actions were bound.
func (f Flags) Background(n *tinynotify.Notification) bool {
	return !f.Foreground && len(n.Actions()) > 0
}

// Parse parses args (without the program name) into a Notification with
// unformatted summary and body. Defaults come from cfg; flags override them.
//
// On --help or --version the output is written to out and ErrExit is
// returned. Invalid arguments are reported to errOut and yield ErrUsage.
func Parse(args []string, version string, cfg *config.Config, out, errOut io.Writer) (*tinynotify.Notification, Flags, error) {
	var (
		flags    Flags
		icon     string
		category string
		urgency  string
		timeout  int
		actions  []string
		help     bool
		showVer  bool
	)

	appName := cfg.AppName
	if appName == "" {
		appName = DefaultAppName
	}

	fs := pflag.NewFlagSet("tinynotify-send", pflag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.SortFlags = false
	fs.StringVarP(&flags.AppName, "app-name", "a", appName, "application name")
	fs.StringVarP(&icon, "icon", "i", cfg.AppIcon, "icon name or path (\"\" for none)")
	fs.StringVarP(&category, "category", "c", cfg.Category, "notification category")
	fs.StringVarP(&urgency, "urgency", "u", cfg.Urgency, "urgency level (low, normal, critical)")
	fs.IntVarP(&timeout, "expire-time", "t", -1, "timeout in milliseconds (-1 server default, 0 never)")
	fs.StringArrayVarP(&actions, "action", "A", nil, "add an action as KEY=LABEL (waits for the notification to close)")
	fs.BoolVarP(&flags.Foreground, "foreground", "f", false, "wait for the notification to be closed")
	fs.BoolVarP(&flags.SystemWide, "system-wide", "s", false, "send the notification to all users")
	fs.BoolVarP(&flags.Local, "local", "l", false, "send the notification to the current session only")
	fs.BoolVarP(&flags.Verbose, "verbose", "v", false, "log bus failures to stderr")
	fs.BoolVarP(&help, "help", "h", false, "show help")
	fs.BoolVarP(&showVer, "version", "V", false, "show version")
	fs.Usage = func() { printUsage(errOut, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, flags, ErrUsage
	}
	if help {
		printUsage(out, fs)
		return nil, flags, ErrExit
	}
	if showVer {
		fmt.Fprintln(out, version)
		return nil, flags, ErrExit
	}

	invalid := func(format string, a ...interface{}) (*tinynotify.Notification, Flags, error) {
		fmt.Fprintf(errOut, "tinynotify-send: "+format+"\n", a...)
		printUsage(errOut, fs)
		return nil, flags, ErrUsage
	}

	if flags.SystemWide && flags.Local {
		return invalid("--system-wide and --local are mutually exclusive")
	}

	positional := fs.Args()
	switch {
	case len(positional) == 0 || positional[0] == "":
		return invalid("summary is required")
	case len(positional) > 2:
		return invalid("unexpected argument: %s", positional[2])
	}

	body := ""
	if len(positional) == 2 {
		body = positional[1]
	}
	n := tinynotify.NewNotification(positional[0], body)
	cfg.Apply(n)

	if fs.Changed("icon") {
		n.SetAppIcon(icon)
	}
	if fs.Changed("category") {
		n.SetCategory(category)
	}
	if urgency != "" {
		u, err := config.ParseUrgency(urgency)
		if err != nil {
			return invalid("%v", err)
		}
		n.SetUrgency(u)
	}
	if fs.Changed("expire-time") {
		n.SetExpireTimeout(time.Duration(timeout) * time.Millisecond)
	}
	for _, a := range actions {
		key, label, ok := strings.Cut(a, "=")
		if !ok || key == "" {
			return invalid("invalid action %q (want KEY=LABEL)", a)
		}
		n.AddAction(key, label, nil)
	}

	return n, flags, nil
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, `Usage: tinynotify-send [options] SUMMARY [BODY]

Send a desktop notification through the session bus.

Options:
%s`, fs.FlagUsages())
}
