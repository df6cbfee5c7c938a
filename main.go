package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/atomicstack/tmux-tab-rename/internal/config"
	"github.com/atomicstack/tmux-tab-rename/internal/logging"
	"github.com/atomicstack/tmux-tab-rename/internal/logging/events"
)

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

// configError marks failures that happen before any command runs.
type configError struct {
	err error
}

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

func run(args, environ []string, stdout, stderr io.Writer) int {
	root, _ := newRootCmd(args, environ)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		var cfgErr configError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(stderr, "Configuration error: %v\n", cfgErr.err)
			return 2
		}
		logging.Error(err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newRootCmd builds the command tree. The returned pointer is filled in
// before any subcommand runs.
func newRootCmd(argv, environ []string) (*cobra.Command, *config.Config) {
	runtimeCfg := &config.Config{}
	root := &cobra.Command{
		Use:           "tmux-tab-rename",
		Short:         "Rename tmux windows and track status markers by pane id",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	binding := config.Register(root.PersistentFlags(), environ)
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := binding.Config(argv)
		if err != nil {
			return configError{err}
		}
		*runtimeCfg = cfg
		logging.Configure(cfg.Logging.FilePath)
		logging.SetTraceEnabled(cfg.Logging.Trace)
		traceStartup(cmd.CommandPath(), cfg)
		return nil
	}

	root.AddCommand(newServeCmd(runtimeCfg))
	root.AddCommand(newPipeCmd(runtimeCfg))
	root.AddCommand(newRenameCmd(runtimeCfg))
	root.AddCommand(newStatusCmd(runtimeCfg))
	root.AddCommand(newIndexCmd(runtimeCfg))
	root.AddCommand(newWatchCmd(runtimeCfg))
	return root, runtimeCfg
}

func traceStartup(command string, cfg config.Config) {
	payload := startupTracePayload(cfg)
	payload["command"] = command
	events.App.Start(payload)
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
