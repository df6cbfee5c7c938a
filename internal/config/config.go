package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/atomicstack/tmux-tab-rename/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envSocketPath    = "TMUX_TAB_RENAME_SOCKET"
	envSession       = "TMUX_TAB_RENAME_SESSION"
	envIPCSocket     = "TMUX_TAB_RENAME_IPC_SOCKET"
	envPollInterval  = "TMUX_TAB_RENAME_POLL_INTERVAL"
	envMetricsListen = "TMUX_TAB_RENAME_METRICS_LISTEN"
	envTrace         = "TMUX_TAB_RENAME_TRACE"
	envLogFile       = "TMUX_TAB_RENAME_LOG_FILE"
)

const DefaultPollInterval = 500 * time.Millisecond

// Binding holds flag values registered on a flag set.
type Binding struct {
	socket        *string
	session       *string
	ipcSocket     *string
	pollInterval  *time.Duration
	metricsListen *string
	trace         *bool
	logFile       *string
}

// Register defines the shared flags on fs, defaulting each from environ.
func Register(fs *pflag.FlagSet, environ []string) *Binding {
	env := parseEnv(environ)
	return &Binding{
		socket:        fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)"),
		session:       fs.String("session", envOrDefault(env, envSession, ""), "tmux session to serve (defaults to the session of $TMUX_PANE)"),
		ipcSocket:     fs.String("ipc-socket", envOrDefault(env, envIPCSocket, ""), "path to the command socket (defaults to a per-session path)"),
		pollInterval:  fs.Duration("poll-interval", envOrDuration(env, envPollInterval, DefaultPollInterval), "interval between tmux snapshots"),
		metricsListen: fs.String("metrics-listen", envOrDefault(env, envMetricsListen, ""), "address to expose /metrics on (empty disables)"),
		trace:         fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		logFile:       fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file (- for stderr)"),
	}
}

// Config builds and validates the configuration from the parsed flags.
func (b *Binding) Config(args []string) (Config, error) {
	cfg := Config{
		App: app.Config{
			SocketPath:    *b.socket,
			Session:       *b.session,
			IPCSocket:     *b.ipcSocket,
			PollInterval:  *b.pollInterval,
			MetricsListen: *b.metricsListen,
		},
		Logging: Logging{
			FilePath: *b.logFile,
			Trace:    *b.trace,
		},
		Flags: map[string]string{
			"socket":        *b.socket,
			"session":       *b.session,
			"ipcSocket":     *b.ipcSocket,
			"pollInterval":  b.pollInterval.String(),
			"metricsListen": *b.metricsListen,
			"trace":         strconv.FormatBool(*b.trace),
			"logFile":       *b.logFile,
		},
		Args: append([]string(nil), args...),
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("tmux-tab-rename", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	binding := Register(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return binding.Config(fs.Args())
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.PollInterval <= 0 {
		return fmt.Errorf("poll-interval must be > 0 (got %s)", cfg.App.PollInterval)
	}
	if addr := cfg.App.MetricsListen; addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("metrics-listen %q: %w", addr, err)
		}
	}
	return nil
}
