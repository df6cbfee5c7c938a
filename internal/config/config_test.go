package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.PollInterval != DefaultPollInterval {
		t.Fatalf("expected default poll interval, got %s", cfg.App.PollInterval)
	}
	if cfg.App.SocketPath != "" || cfg.App.Session != "" || cfg.Logging.Trace {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
}

func TestEnvironmentFallbacks(t *testing.T) {
	environ := []string{
		"TMUX_TAB_RENAME_SOCKET=/tmp/env.sock",
		"TMUX_TAB_RENAME_SESSION=work",
		"TMUX_TAB_RENAME_POLL_INTERVAL=2s",
		"TMUX_TAB_RENAME_TRACE=1",
		"TMUX_TAB_RENAME_LOG_FILE=/tmp/x.log",
		"malformed",
	}
	cfg, err := LoadArgs(nil, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.SocketPath != "/tmp/env.sock" || cfg.App.Session != "work" {
		t.Fatalf("env not applied: %#v", cfg.App)
	}
	if cfg.App.PollInterval != 2*time.Second || !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/x.log" {
		t.Fatalf("env not applied: %#v", cfg)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	environ := []string{"TMUX_TAB_RENAME_SESSION=env", "TMUX_TAB_RENAME_POLL_INTERVAL=bogus"}
	cfg, err := LoadArgs([]string{"--session", "flag", "--metrics-listen", "127.0.0.1:9090", "extra"}, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Session != "flag" || cfg.App.MetricsListen != "127.0.0.1:9090" {
		t.Fatalf("flags not applied: %#v", cfg.App)
	}
	if cfg.App.PollInterval != DefaultPollInterval {
		t.Fatalf("bad env duration should fall back, got %s", cfg.App.PollInterval)
	}
	if len(cfg.Args) != 1 || cfg.Args[0] != "extra" {
		t.Fatalf("unexpected args: %#v", cfg.Args)
	}
	if cfg.Flags["session"] != "flag" {
		t.Fatalf("flags map not populated: %#v", cfg.Flags)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	if _, err := LoadArgs([]string{"--poll-interval", "0s"}, nil); err == nil || !strings.Contains(err.Error(), "poll-interval") {
		t.Fatalf("expected poll-interval error, got %v", err)
	}
	if _, err := LoadArgs([]string{"--metrics-listen", "nonsense"}, nil); err == nil {
		t.Fatalf("expected metrics-listen error")
	}
	if _, err := LoadArgs([]string{"--unknown"}, nil); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

func TestRegisterOnExternalFlagSet(t *testing.T) {
	fs := pflag.NewFlagSet("root", pflag.ContinueOnError)
	binding := Register(fs, []string{"TMUX_TAB_RENAME_IPC_SOCKET=/run/x.sock"})
	if err := fs.Parse([]string{"--trace"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := binding.Config(fs.Args())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.IPCSocket != "/run/x.sock" || !cfg.Logging.Trace {
		t.Fatalf("unexpected config: %#v", cfg)
	}
}
