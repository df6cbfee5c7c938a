package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/atomicstack/tmux-tab-rename/internal/app"
	"github.com/atomicstack/tmux-tab-rename/internal/command"
	"github.com/atomicstack/tmux-tab-rename/internal/config"
	"github.com/atomicstack/tmux-tab-rename/internal/format/table"
	"github.com/atomicstack/tmux-tab-rename/internal/status"
	"github.com/atomicstack/tmux-tab-rename/internal/tmux"
)

var (
	serveApp    = app.Serve
	pipeApp     = app.Pipe
	snapshotApp = app.Snapshot
	watchApp    = app.Watch
	currentPane = tmux.CurrentPaneID
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Index the session's panes and answer tab-rename and tab-status requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serveApp(ctx, cfg.App)
		},
	}
}

func newPipeCmd(cfg *config.Config) *cobra.Command {
	var (
		name    string
		payload string
	)
	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Send a raw named request to the serving process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var body *string
			if cmd.Flags().Changed("payload") {
				body = &payload
			}
			return send(cmd, cfg, name, body)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "request name (tab-rename or tab-status)")
	cmd.Flags().StringVar(&payload, "payload", "", "request payload; omitted when not set")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newRenameCmd(cfg *config.Config) *cobra.Command {
	var paneID string
	cmd := &cobra.Command{
		Use:   "rename NAME",
		Short: "Rename the tab containing a pane",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePaneID(paneID)
			if err != nil {
				return err
			}
			return sendJSON(cmd, cfg, command.NameRename, command.RenamePayload{PaneID: id, Name: args[0]})
		},
	}
	cmd.Flags().StringVar(&paneID, "pane-id", "", "pane id (defaults to $TMUX_PANE)")
	return cmd
}

func newStatusCmd(cfg *config.Config) *cobra.Command {
	var paneID string
	cmd := &cobra.Command{
		Use:   "status set EMOJI | clear | get | name",
		Short: "Set, clear or query the status marker of a pane's tab",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := statusRequest(args)
			if err != nil {
				return err
			}
			id, err := resolvePaneID(paneID)
			if err != nil {
				return err
			}
			req.PaneID = id
			return sendJSON(cmd, cfg, command.NameStatus, req)
		},
	}
	cmd.Flags().StringVar(&paneID, "pane-id", "", "pane id (defaults to $TMUX_PANE)")
	return cmd
}

func statusRequest(args []string) (command.StatusPayload, error) {
	verb := args[0]
	if verb == "set" {
		if len(args) != 2 {
			return command.StatusPayload{}, fmt.Errorf("status set requires exactly one EMOJI argument")
		}
		if !status.Valid(args[1]) {
			return command.StatusPayload{}, fmt.Errorf("status marker %q must be a single character", args[1])
		}
		return command.StatusPayload{Action: command.ActionSetStatus, Emoji: args[1]}, nil
	}
	if len(args) != 1 {
		return command.StatusPayload{}, fmt.Errorf("status %s takes no arguments", verb)
	}
	switch verb {
	case "clear":
		return command.StatusPayload{Action: command.ActionClearStatus}, nil
	case "get":
		return command.StatusPayload{Action: command.ActionGetStatus}, nil
	case "name":
		return command.StatusPayload{Action: command.ActionGetName}, nil
	default:
		return command.StatusPayload{}, fmt.Errorf("unknown status verb %q (expected set, clear, get or name)", verb)
	}
}

func resolvePaneID(flagValue string) (string, error) {
	raw := flagValue
	if raw == "" {
		raw = currentPane()
	}
	id := tmux.ParsePaneID(raw)
	if id == "" {
		return "", fmt.Errorf("no pane id: pass --pane-id or run inside tmux")
	}
	if _, err := command.ParsePaneID(id); err != nil {
		return "", err
	}
	return id, nil
}

func sendJSON(cmd *cobra.Command, cfg *config.Config, name string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	body := string(data)
	return send(cmd, cfg, name, &body)
}

func send(cmd *cobra.Command, cfg *config.Config, name string, payload *string) error {
	lines, err := pipeApp(cmd.Context(), cfg.App, name, payload)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func newIndexCmd(cfg *config.Config) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Print the pane to tab index of the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := snapshotApp(cfg.App)
			if err != nil {
				return err
			}
			return writeIndex(cmd.OutOrStdout(), output, rows)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	return cmd
}

func writeIndex(w io.Writer, format string, rows []app.IndexRow) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if rows == nil {
			rows = []app.IndexRow{}
		}
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		cells := make([][]string, 0, len(rows)+1)
		cells = append(cells, []string{"PANE", "TAB", "WINDOW", "STATUS", "NAME"})
		for _, row := range rows {
			marker, base := status.Decode(row.TabName)
			cells = append(cells, []string{
				"%" + strconv.FormatUint(uint64(row.PaneID), 10),
				strconv.Itoa(row.TabID),
				strconv.Itoa(row.WindowIndex),
				marker,
				base,
			})
		}
		for _, line := range table.Format(cells, []table.Alignment{table.AlignRight, table.AlignRight, table.AlignRight, table.AlignLeft, table.AlignLeft}) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected table, json or yaml)", format)
	}
}

func newWatchCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Browse the live pane index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchApp(cfg.App)
		},
	}
}
