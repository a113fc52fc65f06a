package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomplan/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagMetricsAddr string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the room editor over SSH",
	Long: `Start an SSH server where every connection gets the room picker and
editor. All sessions share one database; a save that races another
session's save is refused and the editor reloads the room.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses server.host_key from the config, generating it if missing

Examples:
  roomplan serve                           # Listen on :23234
  roomplan serve --ssh :2222               # Listen on port 2222
  roomplan serve --metrics :9090           # Also serve Prometheus /metrics

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Address for Prometheus /metrics (disabled if empty)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if flagSSHAddr != "" {
		cfg.Server.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKey = flagHostKey
	}
	if flagMetricsAddr != "" {
		cfg.Server.MetricsAddress = flagMetricsAddr
	}
	if flagIdleTimeout > 0 {
		cfg.Server.IdleTimeoutMinutes = flagIdleTimeout
	}

	logger := newLogger(cfg)
	store := openStore(cfg)
	defer store.Close()

	idle := cfg.Server.IdleTimeout()
	if idle <= 0 {
		idle = 30 * time.Minute
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:        cfg.Server.Address,
		HostKeyPath:    cfg.Server.HostKey,
		IdleTimeout:    idle,
		MetricsAddress: cfg.Server.MetricsAddress,
		Editor:         cfg.Runtime(),
		StatusTTL:      cfg.Editor.StatusTTL(),
	}, store, logger)
	if err != nil {
		fail(err)
	}

	logger.Info("database", "path", cfg.Storage.DBPath)
	if err := server.ListenAndServe(); err != nil {
		fail(err)
	}
}
