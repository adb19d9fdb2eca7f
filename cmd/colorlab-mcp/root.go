package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/colorlab-mcp/internal/config"
	"github.com/ironsheep/colorlab-mcp/internal/logging"
	"github.com/ironsheep/colorlab-mcp/internal/server"
	"github.com/ironsheep/colorlab-mcp/internal/store"
)

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (any format viper reads)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "colorlab-mcp",
	Short: "MCP server and terminal tools for color math",
	Long: `colorlab-mcp serves color conversion, WCAG contrast and gradient tools
over the Model Context Protocol on stdin/stdout.

Configure it in your MCP client (e.g., Claude Desktop). Logs go to stderr.

Environment variables:
  COLORLAB_LOG_LEVEL=debug         Enable debug logging
  COLORLAB_LOG_FORMAT=console      Human-readable logs
  COLORLAB_STORE_PATH=colors.db    Persist history, pins and theme in SQLite`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "colorlab-mcp %s\n", Version)
		fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	// A second signal during shutdown gets default handling
	context.AfterFunc(ctx, stop)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// stdout is for MCP protocol
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	logger.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Msg("starting colorlab-mcp")

	kv, closeKV, err := openKV(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeKV()

	srv := server.New(store.New(kv, logger), cfg, logger, server.WithVersion(Version))
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("server error")
		return err
	}
	return nil
}

// openKV selects the SQLite backend when a store path is configured and the
// in-memory backend otherwise.
func openKV(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.KV, func(), error) {
	if cfg.StorePath == "" {
		logger.Debug().Msg("using in-memory store")
		return store.NewMemoryKV(), func() {}, nil
	}

	db, err := store.OpenSQLite(ctx, cfg.StorePath)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug().Str("path", cfg.StorePath).Msg("using sqlite store")
	return db, func() {
		if err := db.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close store")
		}
	}, nil
}
