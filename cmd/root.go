package main

import (
    "fmt"
    "log/slog"
    "os"
    "strings"

    "github.com/spf13/cobra"

    "github.com/tinoosan/banque/internal/config"
)

var (
    envFile string
    cfg     *config.Config
    logger  *slog.Logger
)

var rootCmd = &cobra.Command{
    Use:   "banque",
    Short: "Accounts and transactions over GraphQL",
    Long: `banque serves bank accounts (comptes) and their transactions over
GraphQL, with a small REST mirror, health probes and Prometheus metrics.

Example:
  banque serve --addr :8080
  banque migrate
  banque stats`,
    SilenceUsage: true,
    PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
        c, err := config.Load(envFile)
        if err != nil { return err }
        if err := c.Validate(); err != nil { return err }
        cfg = c
        // Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
        logger = buildLogger(cfg.LogLevel, cfg.LogFormat)
        slog.SetDefault(logger)
        return nil
    },
    RunE: func(cmd *cobra.Command, args []string) error {
        return runServe(cmd, args)
    },
}

func init() {
    rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to a .env file (default ./.env when present)")
    rootCmd.AddCommand(serveCmd)
    rootCmd.AddCommand(migrateCmd)
    rootCmd.AddCommand(statsCmd)
}

// parseLogLevel maps config values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "debug":
        return slog.LevelDebug
    case "warn", "warning":
        return slog.LevelWarn
    case "error", "err":
        return slog.LevelError
    default:
        return slog.LevelInfo
    }
}

func buildLogger(level, format string) *slog.Logger {
    opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
    if format == "text" {
        return slog.New(slog.NewTextHandler(os.Stdout, opts))
    }
    // default to JSON
    return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func exitOnError(err error, msg string) error {
    if err == nil { return nil }
    logger.Error(msg, "err", err)
    return fmt.Errorf("%s: %w", msg, err)
}
