package main

import (
    "context"
    "fmt"
    "log/slog"
    "net/http"
    "os/signal"
    "syscall"
    "time"

    "github.com/spf13/cobra"

    "github.com/tinoosan/banque/internal/graph"
    "github.com/tinoosan/banque/internal/httpapi"
    "github.com/tinoosan/banque/internal/ledger"
    "github.com/tinoosan/banque/internal/service/compte"
    "github.com/tinoosan/banque/internal/service/transaction"
)

var addr string

var serveCmd = &cobra.Command{
    Use:   "serve",
    Short: "Run the HTTP server (default command)",
    RunE:  runServe,
}

func init() {
    serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
    ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    st, err := openStore(ctx, cfg)
    if err != nil { return exitOnError(err, "failed to open store") }
    defer st.Close()
    if m, ok := st.(migrator); ok {
        if err := m.Migrate(ctx); err != nil { return exitOnError(err, "failed to migrate") }
    }
    logger.Info("storage backend: " + cfg.Storage, "currency", cfg.Currency)

    cs, ts := newServices(st)
    if cfg.DevSeed {
        if err := devSeed(ctx, logger, cs, ts); err != nil {
            logger.Error("dev seed failed", "err", err)
        }
    }
    schema, err := graph.New(cs, ts, logger)
    if err != nil { return exitOnError(err, "failed to build schema") }

    listen := cfg.HTTPAddr
    if addr != "" { listen = addr }
    srv := &http.Server{
        Addr:              listen,
        Handler:           httpapi.New(cs, ts, schema, st, logger).Handler(),
        ReadTimeout:       5 * time.Second,
        ReadHeaderTimeout: 5 * time.Second,
        WriteTimeout:      10 * time.Second,
        IdleTimeout:       60 * time.Second,
    }

    errCh := make(chan error, 1)
    go func() {
        logger.Info("banque service listening", "addr", srv.Addr)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            errCh <- err
        }
    }()

    select {
    case <-ctx.Done():
        ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        if err := srv.Shutdown(ctxShutdown); err != nil {
            logger.Error("server shutdown error", "err", err)
        }
    case err := <-errCh:
        return exitOnError(err, "server error")
    }
    return nil
}

// devSeed inserts two accounts and a few transactions for local use.
func devSeed(ctx context.Context, l *slog.Logger, cs compte.Service, ts transaction.Service) error {
    courant, err := cs.Save(ctx, compte.Request{Solde: 1500, Type: ledger.CompteCourant})
    if err != nil { return err }
    epargne, err := cs.Save(ctx, compte.Request{Solde: 10000, Type: ledger.CompteEpargne})
    if err != nil { return err }
    today := ledger.FormatDate(time.Now())
    for _, req := range []transaction.Request{
        {CompteID: courant.ID, Montant: 250, Date: today, Type: ledger.Depot},
        {CompteID: courant.ID, Montant: 75.5, Date: today, Type: ledger.Retrait},
        {CompteID: epargne.ID, Montant: 1000, Date: today, Type: ledger.Depot},
    } {
        if _, err := ts.Add(ctx, req); err != nil { return err }
    }
    l.Info("DEV seed ("+cfg.Storage+")", "courant_id", courant.ID, "epargne_id", epargne.ID)
    printDevSeedBanner(courant.ID, epargne.ID)
    return nil
}

// printDevSeedBanner prints a simple banner to stdout for easy copy/paste of IDs
func printDevSeedBanner(courantID, epargneID int64) {
    fmt.Println("==================== DEV SEED ====================")
    fmt.Printf("compte_courant_id: %d\n", courantID)
    fmt.Printf("compte_epargne_id: %d\n", epargneID)
    fmt.Println("==================================================")
}
