package main

import (
    "context"
    "fmt"

    "github.com/tinoosan/banque/internal/config"
    "github.com/tinoosan/banque/internal/service/compte"
    "github.com/tinoosan/banque/internal/service/transaction"
    "github.com/tinoosan/banque/internal/storage/memory"
    pgstore "github.com/tinoosan/banque/internal/storage/postgres"
    "github.com/tinoosan/banque/internal/storage/sqlite"
)

// store is what every backend provides to the services and probes.
type store interface {
    compte.Repo
    compte.Writer
    transaction.Repo
    transaction.Writer
    Ready(ctx context.Context) error
    Close()
}

type migrator interface {
    Migrate(ctx context.Context) error
}

var (
    _ store    = (*memory.Store)(nil)
    _ store    = (*pgstore.Store)(nil)
    _ store    = (*sqlite.Store)(nil)
    _ migrator = (*pgstore.Store)(nil)
    _ migrator = (*sqlite.Store)(nil)
)

// openStore selects the backend named by cfg.Storage.
func openStore(ctx context.Context, cfg *config.Config) (store, error) {
    switch cfg.Storage {
    case config.StoragePostgres:
        pg, err := pgstore.Open(ctx, cfg.DatabaseURL, cfg.Currency)
        if err != nil { return nil, fmt.Errorf("connect to postgres: %w", err) }
        return pg, nil
    case config.StorageSQLite:
        lite, err := sqlite.Open(cfg.SQLitePath, cfg.Currency)
        if err != nil { return nil, fmt.Errorf("open sqlite: %w", err) }
        return lite, nil
    default:
        return memory.New(cfg.Currency), nil
    }
}

func newServices(st store) (compte.Service, transaction.Service) {
    cs := compte.New(st, st, cfg.Currency, logger)
    ts := transaction.New(st, st, st, cfg.Currency, logger)
    return cs, ts
}
