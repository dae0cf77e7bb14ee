package main

import (
    "context"
    "io"
    "log/slog"
    "testing"

    "github.com/tinoosan/banque/internal/config"
    "github.com/tinoosan/banque/internal/storage/memory"
)

func TestParseLogLevel(t *testing.T) {
    cases := map[string]slog.Level{
        "":        slog.LevelInfo,
        "DEBUG":   slog.LevelDebug,
        "warning": slog.LevelWarn,
        "err":     slog.LevelError,
        "bogus":   slog.LevelInfo,
    }
    for in, want := range cases {
        if got := parseLogLevel(in).Level(); got != want {
            t.Fatalf("parseLogLevel(%q) = %v, want %v", in, got, want)
        }
    }
}

func TestDevSeed_Memory(t *testing.T) {
    cfg = &config.Config{Storage: config.StorageMemory, Currency: "MAD"}
    logger = slog.New(slog.NewTextHandler(io.Discard, nil))
    ctx := context.Background()

    st, err := openStore(ctx, cfg)
    if err != nil { t.Fatalf("open: %v", err) }
    if _, ok := st.(*memory.Store); !ok { t.Fatalf("want memory store, got %T", st) }
    cs, ts := newServices(st)
    if err := devSeed(ctx, logger, cs, ts); err != nil { t.Fatalf("seed: %v", err) }

    soldes, _ := cs.TotalSolde(ctx)
    stats, _ := ts.Stats(ctx)
    if soldes.Count != 2 || stats.Count != 3 {
        t.Fatalf("seeded %d comptes and %d transactions", soldes.Count, stats.Count)
    }
}
