package config

import (
    "os"
    "path/filepath"
    "strings"
    "testing"
)

var keys = []string{"BANQUE_CONFIG", "HTTP_ADDR", "STORAGE", "DATABASE_URL", "SQLITE_PATH", "BANQUE_CURRENCY", "LOG_LEVEL", "LOG_FORMAT", "DEV_SEED"}

// clearEnv blanks every key for the duration of the test.
func clearEnv(t *testing.T) {
    t.Helper()
    for _, k := range keys { t.Setenv(k, "") }
}

func writeFile(t *testing.T, name, body string) string {
    t.Helper()
    p := filepath.Join(t.TempDir(), name)
    if err := os.WriteFile(p, []byte(body), 0o600); err != nil { t.Fatalf("write: %v", err) }
    return p
}

func TestLoad_Defaults(t *testing.T) {
    clearEnv(t)
    cfg, err := Load(writeFile(t, ".env", "# empty\n"))
    if err != nil { t.Fatalf("load: %v", err) }
    if cfg.HTTPAddr != ":8080" || cfg.Storage != StorageMemory || cfg.Currency != "MAD" || cfg.LogFormat != "json" || cfg.DevSeed {
        t.Fatalf("unexpected defaults: %+v", cfg)
    }
    if err := cfg.Validate(); err != nil { t.Fatalf("validate: %v", err) }
}

func TestLoad_InfersStorage(t *testing.T) {
    cases := []struct {
        name string
        env  map[string]string
        want string
    }{
        {"postgres from url", map[string]string{"DATABASE_URL": "postgres://localhost/banque"}, StoragePostgres},
        {"sqlite from path", map[string]string{"SQLITE_PATH": "data/banque.db"}, StorageSQLite},
        {"explicit wins", map[string]string{"STORAGE": "Memory", "DATABASE_URL": "postgres://x"}, StorageMemory},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            clearEnv(t)
            for k, v := range tc.env { t.Setenv(k, v) }
            cfg, err := Load(writeFile(t, ".env", ""))
            if err != nil { t.Fatalf("load: %v", err) }
            if cfg.Storage != tc.want { t.Fatalf("storage: got %q want %q", cfg.Storage, tc.want) }
        })
    }
}

func TestLoad_YAMLThenEnv(t *testing.T) {
    clearEnv(t)
    yml := writeFile(t, "banque.yaml", "http_addr: \":9090\"\ncurrency: eur\nstorage: sqlite\nsqlite_path: /tmp/b.db\ndev_seed: true\n")
    t.Setenv("BANQUE_CONFIG", yml)
    t.Setenv("HTTP_ADDR", ":7070")
    cfg, err := Load(writeFile(t, ".env", ""))
    if err != nil { t.Fatalf("load: %v", err) }
    if cfg.HTTPAddr != ":7070" || cfg.Currency != "EUR" || cfg.Storage != StorageSQLite || cfg.SQLitePath != "/tmp/b.db" || !cfg.DevSeed {
        t.Fatalf("unexpected config: %+v", cfg)
    }
}

func TestLoad_Errors(t *testing.T) {
    clearEnv(t)
    if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
        t.Fatalf("want error for missing explicit .env")
    }
    t.Setenv("DEV_SEED", "maybe")
    if _, err := Load(writeFile(t, ".env", "")); err == nil || !strings.Contains(err.Error(), "DEV_SEED") {
        t.Fatalf("want DEV_SEED error, got %v", err)
    }
    t.Setenv("DEV_SEED", "")
    t.Setenv("BANQUE_CONFIG", writeFile(t, "bad.yaml", "http_addr: [unterminated"))
    if _, err := Load(writeFile(t, ".env", "")); err == nil {
        t.Fatalf("want yaml parse error")
    }
}

func TestValidate(t *testing.T) {
    cases := []struct {
        name string
        cfg  Config
        want string
    }{
        {"postgres without url", Config{HTTPAddr: ":1", Storage: StoragePostgres, Currency: "MAD", LogFormat: "json"}, "DATABASE_URL"},
        {"sqlite without path", Config{HTTPAddr: ":1", Storage: StorageSQLite, Currency: "MAD", LogFormat: "json"}, "SQLITE_PATH"},
        {"unknown storage", Config{HTTPAddr: ":1", Storage: "redis", Currency: "MAD", LogFormat: "json"}, "unknown STORAGE"},
        {"bad currency", Config{HTTPAddr: ":1", Storage: StorageMemory, Currency: "DIRHAM", LogFormat: "json"}, "BANQUE_CURRENCY"},
        {"bad format", Config{HTTPAddr: ":1", Storage: StorageMemory, Currency: "MAD", LogFormat: "xml"}, "LOG_FORMAT"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            err := tc.cfg.Validate()
            if err == nil || !strings.Contains(err.Error(), tc.want) {
                t.Fatalf("want error containing %q, got %v", tc.want, err)
            }
        })
    }
}
