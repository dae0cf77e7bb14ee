package httpapi

import (
    "github.com/tinoosan/banque/internal/storage/memory"
    "github.com/tinoosan/banque/internal/storage/postgres"
    "github.com/tinoosan/banque/internal/storage/sqlite"
)

// Compile-time checks that every backend can back /readyz.
var (
    _ ReadyChecker = (*memory.Store)(nil)
    _ ReadyChecker = (*postgres.Store)(nil)
    _ ReadyChecker = (*sqlite.Store)(nil)
)
