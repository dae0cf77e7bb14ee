package postgres

// Package postgres provides a pgx-backed storage implementation that satisfies
// the repository and writer interfaces used by the services.
//
// It is intentionally small and explicit. The expected schema lives in
// schema.sql and is applied by Migrate. This package focuses on mapping between
// the domain entities and SQL rows.

import (
    "context"
    _ "embed"
    "errors"
    "fmt"
    "time"

    "github.com/govalues/money"
    "github.com/jackc/pgx/v5"
    "github.com/jackc/pgx/v5/pgxpool"

    "github.com/tinoosan/banque/internal/errs"
    "github.com/tinoosan/banque/internal/ledger"
)

//go:embed schema.sql
var schemaSQL string

// Store holds a pgx connection pool and implements the read/write interfaces
// used across the service layer. All methods are safe for concurrent use.
type Store struct {
    pool     *pgxpool.Pool
    currency string
}

// Open establishes a pgx pool using the provided connection string.
// Amounts read back from the database are expressed in currency.
func Open(ctx context.Context, dsn, currency string) (*Store, error) {
    cfg, err := pgxpool.ParseConfig(dsn)
    if err != nil { return nil, fmt.Errorf("parse database url: %w", err) }
    cfg.MaxConns = 10
    cfg.MaxConnLifetime = time.Hour
    cfg.MaxConnIdleTime = 30 * time.Minute
    pool, err := pgxpool.NewWithConfig(ctx, cfg)
    if err != nil { return nil, fmt.Errorf("create pool: %w", err) }
    // Verify connection
    if err := pool.Ping(ctx); err != nil { pool.Close(); return nil, fmt.Errorf("ping: %w", err) }
    return &Store{pool: pool, currency: currency}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() { if s.pool != nil { s.pool.Close() } }

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// Migrate applies schema.sql. Every statement is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
    if _, err := s.pool.Exec(ctx, schemaSQL); err != nil { return fmt.Errorf("apply schema: %w", err) }
    return nil
}

func (s *Store) amount(minor int64) (money.Amount, error) {
    return money.NewAmountFromMinorUnits(s.currency, minor)
}

// --- Compte reads ---

type rowScanner interface{ Scan(dest ...any) error }

func (s *Store) scanCompte(row rowScanner) (ledger.Compte, error) {
    var c ledger.Compte
    var minor int64
    var typ string
    if err := row.Scan(&c.ID, &minor, &c.DateCreation, &typ); err != nil { return ledger.Compte{}, err }
    solde, err := s.amount(minor)
    if err != nil { return ledger.Compte{}, err }
    c.Solde = solde
    c.Type = ledger.TypeCompte(typ)
    return c, nil
}

// ListComptes returns all accounts ordered by id.
func (s *Store) ListComptes(ctx context.Context) ([]ledger.Compte, error) {
    rows, err := s.pool.Query(ctx, `
        select id, solde_minor, date_creation, type
        from comptes
        order by id asc
    `)
    if err != nil { return nil, fmt.Errorf("list comptes: %w", err) }
    defer rows.Close()
    out := make([]ledger.Compte, 0)
    for rows.Next() {
        c, err := s.scanCompte(rows)
        if err != nil { return nil, err }
        out = append(out, c)
    }
    return out, rows.Err()
}

// GetCompte fetches a single account by id.
func (s *Store) GetCompte(ctx context.Context, id int64) (ledger.Compte, error) {
    c, err := s.scanCompte(s.pool.QueryRow(ctx, `
        select id, solde_minor, date_creation, type
        from comptes
        where id = $1
    `, id))
    if errors.Is(err, pgx.ErrNoRows) { return ledger.Compte{}, errs.ErrNotFound }
    if err != nil { return ledger.Compte{}, fmt.Errorf("get compte: %w", err) }
    return c, nil
}

// CountComptes returns the number of accounts.
func (s *Store) CountComptes(ctx context.Context) (int64, error) {
    var n int64
    if err := s.pool.QueryRow(ctx, `select count(*) from comptes`).Scan(&n); err != nil {
        return 0, fmt.Errorf("count comptes: %w", err)
    }
    return n, nil
}

// SumSoldes returns the sum of balances, zero when empty.
func (s *Store) SumSoldes(ctx context.Context) (money.Amount, error) {
    var minor int64
    if err := s.pool.QueryRow(ctx, `select coalesce(sum(solde_minor), 0)::bigint from comptes`).Scan(&minor); err != nil {
        return money.Amount{}, fmt.Errorf("sum soldes: %w", err)
    }
    return s.amount(minor)
}

// --- Compte writes ---

// SaveCompte inserts when c.ID is zero and replaces all columns otherwise.
func (s *Store) SaveCompte(ctx context.Context, c ledger.Compte) (ledger.Compte, error) {
    minor := ledger.AmountMinor(c.Solde)
    if c.ID == 0 {
        err := s.pool.QueryRow(ctx, `
            insert into comptes (solde_minor, date_creation, type)
            values ($1, $2, $3)
            returning id
        `, minor, c.DateCreation, string(c.Type)).Scan(&c.ID)
        if err != nil { return ledger.Compte{}, fmt.Errorf("insert compte: %w", err) }
        return c, nil
    }
    ct, err := s.pool.Exec(ctx, `
        update comptes
        set solde_minor = $1, date_creation = $2, type = $3
        where id = $4
    `, minor, c.DateCreation, string(c.Type), c.ID)
    if err != nil { return ledger.Compte{}, fmt.Errorf("update compte: %w", err) }
    if ct.RowsAffected() == 0 { return ledger.Compte{}, errs.ErrNotFound }
    return c, nil
}

// --- Transaction reads ---

func (s *Store) scanTransactions(rows pgx.Rows) ([]ledger.Transaction, error) {
    defer rows.Close()
    out := make([]ledger.Transaction, 0)
    for rows.Next() {
        var t ledger.Transaction
        var minor int64
        var typ string
        if err := rows.Scan(&t.ID, &t.CompteID, &minor, &t.Date, &typ); err != nil { return nil, err }
        amt, err := s.amount(minor)
        if err != nil { return nil, err }
        t.Montant = amt
        t.Type = ledger.TypeTransaction(typ)
        out = append(out, t)
    }
    return out, rows.Err()
}

// ListTransactions returns all transactions ordered by id.
func (s *Store) ListTransactions(ctx context.Context) ([]ledger.Transaction, error) {
    rows, err := s.pool.Query(ctx, `
        select id, compte_id, montant_minor, date, type
        from transactions
        order by id asc
    `)
    if err != nil { return nil, fmt.Errorf("list transactions: %w", err) }
    return s.scanTransactions(rows)
}

// TransactionsByCompte returns the transactions of one account ordered by id.
func (s *Store) TransactionsByCompte(ctx context.Context, compteID int64) ([]ledger.Transaction, error) {
    rows, err := s.pool.Query(ctx, `
        select id, compte_id, montant_minor, date, type
        from transactions
        where compte_id = $1
        order by id asc
    `, compteID)
    if err != nil { return nil, fmt.Errorf("list transactions by compte: %w", err) }
    return s.scanTransactions(rows)
}

// CountTransactions returns the number of transactions.
func (s *Store) CountTransactions(ctx context.Context) (int64, error) {
    var n int64
    if err := s.pool.QueryRow(ctx, `select count(*) from transactions`).Scan(&n); err != nil {
        return 0, fmt.Errorf("count transactions: %w", err)
    }
    return n, nil
}

// SumTransactionsByType sums montant for one kind, zero when none match.
func (s *Store) SumTransactionsByType(ctx context.Context, t ledger.TypeTransaction) (money.Amount, error) {
    var minor int64
    err := s.pool.QueryRow(ctx, `
        select coalesce(sum(montant_minor), 0)::bigint from transactions where type = $1
    `, string(t)).Scan(&minor)
    if err != nil { return money.Amount{}, fmt.Errorf("sum transactions: %w", err) }
    return s.amount(minor)
}

// --- Transaction writes ---

// CreateTransaction inserts a transaction row and returns it with its id.
func (s *Store) CreateTransaction(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error) {
    err := s.pool.QueryRow(ctx, `
        insert into transactions (compte_id, montant_minor, date, type)
        values ($1, $2, $3, $4)
        returning id
    `, t.CompteID, ledger.AmountMinor(t.Montant), t.Date, string(t.Type)).Scan(&t.ID)
    if err != nil { return ledger.Transaction{}, fmt.Errorf("insert transaction: %w", err) }
    return t, nil
}
