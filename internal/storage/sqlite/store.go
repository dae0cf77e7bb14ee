// Package sqlite provides a single-file storage backend built on database/sql
// and the mattn/go-sqlite3 driver. It mirrors the postgres store row for row.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/govalues/money"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/tinoosan/banque/internal/errs"
	"github.com/tinoosan/banque/internal/ledger"
)

// Schema defines the SQL statements to create the tables.
const Schema = `
CREATE TABLE IF NOT EXISTS comptes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    solde_minor INTEGER NOT NULL DEFAULT 0,
    date_creation TEXT NOT NULL,       -- YYYY-MM-DD
    type TEXT NOT NULL CHECK (type IN ('COURANT', 'EPARGNE'))
);

CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    compte_id INTEGER NOT NULL REFERENCES comptes(id),
    montant_minor INTEGER NOT NULL,
    date TEXT NOT NULL,                -- YYYY-MM-DD
    type TEXT NOT NULL CHECK (type IN ('DEPOT', 'RETRAIT'))
);

CREATE INDEX IF NOT EXISTS idx_transactions_compte
    ON transactions(compte_id, id);
`

const dayLayout = "2006-01-02"

// Store manages a SQLite database connection.
type Store struct {
	db       *sql.DB
	path     string
	currency string
}

// Open opens (creating if needed) the database at path and applies Schema.
// Foreign keys are enforced and the journal runs in WAL mode.
func Open(path, currency string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	connStr := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	s := &Store{db: db, path: path, currency: currency}
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Ready pings the database.
func (s *Store) Ready(ctx context.Context) error { return s.db.PingContext(ctx) }

// Migrate applies Schema.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

func (s *Store) amount(minor int64) (money.Amount, error) {
	return money.NewAmountFromMinorUnits(s.currency, minor)
}

func parseDay(v string) (time.Time, error) {
	return time.ParseInLocation(dayLayout, v, time.UTC)
}

type rowScanner interface{ Scan(dest ...any) error }

func (s *Store) scanCompte(row rowScanner) (ledger.Compte, error) {
	var (
		c     ledger.Compte
		minor int64
		day   string
		typ   string
	)
	if err := row.Scan(&c.ID, &minor, &day, &typ); err != nil {
		return ledger.Compte{}, err
	}
	d, err := parseDay(day)
	if err != nil {
		return ledger.Compte{}, fmt.Errorf("compte %d: bad date_creation %q: %w", c.ID, day, err)
	}
	solde, err := s.amount(minor)
	if err != nil {
		return ledger.Compte{}, err
	}
	c.DateCreation, c.Solde, c.Type = d, solde, ledger.TypeCompte(typ)
	return c, nil
}

// ListComptes returns all accounts ordered by id.
func (s *Store) ListComptes(ctx context.Context) ([]ledger.Compte, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, solde_minor, date_creation, type FROM comptes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list comptes: %w", err)
	}
	defer rows.Close()
	out := make([]ledger.Compte, 0)
	for rows.Next() {
		c, err := s.scanCompte(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCompte fetches one account by id.
func (s *Store) GetCompte(ctx context.Context, id int64) (ledger.Compte, error) {
	c, err := s.scanCompte(s.db.QueryRowContext(ctx, `SELECT id, solde_minor, date_creation, type FROM comptes WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Compte{}, errs.ErrNotFound
	}
	if err != nil {
		return ledger.Compte{}, fmt.Errorf("failed to get compte: %w", err)
	}
	return c, nil
}

// SaveCompte inserts when c.ID is zero and replaces all columns otherwise.
func (s *Store) SaveCompte(ctx context.Context, c ledger.Compte) (ledger.Compte, error) {
	day := c.DateCreation.UTC().Format(dayLayout)
	if c.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO comptes (solde_minor, date_creation, type) VALUES (?, ?, ?)`,
			ledger.AmountMinor(c.Solde), day, string(c.Type))
		if err != nil {
			return ledger.Compte{}, fmt.Errorf("failed to insert compte: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return ledger.Compte{}, fmt.Errorf("failed to read compte id: %w", err)
		}
		c.ID = id
		return c, nil
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE comptes SET solde_minor = ?, date_creation = ?, type = ? WHERE id = ?`,
		ledger.AmountMinor(c.Solde), day, string(c.Type), c.ID)
	if err != nil {
		return ledger.Compte{}, fmt.Errorf("failed to update compte: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.Compte{}, errs.ErrNotFound
	}
	return c, nil
}

// CountComptes returns the number of accounts.
func (s *Store) CountComptes(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comptes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count comptes: %w", err)
	}
	return n, nil
}

// SumSoldes returns the sum of balances, zero when empty.
func (s *Store) SumSoldes(ctx context.Context) (money.Amount, error) {
	var minor int64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(solde_minor), 0) FROM comptes`).Scan(&minor); err != nil {
		return money.Amount{}, fmt.Errorf("failed to sum soldes: %w", err)
	}
	return s.amount(minor)
}

func (s *Store) queryTransactions(ctx context.Context, query string, args ...any) ([]ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()
	out := make([]ledger.Transaction, 0)
	for rows.Next() {
		var (
			t     ledger.Transaction
			minor int64
			day   string
			typ   string
		)
		if err := rows.Scan(&t.ID, &t.CompteID, &minor, &day, &typ); err != nil {
			return nil, err
		}
		if t.Date, err = parseDay(day); err != nil {
			return nil, fmt.Errorf("transaction %d: bad date %q: %w", t.ID, day, err)
		}
		if t.Montant, err = s.amount(minor); err != nil {
			return nil, err
		}
		t.Type = ledger.TypeTransaction(typ)
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListTransactions returns all transactions ordered by id.
func (s *Store) ListTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	return s.queryTransactions(ctx, `SELECT id, compte_id, montant_minor, date, type FROM transactions ORDER BY id`)
}

// TransactionsByCompte returns the transactions of one account ordered by id.
func (s *Store) TransactionsByCompte(ctx context.Context, compteID int64) ([]ledger.Transaction, error) {
	return s.queryTransactions(ctx,
		`SELECT id, compte_id, montant_minor, date, type FROM transactions WHERE compte_id = ? ORDER BY id`, compteID)
}

// CountTransactions returns the number of transactions.
func (s *Store) CountTransactions(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return n, nil
}

// SumTransactionsByType sums montant for one kind, zero when none match.
func (s *Store) SumTransactionsByType(ctx context.Context, t ledger.TypeTransaction) (money.Amount, error) {
	var minor int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(montant_minor), 0) FROM transactions WHERE type = ?`, string(t)).Scan(&minor)
	if err != nil {
		return money.Amount{}, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return s.amount(minor)
}

// CreateTransaction inserts a transaction row and returns it with its id.
func (s *Store) CreateTransaction(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (compte_id, montant_minor, date, type) VALUES (?, ?, ?, ?)`,
		t.CompteID, ledger.AmountMinor(t.Montant), t.Date.UTC().Format(dayLayout), string(t.Type))
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("failed to insert transaction: %w", err)
	}
	if t.ID, err = res.LastInsertId(); err != nil {
		return ledger.Transaction{}, fmt.Errorf("failed to read transaction id: %w", err)
	}
	return t, nil
}
