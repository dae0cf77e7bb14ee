package memory

// Package memory provides a simple in-memory implementation used for development and tests.
// It keeps code paths easy to follow while the SQL stores back real deployments.
import (
    "context"
    "sync"

    "github.com/govalues/money"

    "github.com/tinoosan/banque/internal/errs"
    "github.com/tinoosan/banque/internal/ledger"
)

// Store is an in-memory implementation of the account and transaction stores.
// It is guarded by an RWMutex for concurrent reads/writes.
type Store struct {
    mu       sync.RWMutex
    currency string
    comptes  map[int64]ledger.Compte
    // insertion order of compte ids
    compteOrder  []int64
    transactions []ledger.Transaction
    nextCompteID int64
    nextTxID     int64
}

// New constructs an empty in-memory store whose aggregates are reported in currency.
func New(currency string) *Store {
    s := &Store{currency: currency}
    s.Reset()
    return s
}

// Reset drops all data and restarts id sequences.
func (s *Store) Reset() {
    s.mu.Lock()
    s.comptes = map[int64]ledger.Compte{}
    s.compteOrder = nil
    s.transactions = nil
    s.nextCompteID = 1
    s.nextTxID = 1
    s.mu.Unlock()
}

// Ready always succeeds for the in-memory store.
func (s *Store) Ready(context.Context) error { return nil }

// Close is a no-op kept so all backends share a shutdown path.
func (s *Store) Close() {}

// --- Compte ---

// ListComptes returns all accounts in insertion order.
func (s *Store) ListComptes(_ context.Context) ([]ledger.Compte, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]ledger.Compte, 0, len(s.compteOrder))
    for _, id := range s.compteOrder {
        out = append(out, s.comptes[id])
    }
    return out, nil
}

// GetCompte returns an account by id.
func (s *Store) GetCompte(_ context.Context, id int64) (ledger.Compte, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    c, ok := s.comptes[id]
    if !ok { return ledger.Compte{}, errs.ErrNotFound }
    return c, nil
}

// SaveCompte inserts when c.ID is zero, otherwise replaces an existing account.
func (s *Store) SaveCompte(_ context.Context, c ledger.Compte) (ledger.Compte, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if c.ID == 0 {
        c.ID = s.nextCompteID
        s.nextCompteID++
        s.comptes[c.ID] = c
        s.compteOrder = append(s.compteOrder, c.ID)
        return c, nil
    }
    if _, ok := s.comptes[c.ID]; !ok { return ledger.Compte{}, errs.ErrNotFound }
    s.comptes[c.ID] = c
    return c, nil
}

// CountComptes returns the number of accounts.
func (s *Store) CountComptes(_ context.Context) (int64, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    return int64(len(s.comptes)), nil
}

// SumSoldes returns the sum of all balances, zero when there are none.
func (s *Store) SumSoldes(_ context.Context) (money.Amount, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    sum := ledger.Zero(s.currency)
    for _, c := range s.comptes {
        v, err := sum.Add(c.Solde)
        if err != nil { return money.Amount{}, err }
        sum = v
    }
    return sum, nil
}

// --- Transaction ---

// CreateTransaction appends a transaction and assigns its id.
func (s *Store) CreateTransaction(_ context.Context, t ledger.Transaction) (ledger.Transaction, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.comptes[t.CompteID]; !ok { return ledger.Transaction{}, errs.ErrNotFound }
    t.ID = s.nextTxID
    s.nextTxID++
    s.transactions = append(s.transactions, t)
    return t, nil
}

// ListTransactions returns all transactions in insertion order.
func (s *Store) ListTransactions(_ context.Context) ([]ledger.Transaction, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    out := make([]ledger.Transaction, len(s.transactions))
    copy(out, s.transactions)
    return out, nil
}

// TransactionsByCompte returns the transactions of one account in insertion order.
func (s *Store) TransactionsByCompte(_ context.Context, compteID int64) ([]ledger.Transaction, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]ledger.Transaction, 0)
    for _, t := range s.transactions {
        if t.CompteID == compteID {
            out = append(out, t)
        }
    }
    return out, nil
}

// CountTransactions returns the number of transactions.
func (s *Store) CountTransactions(_ context.Context) (int64, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    return int64(len(s.transactions)), nil
}

// SumTransactionsByType sums montant over transactions of kind t, zero when none match.
func (s *Store) SumTransactionsByType(_ context.Context, t ledger.TypeTransaction) (money.Amount, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    sum := ledger.Zero(s.currency)
    for _, tx := range s.transactions {
        if tx.Type != t { continue }
        v, err := sum.Add(tx.Montant)
        if err != nil { return money.Amount{}, err }
        sum = v
    }
    return sum, nil
}
