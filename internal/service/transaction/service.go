package transaction

import (
    "context"
    "errors"
    "fmt"
    "log/slog"

    "github.com/govalues/money"

    "github.com/tinoosan/banque/internal/errs"
    "github.com/tinoosan/banque/internal/ledger"
)

// Repo defines read operations needed by the service.
type Repo interface {
    ListTransactions(ctx context.Context) ([]ledger.Transaction, error)
    TransactionsByCompte(ctx context.Context, compteID int64) ([]ledger.Transaction, error)
    CountTransactions(ctx context.Context) (int64, error)
    SumTransactionsByType(ctx context.Context, t ledger.TypeTransaction) (money.Amount, error)
}

// Writer defines write operations needed by the service.
type Writer interface {
    CreateTransaction(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error)
}

// CompteReader resolves the account a transaction refers to.
type CompteReader interface {
    GetCompte(ctx context.Context, id int64) (ledger.Compte, error)
}

// Request carries the raw fields of a new transaction.
type Request struct {
    CompteID int64
    Montant  float64
    Date     string
    Type     ledger.TypeTransaction
}

// Service exposes transaction creation and reporting helpers.
type Service interface {
    Add(ctx context.Context, req Request) (ledger.Transaction, error)
    ForCompte(ctx context.Context, compteID int64) ([]ledger.Transaction, error)
    All(ctx context.Context) ([]ledger.Transaction, error)
    Stats(ctx context.Context) (ledger.TransactionStats, error)
}

type service struct {
    repo     Repo
    writer   Writer
    comptes  CompteReader
    currency string
    log      *slog.Logger
}

func New(repo Repo, writer Writer, comptes CompteReader, currency string, logger *slog.Logger) Service {
    if logger == nil { logger = slog.Default() }
    return &service{repo: repo, writer: writer, comptes: comptes, currency: currency, log: logger}
}

// Add records a transaction against an existing account. The account's Solde is left untouched.
func (s *service) Add(ctx context.Context, req Request) (ledger.Transaction, error) {
    c, err := s.resolve(ctx, req.CompteID)
    if err != nil { return ledger.Transaction{}, err }

    if !req.Type.Valid() {
        return ledger.Transaction{}, errs.InvalidFormat(fmt.Sprintf("Invalid transaction type %q", req.Type))
    }
    montant, err := ledger.AmountFromFloat(s.currency, req.Montant)
    if err != nil {
        return ledger.Transaction{}, errs.InvalidFormat("Invalid montant: " + err.Error())
    }
    t := ledger.Transaction{CompteID: c.ID, Montant: montant, Type: req.Type}

    date, err := ledger.ParseDate(req.Date)
    if err != nil {
        return ledger.Transaction{}, errs.InvalidFormat("Invalid date format. Use yyyy/MM/dd")
    }
    t.Date = date

    created, err := s.writer.CreateTransaction(ctx, t)
    if err != nil { return ledger.Transaction{}, errs.Infra(err) }
    s.log.Info("transaction added", "transaction_id", created.ID, "compte_id", created.CompteID, "type", created.Type)
    return created, nil
}

func (s *service) ForCompte(ctx context.Context, compteID int64) ([]ledger.Transaction, error) {
    c, err := s.resolve(ctx, compteID)
    if err != nil { return nil, err }
    out, err := s.repo.TransactionsByCompte(ctx, c.ID)
    if err != nil { return nil, errs.Infra(err) }
    return out, nil
}

func (s *service) All(ctx context.Context) ([]ledger.Transaction, error) {
    out, err := s.repo.ListTransactions(ctx)
    if err != nil { return nil, errs.Infra(err) }
    return out, nil
}

func (s *service) Stats(ctx context.Context) (ledger.TransactionStats, error) {
    count, err := s.repo.CountTransactions(ctx)
    if err != nil { return ledger.TransactionStats{}, errs.Infra(err) }
    depots, err := s.repo.SumTransactionsByType(ctx, ledger.Depot)
    if err != nil { return ledger.TransactionStats{}, errs.Infra(err) }
    retraits, err := s.repo.SumTransactionsByType(ctx, ledger.Retrait)
    if err != nil { return ledger.TransactionStats{}, errs.Infra(err) }
    return ledger.TransactionStats{Count: count, SumDepots: depots, SumRetraits: retraits}, nil
}

func (s *service) resolve(ctx context.Context, compteID int64) (ledger.Compte, error) {
    c, err := s.comptes.GetCompte(ctx, compteID)
    if errors.Is(err, errs.ErrNotFound) { return ledger.Compte{}, errs.NotFound("Compte not found") }
    if err != nil { return ledger.Compte{}, errs.Infra(err) }
    return c, nil
}
