// Package compte implements the account rules: lookups that fail loudly when the
// account is missing, create-or-replace saves, and balance aggregates.
package compte

import (
    "context"
    "errors"
    "fmt"
    "log/slog"
    "time"

    "github.com/govalues/money"

    "github.com/tinoosan/banque/internal/errs"
    "github.com/tinoosan/banque/internal/ledger"
)

type Repo interface {
    ListComptes(ctx context.Context) ([]ledger.Compte, error)
    GetCompte(ctx context.Context, id int64) (ledger.Compte, error)
    CountComptes(ctx context.Context) (int64, error)
    SumSoldes(ctx context.Context) (money.Amount, error)
}

type Writer interface {
    // SaveCompte inserts when ID is zero and replaces the stored row otherwise.
    SaveCompte(ctx context.Context, c ledger.Compte) (ledger.Compte, error)
}

// Request is the caller-supplied account payload. ID is optional: zero creates.
type Request struct {
    ID           int64
    Solde        float64
    DateCreation string
    Type         ledger.TypeCompte
}

type Service interface {
    All(ctx context.Context) ([]ledger.Compte, error)
    ByID(ctx context.Context, id int64) (ledger.Compte, error)
    Build(req Request) (ledger.Compte, error)
    Save(ctx context.Context, req Request) (ledger.Compte, error)
    TotalSolde(ctx context.Context) (ledger.SoldeStats, error)
}

type service struct {
    repo     Repo
    writer   Writer
    currency string
    log      *slog.Logger
    now      func() time.Time
}

func New(repo Repo, writer Writer, currency string, logger *slog.Logger) Service {
    if logger == nil { logger = slog.Default() }
    return &service{repo: repo, writer: writer, currency: currency, log: logger, now: time.Now}
}

func (s *service) All(ctx context.Context) ([]ledger.Compte, error) {
    out, err := s.repo.ListComptes(ctx)
    if err != nil { return nil, errs.Infra(err) }
    return out, nil
}

func (s *service) ByID(ctx context.Context, id int64) (ledger.Compte, error) {
    c, err := s.repo.GetCompte(ctx, id)
    if errors.Is(err, errs.ErrNotFound) {
        return ledger.Compte{}, errs.NotFound(fmt.Sprintf("Compte %d not found", id))
    }
    if err != nil { return ledger.Compte{}, errs.Infra(err) }
    return c, nil
}

// Build validates the request and converts it to a domain account without persisting it.
func (s *service) Build(req Request) (ledger.Compte, error) {
    if !req.Type.Valid() {
        return ledger.Compte{}, errs.InvalidFormat(fmt.Sprintf("Invalid compte type %q", req.Type))
    }
    created := s.now().UTC().Truncate(24 * time.Hour)
    if req.DateCreation != "" {
        d, err := ledger.ParseCreationDate(req.DateCreation)
        if err != nil {
            return ledger.Compte{}, errs.InvalidFormat("Invalid date format. Use yyyy/MM/dd")
        }
        created = d
    }
    solde, err := ledger.AmountFromFloat(s.currency, req.Solde)
    if err != nil {
        return ledger.Compte{}, errs.InvalidFormat("Invalid solde: " + err.Error())
    }
    return ledger.Compte{ID: req.ID, Solde: solde, DateCreation: created, Type: req.Type}, nil
}

// Save creates the account when req.ID is zero, otherwise replaces it in full.
// There is no version check: the last writer wins.
func (s *service) Save(ctx context.Context, req Request) (ledger.Compte, error) {
    c, err := s.Build(req)
    if err != nil { return ledger.Compte{}, err }
    saved, err := s.writer.SaveCompte(ctx, c)
    if errors.Is(err, errs.ErrNotFound) {
        return ledger.Compte{}, errs.NotFound(fmt.Sprintf("Compte %d not found", req.ID))
    }
    if err != nil { return ledger.Compte{}, errs.Infra(err) }
    if req.ID == 0 {
        s.log.Info("compte created", "compte_id", saved.ID, "type", saved.Type)
    } else {
        s.log.Info("compte replaced", "compte_id", saved.ID, "type", saved.Type)
    }
    return saved, nil
}

func (s *service) TotalSolde(ctx context.Context) (ledger.SoldeStats, error) {
    count, err := s.repo.CountComptes(ctx)
    if err != nil { return ledger.SoldeStats{}, errs.Infra(err) }
    sum, err := s.repo.SumSoldes(ctx)
    if err != nil { return ledger.SoldeStats{}, errs.Infra(err) }
    return ledger.SoldeStats{Count: count, Sum: sum, Average: ledger.Average(sum, count)}, nil
}
