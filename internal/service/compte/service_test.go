package compte_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/govalues/money"

	"github.com/tinoosan/banque/internal/errs"
	"github.com/tinoosan/banque/internal/ledger"
	"github.com/tinoosan/banque/internal/service/compte"
	"github.com/tinoosan/banque/internal/storage/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setup(t *testing.T) (*memory.Store, compte.Service) {
	t.Helper()
	store := memory.New("MAD")
	return store, compte.New(store, store, "MAD", testLogger())
}

func TestSave_ThenByID(t *testing.T) {
	ctx := context.Background()
	_, svc := setup(t)

	saved, err := svc.Save(ctx, compte.Request{Solde: 250.5, DateCreation: "2024/01/15", Type: ledger.CompteEpargne})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == 0 {
		t.Fatalf("id not populated")
	}
	got, err := svc.ByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if ledger.AmountFloat(got.Solde) != 250.5 || got.Type != ledger.CompteEpargne || ledger.FormatDate(got.DateCreation) != "2024/01/15" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestSave_ReplaceKeepsID(t *testing.T) {
	ctx := context.Background()
	_, svc := setup(t)
	first, _ := svc.Save(ctx, compte.Request{Solde: 10, DateCreation: "2024/01/01", Type: ledger.CompteCourant})

	upd, err := svc.Save(ctx, compte.Request{ID: first.ID, Solde: 99, DateCreation: "2024-02-01", Type: ledger.CompteEpargne})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if upd.ID != first.ID {
		t.Fatalf("replace changed id: %d -> %d", first.ID, upd.ID)
	}
	all, _ := svc.All(ctx)
	if len(all) != 1 || ledger.AmountFloat(all[0].Solde) != 99 || all[0].Type != ledger.CompteEpargne {
		t.Fatalf("replace not applied: %+v", all)
	}

	_, err = svc.Save(ctx, compte.Request{ID: 404, Solde: 1, Type: ledger.CompteCourant})
	if !errors.Is(err, errs.ErrNotFound) || err.Error() != "Compte 404 not found" {
		t.Fatalf("replace missing: got %v", err)
	}
}

func TestSave_Validation(t *testing.T) {
	ctx := context.Background()
	store, svc := setup(t)
	cases := []compte.Request{
		{Solde: 1, DateCreation: "2024/01/01", Type: "LIVRET"},
		{Solde: 1, DateCreation: "15/01/2024", Type: ledger.CompteCourant},
		{Solde: 1e17, DateCreation: "2024/01/01", Type: ledger.CompteCourant},
		{Solde: -1e17, DateCreation: "2024/01/01", Type: ledger.CompteCourant},
		{Solde: 1.234, DateCreation: "2024/01/01", Type: ledger.CompteCourant},
	}
	for _, req := range cases {
		if _, err := svc.Save(ctx, req); !errors.Is(err, errs.ErrInvalidFormat) {
			t.Fatalf("req %+v: want invalid format, got %v", req, err)
		}
	}
	if n, _ := store.CountComptes(ctx); n != 0 {
		t.Fatalf("invalid requests must not persist, got %d comptes", n)
	}
}

func TestSave_DefaultsCreationDateToToday(t *testing.T) {
	_, svc := setup(t)
	c, err := svc.Build(compte.Request{Solde: 1, Type: ledger.CompteCourant})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if !c.DateCreation.Equal(today) {
		t.Fatalf("date=%v want %v", c.DateCreation, today)
	}
}

func TestByID_NotFound(t *testing.T) {
	_, svc := setup(t)
	_, err := svc.ByID(context.Background(), 7)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
	if err.Error() != "Compte 7 not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestTotalSolde(t *testing.T) {
	ctx := context.Background()
	_, svc := setup(t)

	empty, err := svc.TotalSolde(ctx)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if empty.Count != 0 || ledger.AmountFloat(empty.Sum) != 0 || empty.Average != 0 {
		t.Fatalf("empty totals: %+v", empty)
	}

	for _, v := range []float64{100, 50} {
		if _, err := svc.Save(ctx, compte.Request{Solde: v, Type: ledger.CompteCourant}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	got, _ := svc.TotalSolde(ctx)
	if got.Count != 2 || ledger.AmountFloat(got.Sum) != 150 || got.Average != 75 {
		t.Fatalf("totals: count=%d sum=%v avg=%v", got.Count, got.Sum, got.Average)
	}
}

type failingRepo struct{ *memory.Store }

func (failingRepo) ListComptes(context.Context) ([]ledger.Compte, error) {
	return nil, errors.New("connection reset")
}
func (failingRepo) CountComptes(context.Context) (int64, error) { return 0, errors.New("connection reset") }
func (failingRepo) SumSoldes(context.Context) (money.Amount, error) {
	return money.Amount{}, errors.New("connection reset")
}

func TestInfraErrorsAreWrapped(t *testing.T) {
	store := memory.New("MAD")
	svc := compte.New(failingRepo{store}, store, "MAD", testLogger())
	_, err := svc.All(context.Background())
	if errs.KindOf(err) != errs.KindInfra || !errors.Is(err, errs.ErrInfra) {
		t.Fatalf("want infra error, got %v", err)
	}
	if _, err := svc.TotalSolde(context.Background()); errs.KindOf(err) != errs.KindInfra {
		t.Fatalf("want infra error, got %v", err)
	}
}

func TestSave_ReadBackEqualsPayload(t *testing.T) {
	ctx := context.Background()
	_, svc := setup(t)
	for _, v := range []float64{0, 0.01, 0.1, 19.99, -42.5, 123456789.12} {
		saved, err := svc.Save(ctx, compte.Request{Solde: v, DateCreation: "2024/01/15", Type: ledger.CompteCourant})
		if err != nil {
			t.Fatalf("save %v: %v", v, err)
		}
		got, err := svc.ByID(ctx, saved.ID)
		if err != nil {
			t.Fatalf("by id: %v", err)
		}
		if out := ledger.AmountFloat(got.Solde); out != v {
			t.Fatalf("solde in=%v out=%v", v, out)
		}
	}
}

func TestTotalSolde_AverageIsNotRounded(t *testing.T) {
	ctx := context.Background()
	_, svc := setup(t)
	for _, v := range []float64{100, 50, 50} {
		if _, err := svc.Save(ctx, compte.Request{Solde: v, Type: ledger.CompteCourant}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	got, _ := svc.TotalSolde(ctx)
	if got.Count != 3 || ledger.AmountFloat(got.Sum) != 200 || got.Average != 200.0/3 {
		t.Fatalf("totals: count=%d sum=%v avg=%v", got.Count, got.Sum, got.Average)
	}
}
