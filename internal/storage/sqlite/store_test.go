package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/govalues/money"

	"github.com/tinoosan/banque/internal/errs"
	"github.com/tinoosan/banque/internal/ledger"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "banque.db"), "MAD")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func amount(t *testing.T, f float64) money.Amount {
	t.Helper()
	a, err := ledger.AmountFromFloat("MAD", f)
	if err != nil {
		t.Fatalf("amount: %v", err)
	}
	return a
}

func TestStore_ComptesRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	day := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	c, err := s.SaveCompte(ctx, ledger.Compte{Solde: amount(t, 12.34), DateCreation: day, Type: ledger.CompteEpargne})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := s.GetCompte(ctx, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != c.ID || ledger.AmountFloat(got.Solde) != 12.34 || !got.DateCreation.Equal(day) || got.Type != ledger.CompteEpargne {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	got.Solde = amount(t, 1)
	got.Type = ledger.CompteCourant
	if _, err := s.SaveCompte(ctx, got); err != nil {
		t.Fatalf("replace: %v", err)
	}
	again, _ := s.GetCompte(ctx, c.ID)
	if ledger.AmountFloat(again.Solde) != 1 || again.Type != ledger.CompteCourant {
		t.Fatalf("replace not applied: %+v", again)
	}

	if _, err := s.GetCompte(ctx, 555); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
	if _, err := s.SaveCompte(ctx, ledger.Compte{ID: 555, Solde: amount(t, 1), DateCreation: day, Type: ledger.CompteCourant}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("replace missing: want not found, got %v", err)
	}
}

func TestStore_AggregatesAndFilters(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	sum, err := s.SumSoldes(ctx)
	if err != nil || ledger.AmountFloat(sum) != 0 {
		t.Fatalf("empty sum: %v %v", sum, err)
	}

	a, _ := s.SaveCompte(ctx, ledger.Compte{Solde: amount(t, 100), DateCreation: day, Type: ledger.CompteCourant})
	b, _ := s.SaveCompte(ctx, ledger.Compte{Solde: amount(t, 50), DateCreation: day, Type: ledger.CompteCourant})
	sum, _ = s.SumSoldes(ctx)
	n, _ := s.CountComptes(ctx)
	if n != 2 || ledger.AmountFloat(sum) != 150 {
		t.Fatalf("totals n=%d sum=%v", n, sum)
	}

	seed := []ledger.Transaction{
		{CompteID: a.ID, Montant: amount(t, 100), Date: day, Type: ledger.Depot},
		{CompteID: b.ID, Montant: amount(t, 30), Date: day, Type: ledger.Retrait},
		{CompteID: a.ID, Montant: amount(t, 20), Date: day, Type: ledger.Depot},
	}
	ids := make([]int64, 0, len(seed))
	for _, tx := range seed {
		created, err := s.CreateTransaction(ctx, tx)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, created.ID)
	}

	byA, _ := s.TransactionsByCompte(ctx, a.ID)
	if len(byA) != 2 || byA[0].ID != ids[0] || byA[1].ID != ids[2] {
		t.Fatalf("by compte: %+v", byA)
	}
	if !byA[0].Date.Equal(day) {
		t.Fatalf("date not preserved: %v", byA[0].Date)
	}
	dep, _ := s.SumTransactionsByType(ctx, ledger.Depot)
	ret, _ := s.SumTransactionsByType(ctx, ledger.Retrait)
	cnt, _ := s.CountTransactions(ctx)
	if cnt != 3 || ledger.AmountFloat(dep) != 120 || ledger.AmountFloat(ret) != 30 {
		t.Fatalf("stats cnt=%d dep=%v ret=%v", cnt, dep, ret)
	}
	all, _ := s.ListTransactions(ctx)
	if len(all) != 3 {
		t.Fatalf("list: %d", len(all))
	}
}

func TestStore_ForeignKeyEnforced(t *testing.T) {
	s := openTemp(t)
	_, err := s.CreateTransaction(context.Background(), ledger.Transaction{
		CompteID: 404, Montant: amount(t, 1), Date: time.Now(), Type: ledger.Depot,
	})
	if err == nil {
		t.Fatalf("expected foreign key violation")
	}
}
