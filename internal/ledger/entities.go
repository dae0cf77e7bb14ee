package ledger

import (
    "errors"
    "fmt"
    "math"
    "time"

    "github.com/govalues/money"
    "github.com/shopspring/decimal"
)

// DateLayout is the only accepted textual date format (yyyy/MM/dd).
const DateLayout = "2006/01/02"

// isoDateLayout is additionally accepted for account creation dates.
const isoDateLayout = "2006-01-02"

// TypeCompte enumerates the kinds of bank account.
type TypeCompte string

const (
    // CompteCourant is a checking account.
    CompteCourant TypeCompte = "COURANT"
    // CompteEpargne is a savings account.
    CompteEpargne TypeCompte = "EPARGNE"
)

// TypesCompte lists every account kind in display order.
var TypesCompte = []TypeCompte{CompteCourant, CompteEpargne}

// Valid reports whether t is a known account kind.
func (t TypeCompte) Valid() bool {
    switch t {
    case CompteCourant, CompteEpargne:
        return true
    }
    return false
}

// TypeTransaction enumerates the kinds of transaction.
type TypeTransaction string

const (
    // Depot credits money to an account.
    Depot TypeTransaction = "DEPOT"
    // Retrait debits money from an account.
    Retrait TypeTransaction = "RETRAIT"
)

// TypesTransaction lists every transaction kind in display order.
var TypesTransaction = []TypeTransaction{Depot, Retrait}

// Valid reports whether t is a known transaction kind.
func (t TypeTransaction) Valid() bool {
    switch t {
    case Depot, Retrait:
        return true
    }
    return false
}

// Compte is a bank account. Solde is a stored value; adding transactions does not change it.
type Compte struct {
    ID           int64
    Solde        money.Amount
    DateCreation time.Time
    Type         TypeCompte
}

// Transaction is a single deposit or withdrawal against one Compte.
// CompteID is an explicit foreign key; resolving the Compte is always a separate store call.
type Transaction struct {
    ID       int64
    CompteID int64
    Montant  money.Amount
    Date     time.Time
    Type     TypeTransaction
}

// SoldeStats aggregates balances across all accounts.
type SoldeStats struct {
    Count   int64
    Sum     money.Amount
    // Average is the exact quotient Sum/Count, not rounded to the currency scale.
    Average float64
}

// TransactionStats aggregates transaction amounts per kind.
type TransactionStats struct {
    Count       int64
    SumDepots   money.Amount
    SumRetraits money.Amount
}

// ParseDate parses s using DateLayout. Month and day must be zero padded.
func ParseDate(s string) (time.Time, error) {
    return time.ParseInLocation(DateLayout, s, time.UTC)
}

// ParseCreationDate accepts DateLayout or ISO yyyy-MM-dd.
func ParseCreationDate(s string) (time.Time, error) {
    if t, err := ParseDate(s); err == nil {
        return t, nil
    }
    return time.ParseInLocation(isoDateLayout, s, time.UTC)
}

// FormatDate renders t using DateLayout.
func FormatDate(t time.Time) string { return t.UTC().Format(DateLayout) }

// Zero returns a zero amount in curr.
func Zero(curr string) money.Amount {
    a, _ := money.NewAmountFromMinorUnits(curr, 0)
    return a
}

// Amount conversion failures. Callers report both as invalid input.
var (
    ErrTooPrecise = errors.New("more decimals than the currency allows")
    ErrOutOfRange = errors.New("amount out of range")
)

// AmountFromFloat converts an API float into an amount. The value must be
// exactly representable in the currency's minor unit and fit in int64 minor
// units, so what is stored reads back unchanged.
func AmountFromFloat(curr string, f float64) (money.Amount, error) {
    zero, err := money.NewAmountFromMinorUnits(curr, 0)
    if err != nil { return money.Amount{}, err }
    if math.IsNaN(f) || math.IsInf(f, 0) { return money.Amount{}, ErrOutOfRange }
    scale := int32(zero.Curr().Scale())
    shifted := decimal.NewFromFloat(f).Shift(scale)
    if !shifted.Equal(shifted.Truncate(0)) {
        return money.Amount{}, fmt.Errorf("%w: %v has more than %d decimals", ErrTooPrecise, f, scale)
    }
    minor := shifted.BigInt()
    if !minor.IsInt64() {
        return money.Amount{}, fmt.Errorf("%w: %v", ErrOutOfRange, f)
    }
    return money.NewAmountFromMinorUnits(curr, minor.Int64())
}

// AmountFloat converts an amount back into a float for API responses.
func AmountFloat(a money.Amount) float64 {
    minor, _ := a.MinorUnits()
    return decimal.New(minor, -int32(a.Curr().Scale())).InexactFloat64()
}

// AmountMinor returns the amount in minor units, as persisted by the SQL stores.
func AmountMinor(a money.Amount) int64 {
    minor, _ := a.MinorUnits()
    return minor
}

// Average divides sum by count without rounding to the minor unit.
// It returns 0 when count is 0.
func Average(sum money.Amount, count int64) float64 {
    if count <= 0 { return 0 }
    minor, _ := sum.MinorUnits()
    return decimal.New(minor, -int32(sum.Curr().Scale())).Div(decimal.NewFromInt(count)).InexactFloat64()
}
