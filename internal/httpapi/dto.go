package httpapi

import (
    "github.com/tinoosan/banque/internal/ledger"
)

// saveCompteRequest is the body of POST /v1/comptes. ID set means replace.
type saveCompteRequest struct {
    ID           *int64            `json:"id,omitempty"`
    Solde        *float64          `json:"solde"`
    DateCreation string            `json:"dateCreation"`
    Type         ledger.TypeCompte `json:"type"`
}

type addTransactionRequest struct {
    CompteID *int64                 `json:"compteId"`
    Montant  *float64               `json:"montant"`
    Date     string                 `json:"date"`
    Type     ledger.TypeTransaction `json:"type"`
}

type compteResponse struct {
    ID           int64             `json:"id"`
    Solde        float64           `json:"solde"`
    DateCreation string            `json:"dateCreation"`
    Type         ledger.TypeCompte `json:"type"`
}

type transactionResponse struct {
    ID       int64                  `json:"id"`
    CompteID int64                  `json:"compteId"`
    Montant  float64                `json:"montant"`
    Date     string                 `json:"date"`
    Type     ledger.TypeTransaction `json:"type"`
}

type soldeStatsResponse struct {
    Count   int64   `json:"count"`
    Sum     float64 `json:"sum"`
    Average float64 `json:"average"`
}

type transactionStatsResponse struct {
    Count       int64   `json:"count"`
    SumDepots   float64 `json:"sumDepots"`
    SumRetraits float64 `json:"sumRetraits"`
}

func toCompteResponse(c ledger.Compte) compteResponse {
    return compteResponse{
        ID:           c.ID,
        Solde:        ledger.AmountFloat(c.Solde),
        DateCreation: ledger.FormatDate(c.DateCreation),
        Type:         c.Type,
    }
}

func toTransactionResponse(t ledger.Transaction) transactionResponse {
    return transactionResponse{
        ID:       t.ID,
        CompteID: t.CompteID,
        Montant:  ledger.AmountFloat(t.Montant),
        Date:     ledger.FormatDate(t.Date),
        Type:     t.Type,
    }
}

func toTransactionResponses(list []ledger.Transaction) []transactionResponse {
    out := make([]transactionResponse, 0, len(list))
    for _, t := range list { out = append(out, toTransactionResponse(t)) }
    return out
}
