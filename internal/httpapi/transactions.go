package httpapi

import (
    "context"
    "net/http"

    "github.com/tinoosan/banque/internal/errs"
    "github.com/tinoosan/banque/internal/ledger"
    "github.com/tinoosan/banque/internal/service/transaction"
)

// validateAddTransaction decodes POST /v1/transactions and checks that the
// required fields are present. Business rules run in the service.
func (s *Server) validateAddTransaction() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            if !requireJSON(w, r) { return }
            var body addTransactionRequest
            if err := decodeStrict(r, &body); err != nil {
                badRequest(w, "invalid JSON: "+err.Error())
                return
            }
            switch {
            case body.CompteID == nil:
                s.writeServiceErr(w, r, errs.InvalidFormat("compteId is required"))
                return
            case body.Montant == nil:
                s.writeServiceErr(w, r, errs.InvalidFormat("montant is required"))
                return
            }
            req := transaction.Request{CompteID: *body.CompteID, Montant: *body.Montant, Date: body.Date, Type: body.Type}
            ctx := context.WithValue(r.Context(), ctxKeyAddTransaction, req)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

func (s *Server) addTransaction(w http.ResponseWriter, r *http.Request) {
    req, ok := r.Context().Value(ctxKeyAddTransaction).(transaction.Request)
    if !ok {
        writeErr(w, http.StatusInternalServerError, "validated request missing", "INTERNAL")
        return
    }
    t, err := s.transactions.Add(r.Context(), req)
    if err != nil {
        s.writeServiceErr(w, r, err)
        return
    }
    toJSON(w, http.StatusCreated, toTransactionResponse(t))
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
    list, err := s.transactions.All(r.Context())
    if err != nil {
        s.writeServiceErr(w, r, err)
        return
    }
    toJSON(w, http.StatusOK, toTransactionResponses(list))
}

func (s *Server) transactionStats(w http.ResponseWriter, r *http.Request) {
    st, err := s.transactions.Stats(r.Context())
    if err != nil {
        s.writeServiceErr(w, r, err)
        return
    }
    toJSON(w, http.StatusOK, transactionStatsResponse{
        Count:       st.Count,
        SumDepots:   ledger.AmountFloat(st.SumDepots),
        SumRetraits: ledger.AmountFloat(st.SumRetraits),
    })
}
