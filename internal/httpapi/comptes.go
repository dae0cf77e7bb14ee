package httpapi

import (
    "context"
    "net/http"

    "github.com/tinoosan/banque/internal/errs"
    "github.com/tinoosan/banque/internal/ledger"
    "github.com/tinoosan/banque/internal/service/compte"
)

type ctxKey string

const (
    ctxKeySaveCompte     ctxKey = "validatedSaveCompte"
    ctxKeyAddTransaction ctxKey = "validatedAddTransaction"
)

// validateSaveCompte decodes POST /v1/comptes, runs the account rules without
// persisting and stores the request in the context for the handler.
func (s *Server) validateSaveCompte() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            if !requireJSON(w, r) { return }
            var body saveCompteRequest
            if err := decodeStrict(r, &body); err != nil {
                badRequest(w, "invalid JSON: "+err.Error())
                return
            }
            if body.Solde == nil {
                s.writeServiceErr(w, r, errs.InvalidFormat("solde is required"))
                return
            }
            req := compte.Request{Solde: *body.Solde, DateCreation: body.DateCreation, Type: body.Type}
            if body.ID != nil { req.ID = *body.ID }
            if _, err := s.comptes.Build(req); err != nil {
                s.writeServiceErr(w, r, err)
                return
            }
            ctx := context.WithValue(r.Context(), ctxKeySaveCompte, req)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

func (s *Server) saveCompte(w http.ResponseWriter, r *http.Request) {
    req, ok := r.Context().Value(ctxKeySaveCompte).(compte.Request)
    if !ok {
        writeErr(w, http.StatusInternalServerError, "validated request missing", "INTERNAL")
        return
    }
    c, err := s.comptes.Save(r.Context(), req)
    if err != nil {
        s.writeServiceErr(w, r, err)
        return
    }
    status := http.StatusCreated
    if req.ID != 0 { status = http.StatusOK }
    toJSON(w, status, toCompteResponse(c))
}

func (s *Server) listComptes(w http.ResponseWriter, r *http.Request) {
    list, err := s.comptes.All(r.Context())
    if err != nil {
        s.writeServiceErr(w, r, err)
        return
    }
    out := make([]compteResponse, 0, len(list))
    for _, c := range list { out = append(out, toCompteResponse(c)) }
    toJSON(w, http.StatusOK, out)
}

func (s *Server) getCompte(w http.ResponseWriter, r *http.Request) {
    id, err := pathID(r)
    if err != nil {
        s.writeServiceErr(w, r, err)
        return
    }
    c, err := s.comptes.ByID(r.Context(), id)
    if err != nil {
        s.writeServiceErr(w, r, err)
        return
    }
    toJSON(w, http.StatusOK, toCompteResponse(c))
}

func (s *Server) listCompteTransactions(w http.ResponseWriter, r *http.Request) {
    id, err := pathID(r)
    if err != nil {
        s.writeServiceErr(w, r, err)
        return
    }
    list, err := s.transactions.ForCompte(r.Context(), id)
    if err != nil {
        s.writeServiceErr(w, r, err)
        return
    }
    toJSON(w, http.StatusOK, toTransactionResponses(list))
}

func (s *Server) soldeStats(w http.ResponseWriter, r *http.Request) {
    st, err := s.comptes.TotalSolde(r.Context())
    if err != nil {
        s.writeServiceErr(w, r, err)
        return
    }
    toJSON(w, http.StatusOK, soldeStatsResponse{
        Count:   st.Count,
        Sum:     ledger.AmountFloat(st.Sum),
        Average: st.Average,
    })
}
