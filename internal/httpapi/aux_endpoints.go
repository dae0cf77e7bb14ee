package httpapi

import (
    "context"
    "net/http"
    "time"

    "github.com/tinoosan/banque/internal/dictionary"
)

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

// readyz pings the store with a short deadline.
func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
    if s.ready == nil {
        w.WriteHeader(http.StatusOK)
        return
    }
    ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
    defer cancel()
    if err := s.ready.Ready(ctx); err != nil {
        s.log.Warn("store not ready", "req_id", reqID(r), "err", err)
        writeErr(w, http.StatusServiceUnavailable, "store unavailable", "NOT_READY")
        return
    }
    w.WriteHeader(http.StatusOK)
}

// GET /v1/dictionary/types?kind=compte|transaction
func (s *Server) getTypesDictionary(w http.ResponseWriter, r *http.Request) {
    kind := r.URL.Query().Get("kind")
    if kind != "" && !dictionary.ValidKind(kind) {
        writeErr(w, http.StatusUnprocessableEntity, "unknown kind "+kind, "INVALID_FORMAT")
        return
    }
    out := struct {
        Items []dictionary.Group `json:"items"`
    }{Items: dictionary.Groups(kind)}
    toJSON(w, http.StatusOK, out)
}
