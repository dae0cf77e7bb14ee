package httpapi

import (
    "net/http"
    "strconv"

    chi "github.com/go-chi/chi/v5"

    "github.com/tinoosan/banque/internal/errs"
)

// errorResponse is the standard error payload for the REST endpoints.
type errorResponse struct {
    Error string `json:"error"`
    Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
    toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "BAD_REQUEST") }

// writeServiceErr maps a service error to its HTTP status. Infra causes are
// logged, never sent to the client.
func (s *Server) writeServiceErr(w http.ResponseWriter, r *http.Request, err error) {
    kind := errs.KindOf(err)
    switch kind {
    case errs.KindNotFound:
        writeErr(w, http.StatusNotFound, err.Error(), kind.Code())
    case errs.KindInvalidFormat:
        writeErr(w, http.StatusUnprocessableEntity, err.Error(), kind.Code())
    default:
        s.log.Error("request failed", "req_id", reqID(r), "path", r.URL.Path, "err", err)
        writeErr(w, http.StatusInternalServerError, "internal error", kind.Code())
    }
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
    raw := chi.URLParam(r, "id")
    id, err := strconv.ParseInt(raw, 10, 64)
    if err != nil { return 0, errs.InvalidFormat("Invalid id " + strconv.Quote(raw)) }
    return id, nil
}
