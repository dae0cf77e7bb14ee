package httpapi

import (
    "encoding/json"
    "net/http"

    "github.com/tinoosan/banque/internal/graph"
)

// POST /graphql with body {"query", "operationName", "variables"}.
func (s *Server) postGraphQL(w http.ResponseWriter, r *http.Request) {
    if !requireJSON(w, r) { return }
    var req graph.Request
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        badRequest(w, "invalid JSON: "+err.Error())
        return
    }
    s.execGraphQL(w, r, req)
}

// GET /graphql?query=...&operationName=...&variables={json}
func (s *Server) getGraphQL(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query()
    req := graph.Request{Query: q.Get("query"), OperationName: q.Get("operationName")}
    if raw := q.Get("variables"); raw != "" {
        if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
            badRequest(w, "invalid variables: "+err.Error())
            return
        }
    }
    s.execGraphQL(w, r, req)
}

// execGraphQL always answers 200 once the request is well formed; field
// errors travel in the result body.
func (s *Server) execGraphQL(w http.ResponseWriter, r *http.Request, req graph.Request) {
    if req.Query == "" {
        badRequest(w, "query is required")
        return
    }
    res := s.graph.Execute(r.Context(), req)
    if len(res.Errors) > 0 {
        s.log.Debug("graphql errors", "req_id", reqID(r), "operation", req.OperationName, "count", len(res.Errors))
    }
    toJSON(w, http.StatusOK, res)
}
