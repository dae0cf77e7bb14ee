package httpapi

import (
    "context"
    "net/http"
    "runtime/debug"
    "time"

    chimw "github.com/go-chi/chi/v5/middleware"
    "github.com/google/uuid"
    "log/slog"
)

const headerRequestID = "X-Request-Id"

// requestID tags each request with the caller's X-Request-Id or a fresh UUID.
// The id is stored under chi's key so chimw.GetReqID keeps working.
func requestID(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        id := r.Header.Get(headerRequestID)
        if id == "" { id = uuid.NewString() }
        w.Header().Set(headerRequestID, id)
        ctx := context.WithValue(r.Context(), chimw.RequestIDKey, id)
        next.ServeHTTP(w, r.WithContext(ctx))
    })
}

func reqID(r *http.Request) string { return chimw.GetReqID(r.Context()) }

// requestLogger logs basic request info at INFO.
func requestLogger(l *slog.Logger) func(next http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
            start := time.Now()

            id := reqID(r)
            l.Info("request started", "req_id", id, "method", r.Method, "path", r.URL.Path)

            next.ServeHTTP(ww, r)

            l.Info("request complete",
                "req_id", id,
                "status", ww.Status(),
                "bytes", ww.BytesWritten(),
                "duration", time.Since(start).String(),
            )
        })
    }
}

// recoverer logs panics as ERROR and returns 500.
func recoverer(l *slog.Logger) func(next http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            defer func() {
                if rec := recover(); rec != nil {
                    l.Error("panic", "req_id", reqID(r), "err", rec, "stack", string(debug.Stack()))
                    writeErr(w, http.StatusInternalServerError, "internal error", "INTERNAL")
                }
            }()
            next.ServeHTTP(w, r)
        })
    }
}
