package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/seqdiag/pkg/observability"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = 0

// RequestID returns the id assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID reuses a well-formed incoming X-Request-ID or assigns a new
// UUID, and echoes it in the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logRequests logs one line per request once it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status(ww),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", RequestID(r.Context()))
	})
}

// instrument reports requests to the registered HTTP hooks.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)
		hooks.OnResponse(r.Context(), r.Method, routePattern(r), status(ww), time.Since(start))
	})
}

// status is the response code, which net/http defaults to 200 when the
// handler never calls WriteHeader.
func status(ww middleware.WrapResponseWriter) int {
	if code := ww.Status(); code != 0 {
		return code
	}
	return http.StatusOK
}
