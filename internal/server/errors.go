package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/observability"
	"github.com/matzehuels/seqdiag/pkg/render"
	"github.com/matzehuels/seqdiag/pkg/seq"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	if stderrors.Is(err, render.ErrConverterMissing) {
		return http.StatusNotImplemented
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeSyntax:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidIDPrefix:
		return http.StatusBadRequest
	case errors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// bodyFor builds the error response for err. Internal errors are not
// echoed to the client.
func bodyFor(err error, status int) errorBody {
	code := string(errors.GetCode(err))
	switch {
	case status == http.StatusNotImplemented:
		code = string(errors.ErrCodeUnsupported)
	case code == "" || status == http.StatusInternalServerError:
		return errorBody{Code: string(errors.ErrCodeInternal), Message: "internal error"}
	}
	b := errorBody{Code: code, Message: errors.UserMessage(err)}
	if status == http.StatusNotImplemented {
		b.Message = err.Error()
	}
	if line, ok := seq.ErrorLine(err); ok {
		b.Line = line
	}
	return b
}

// fail logs err and writes the matching error response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
		observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	writeError(w, status, bodyFor(err, status))
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// routePattern returns the matched chi route, so metrics are labelled by
// route rather than by raw path.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
