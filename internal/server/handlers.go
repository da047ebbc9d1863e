package server

import (
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/seqdiag/pkg/buildinfo"
	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/pipeline"
)

// Response headers describing a render.
const (
	headerCache    = "X-Seqdiag-Cache"
	headerWarnings = "X-Seqdiag-Warnings"
)

// handleRender renders the request body in the format named by the
// "format" query parameter (svg by default). "id" overrides the SVG id
// prefix and "refresh=1" skips cached results.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := errors.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}

	src, ok := s.readBody(w, r)
	if !ok {
		return
	}

	opts := s.defs
	opts.Formats = []string{format}
	opts.Logger = s.logger
	if id := q.Get("id"); id != "" {
		opts.IDPrefix = id
	}
	if refresh, err := strconv.ParseBool(q.Get("refresh")); err == nil {
		opts.Refresh = refresh
	}

	res, err := s.runner.Execute(r.Context(), src, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	cache := "miss"
	if res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit {
		cache = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("ETag", strconv.Quote(res.GeometryHash[:16]+"-"+format))
	w.Header().Set(headerCache, cache)
	w.Header().Set(headerWarnings, strconv.Itoa(res.Stats.Warnings))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Artifacts[format]); err != nil {
		s.logger.Debug("write response", "error", err)
	}
}

// handleParse answers with the structure of the diagram in the body.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	src, ok := s.readBody(w, r)
	if !ok {
		return
	}
	d, err := pipeline.Parse(r.Context(), src, pipeline.Options{Logger: s.logger, MaxSourceBytes: int(s.maxBody)})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Summarize(d))
}

type health struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, health{Status: "ok", Build: buildinfo.Get()})
}

// readBody reads the request body up to the configured limit. On failure
// it writes the error response and returns false.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.fail(w, r, errors.New(errors.ErrCodeTooLarge, "request body exceeds %d bytes", s.maxBody))
			return "", false
		}
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return "", false
	}
	return string(body), true
}
