// Package observability lets a host program observe seqdiag without the
// libraries importing a metrics backend.
//
// The pipeline, cache and HTTP packages report events to whichever hooks
// are installed. Nothing is installed by default, so events are dropped.
// The serve command installs [NewPrometheus] when metrics are enabled:
//
//	p := observability.NewPrometheus(reg)
//	observability.SetPipelineHooks(p)
//	observability.SetCacheHooks(p)
//	observability.SetHTTPHooks(p)
//	defer observability.Reset()
//
// Libraries look the hooks up at the call site:
//
//	observability.Pipeline().OnParseStart(ctx, len(src))
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives the start and end of each pipeline stage.
type PipelineHooks interface {
	OnParseStart(ctx context.Context, sourceBytes int)
	OnParseComplete(ctx context.Context, participants, events int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, lanes int)
	OnLayoutComplete(ctx context.Context, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is "layout" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives server traffic. route is the matched chi pattern,
// never the raw path.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
	// OnError is called for handler errors and recovered panics.
	OnError(ctx context.Context, method, route string, err error)
}

// NoopPipelineHooks discards pipeline events.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnParseComplete(context.Context, int, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, time.Duration, error)           {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks discards cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks discards HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// slot holds one installed hook set, falling back to def.
type slot[T any] struct {
	mu  sync.RWMutex
	cur T
	def T
}

func newSlot[T any](def T) *slot[T] {
	return &slot[T]{cur: def, def: def}
}

func (s *slot[T]) load() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// store installs h; a nil h leaves the current hooks in place.
func (s *slot[T]) store(h T) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	s.cur = s.def
	s.mu.Unlock()
}

var (
	pipelineSlot = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetPipelineHooks installs h for pipeline events. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.store(h) }

// SetCacheHooks installs h for cache events. Nil is ignored.
func SetCacheHooks(h CacheHooks) { cacheSlot.store(h) }

// SetHTTPHooks installs h for server events. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) { httpSlot.store(h) }

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.load() }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheSlot.load() }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.load() }

// Reset uninstalls every hook set.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
