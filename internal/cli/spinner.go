package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// batchSpinner animates "Rendering n/total" while a batch renders. A nil
// *batchSpinner is valid and draws nothing, so callers need not check
// whether stderr is a terminal at every step.
type batchSpinner struct {
	out   io.Writer
	total int
	done  atomic.Int32

	quit   chan struct{}
	exited chan struct{}
	once   sync.Once
	width  int // longest line drawn, guarded by the draw goroutine
}

// startBatchSpinner begins drawing to out. It stops on Stop or when ctx is
// done, whichever happens first.
func startBatchSpinner(ctx context.Context, out io.Writer, total int) *batchSpinner {
	s := &batchSpinner{
		out:    out,
		total:  total,
		quit:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *batchSpinner) run(ctx context.Context) {
	defer close(s.exited)
	ticker := time.NewTicker(spinnerTick)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			s.clear()
			return
		case <-s.quit:
			s.clear()
			return
		case <-ticker.C:
			label := s.label()
			s.width = max(s.width, len(label))
			fmt.Fprintf(s.out, "\r%s %s",
				styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)]),
				StyleDim.Render(label))
		}
	}
}

func (s *batchSpinner) label() string {
	return fmt.Sprintf("Rendering %d/%d", s.done.Load(), s.total)
}

func (s *batchSpinner) clear() {
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width+2))
}

// Advance counts one finished diagram. Safe for concurrent use.
func (s *batchSpinner) Advance() {
	if s == nil {
		return
	}
	s.done.Add(1)
}

// Stop erases the spinner line and waits for the draw goroutine to exit.
// Calling it more than once is fine.
func (s *batchSpinner) Stop() {
	if s == nil {
		return
	}
	s.once.Do(func() { close(s.quit) })
	<-s.exited
}
