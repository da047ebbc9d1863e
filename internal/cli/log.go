package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat prints wall-clock time to the hundredth of a second.
const logTimeFormat = "15:04:05.00"

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// progress logs the elapsed time of a batch when it finishes, e.g.
// "Rendered 3 diagrams (12ms)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Infof("%s (%s)", msg, elapsed)
}
