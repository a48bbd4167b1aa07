package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/clothsim/pkg/errors"
)

// newLogger builds the stderr logger shared by render and config. Each line
// carries a centisecond timestamp so per-frame debug output stays ordered.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// openLogFile builds the logger for `clothsim run`. The alternate screen
// belongs to the cloth view, so session logs go to the --log-file path,
// appended across sessions, or are dropped when the flag is unset. The
// returned close function is never nil.
func openLogFile(path string, level log.Level) (*log.Logger, func() error, error) {
	if path == "" {
		return newLogger(io.Discard, level), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "open log file %s", path)
	}
	return newLogger(f, level), f.Close, nil
}

// progress times a headless simulation and logs its summary line.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time: "Simulated 120 frames (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger RootCommand attached before the
// subcommand ran, or log.Default() outside a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
