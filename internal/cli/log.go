// Package cli implements the forgeboard command-line interface.
//
// The commands inspect the widget catalog and presets, show and change the
// current layout, manage saved layouts and share tokens, open the terminal
// editor and run the HTTP API. The CLI is built using cobra and logs via
// charmbracelet/log.
//
// # Commands
//
//   - catalog: List the widgets that can be placed
//   - presets: List the built-in layouts
//   - layout: Show or change the current layout
//   - saved: Manage named layouts
//   - share, import: Exchange layouts as share tokens
//   - edit: Interactive terminal editor
//   - serve: HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// carried on the [CLI] and on the command context.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a layout write for the command's logger.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts timing with the logger carried on ctx.
func newProgress(ctx context.Context) *progress {
	return &progress{logger: loggerFromContext(ctx), start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Saved layout (12ms)".
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(fmt.Sprintf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond)), keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
