package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/zillowe/zoi-release/internal/fs"
)

const LogFile = ".zoi-release.log"

// setupLogger configures a logger that writes structured logs to a file
// and clean, human-readable logs to the console.
func setupLogger(stderr io.Writer, logLevel *slog.LevelVar, rd string, env fs.EnvProvider, useColour bool,
) (*slog.Logger, io.Closer, error) {
	logPath := env.Get(fs.LogFileEnvVar)
	if logPath == "" {
		logPath = filepath.Join(rd, LogFile)
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	var logCloser io.Closer
	var handlers []slog.Handler
	if err == nil {
		logCloser = f
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: slog.LevelDebug, // File always gets full debug info
		}))
	}
	handlers = append(handlers, newConsoleHandler(stderr, logLevel, useColour))

	return slog.New(&multiHandler{handlers: handlers}), logCloser, err
}

type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

//nolint:gocritic // slog.Record is passed by value in the interface
func (m *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, record.Level) {
			if err := h.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// consoleHandler prints the message alone, prefixed for warnings and errors.
// Attributes are shown only at debug level, except errors which always are.
type consoleHandler struct {
	w        io.Writer
	level    *slog.LevelVar
	attrs    []slog.Attr
	errorTag string
	warnTag  string
}

func newConsoleHandler(w io.Writer, level *slog.LevelVar, useColour bool) *consoleHandler {
	errC := color.New(color.FgRed, color.Bold)
	warnC := color.New(color.FgHiMagenta)
	if useColour {
		errC.EnableColor()
		warnC.EnableColor()
	} else {
		errC.DisableColor()
		warnC.DisableColor()
	}
	return &consoleHandler{
		w:        w,
		level:    level,
		errorTag: errC.Sprint("Error:"),
		warnTag:  warnC.Sprint("Warning:"),
	}
}

func (c *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level.Level()
}

//nolint:gocritic // slog.Record is passed by value in the interface
func (c *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	switch {
	case record.Level >= slog.LevelError:
		fmt.Fprintf(c.w, "%s %s", c.errorTag, record.Message)
	case record.Level >= slog.LevelWarn:
		fmt.Fprintf(c.w, "%s %s", c.warnTag, record.Message)
	default:
		fmt.Fprint(c.w, record.Message)
	}

	for _, a := range c.attrs {
		c.formatAttr(a, false)
	}
	record.Attrs(func(a slog.Attr) bool {
		c.formatAttr(a, record.Level >= slog.LevelWarn)
		return true
	})

	fmt.Fprintln(c.w)
	return nil
}

// formatAttr writes a. Warnings always carry their attributes because they
// name the file and field that were skipped.
func (c *consoleHandler) formatAttr(a slog.Attr, always bool) {
	if a.Key == "error" || a.Key == "err" {
		fmt.Fprintf(c.w, ": %v", a.Value)
	} else if always || c.level.Level() <= slog.LevelDebug {
		fmt.Fprintf(c.w, " %s=%v", a.Key, a.Value)
	}
}

func (c *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	n := *c
	n.attrs = append(append([]slog.Attr{}, c.attrs...), attrs...)
	return &n
}

func (c *consoleHandler) WithGroup(_ string) slog.Handler {
	return c
}
