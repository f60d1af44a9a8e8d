package logutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"
)

const LevelTrace slog.Level = -8

// NewLogger builds a text logger that names LevelTrace "TRACE" and trims
// source paths to the file name.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				if lvl, ok := attr.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					attr.Value = slog.StringValue("TRACE")
				}
			case slog.SourceKey:
				if source, ok := attr.Value.Any().(*slog.Source); ok {
					source.File = filepath.Base(source.File)
				}
			}
			return attr
		},
	}))
}

// Level maps the debug setting to a level: 0 is info, 1 debug, 2 or more
// trace.
func Level(debug int) slog.Level {
	switch {
	case debug >= 2:
		return LevelTrace
	case debug == 1:
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Trace logs at LevelTrace on l, attributing the record to the caller.
func Trace(l *slog.Logger, msg string, args ...any) {
	ctx := context.Background()
	if l == nil || !l.Enabled(ctx, LevelTrace) {
		return
	}
	pc, _, _, _ := runtime.Caller(1)
	record := slog.NewRecord(time.Now(), LevelTrace, msg, pc)
	record.Add(args...)
	_ = l.Handler().Handle(ctx, record)
}
