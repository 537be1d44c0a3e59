package log

import (
	"log/slog"
	"os"
)

// SetupLogger installs a JSON slog handler on slog.Default, wrapped so
// records carrying an error attribute also get a stacktrace attribute.
// The level string comes from config ("debug", "info", "warn",
// "error"); anything else falls back to info.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stderr, &ops)
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))
}

// ToLogLevel maps a config-file level string to a slog.Level. Unknown
// strings map to info rather than failing startup.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Attribute keys the error-formatting handler looks for and emits.
const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr wraps an error for passing to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
