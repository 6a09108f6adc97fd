package domain

// LogLevel ranks lines recorded on a telemetry vertex. The values match
// log/slog so a level converts with slog.Level(l).
type LogLevel int

// Named levels.
const (
	LogLevelDebug LogLevel = -4
	LogLevelInfo  LogLevel = 0
	LogLevelWarn  LogLevel = 4
	LogLevelError LogLevel = 8
)

// String names the level. Values between named levels round down.
func (l LogLevel) String() string {
	switch {
	case l >= LogLevelError:
		return "error"
	case l >= LogLevelWarn:
		return "warn"
	case l >= LogLevelInfo:
		return "info"
	default:
		return "debug"
	}
}
