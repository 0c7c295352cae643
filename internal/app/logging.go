package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel orders log records by severity.
type LogLevel int

// Log levels, least severe first. LogLevelOff disables output.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelOff
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "OFF"}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

var levelAliases = map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
	"off":     LogLevelOff,
	"none":    LogLevelOff,
}

// ParseLogLevel maps a logging.level value to a LogLevel. Case and
// surrounding space are ignored; unknown names give LogLevelInfo.
func ParseLogLevel(s string) LogLevel {
	if l, ok := levelAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l
	}
	return LogLevelInfo
}

// field is one key/value attached to a logger.
type field struct {
	key   string
	value any
}

// Logger writes leveled, single-line log records. Fields attached with
// WithFields are kept sorted by key so records are stable.
// Its Debug/Info/Warn/Error methods satisfy execctx.Logger.
type Logger struct {
	mu     sync.Mutex
	level  LogLevel
	output io.Writer
	prefix string
	fields []field
	now    func() time.Time
}

// LoggerConfig holds the settings NewLogger starts from.
type LoggerConfig struct {
	Level  LogLevel
	Output io.Writer // nil means os.Stderr
	Prefix string
}

// DefaultLoggerConfig logs INFO and above to stderr.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LogLevelInfo,
		Output: os.Stderr,
		Prefix: "vhdlalign",
	}
}

func NewLogger(cfg LoggerConfig) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{level: cfg.Level, output: out, prefix: cfg.Prefix, now: time.Now}
}

// WithField is WithFields with a single entry.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields derives a logger that appends fields to every record. A key
// already present on l is replaced.
func (l *Logger) WithFields(extra map[string]any) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	merged := make([]field, 0, len(l.fields)+len(extra))
	for _, f := range l.fields {
		if _, replaced := extra[f.key]; !replaced {
			merged = append(merged, f)
		}
	}
	for key, value := range extra {
		merged = append(merged, field{key: key, value: value})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].key < merged[j].key })

	return &Logger{
		level:  l.level,
		output: l.output,
		prefix: l.prefix,
		fields: merged,
		now:    l.now,
	}
}

// WithComponent returns a new logger tagged with the subsystem name
// (config, dispatcher, renderer).
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// Level returns the minimum log level.
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetLevel sets the minimum log level. It is driven by the logging.level
// setting, so a config reload changes verbosity without a restart.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Debug, Info, Warn and Error format msg with args as fmt.Sprintf does.
func (l *Logger) Debug(format string, args ...any) { l.log(LogLevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LogLevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LogLevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LogLevelError, format, args...) }

// log writes one record: timestamp, level, prefix, message, fields.
func (l *Logger) log(level LogLevel, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.output == nil || level < l.level || l.level >= LogLevelOff {
		return
	}

	now := time.Now
	if l.now != nil {
		now = l.now
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	var sb strings.Builder
	sb.WriteString(now().Format("2006-01-02T15:04:05.000"))
	fmt.Fprintf(&sb, " [%s] ", level)
	if l.prefix != "" {
		sb.WriteString(l.prefix)
		sb.WriteString(": ")
	}
	sb.WriteString(msg)
	writeFields(&sb, l.fields)
	sb.WriteByte('\n')

	_, _ = io.WriteString(l.output, sb.String())
}

func writeFields(sb *strings.Builder, fields []field) {
	if len(fields) == 0 {
		return
	}
	sb.WriteString(" {")
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "%s=%v", f.key, f.value)
	}
	sb.WriteByte('}')
}

// NullLogger drops every record.
var NullLogger = &Logger{level: LogLevelOff}

var (
	globalMu     sync.Mutex
	globalLogger *Logger
)

// GetLogger returns the process-wide logger, creating one from
// DefaultLoggerConfig the first time.
func GetLogger() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = NewLogger(DefaultLoggerConfig())
	}
	return globalLogger
}

// SetLogger replaces the process-wide logger. The CLI calls it once the
// -log-file flag is known.
func SetLogger(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// Logger is the application's logger, or the process-wide one before
// bootstrap has set it.
func (app *Application) Logger() *Logger {
	if app.logger != nil {
		return app.logger
	}
	return GetLogger()
}
