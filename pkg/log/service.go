package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	config "github.com/mwantia/pathways/internal/config/server"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerService is the logger handed to every component of the agent.
// Messages are printf-style.
type LoggerService interface {
	Debug(msg string, args ...any)

	Info(msg string, args ...any)

	Warn(msg string, args ...any)

	Error(msg string, args ...any)

	Fatal(msg string, args ...any)

	// Named returns a child logger whose name is appended to the parent's.
	Named(name string) LoggerService

	// With returns a child logger that attaches the given key/value pairs
	// to every entry.
	With(keyvals ...any) LoggerService
}

// LoggerServiceImpl writes text or JSON entries to stdout and/or a rotated file.
type LoggerServiceImpl struct {
	cfg    config.LogServerConfig
	name   string
	level  LogLevel
	fields []field
	out    *output
	exit   func(int)
}

type field struct {
	key   string
	value any
}

// output is shared by a logger and all of its children so concurrent
// entries are never interleaved.
type output struct {
	mu sync.Mutex
	w  io.Writer
}

func (o *output) write(p []byte) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.w.Write(p)
}

type logEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Service   string         `json:"service,omitempty"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// NewLoggerService creates the root logger described by cfg.
func NewLoggerService(name string, cfg config.LogServerConfig) LoggerService {
	// Escape codes only make sense on a terminal.
	if !cfg.Stdout || cfg.File.Path != "" {
		cfg.Color = false
	}
	return &LoggerServiceImpl{
		cfg:   cfg,
		name:  name,
		level: Parse(cfg.Level),
		out:   &output{w: openWriter(cfg)},
		exit:  os.Exit,
	}
}

// NewWriterLogger logs to w only, without colors. Used by tests and the CLI.
func NewWriterLogger(name string, cfg config.LogServerConfig, w io.Writer) LoggerService {
	cfg.Color = false
	return &LoggerServiceImpl{
		cfg:   cfg,
		name:  name,
		level: Parse(cfg.Level),
		out:   &output{w: w},
		exit:  os.Exit,
	}
}

// Discard returns a logger that drops every entry.
func Discard() LoggerService {
	return NewWriterLogger("", config.LogServerConfig{Level: "FATAL"}, io.Discard)
}

func openWriter(cfg config.LogServerConfig) io.Writer {
	var writers []io.Writer
	if cfg.Stdout {
		writers = append(writers, os.Stdout)
	}
	if cfg.File.Path != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		})
	}

	switch len(writers) {
	case 0:
		return io.Discard
	case 1:
		return writers[0]
	}
	return io.MultiWriter(writers...)
}

func (impl *LoggerServiceImpl) log(level LogLevel, msg string, args ...any) {
	if level < impl.level {
		return
	}

	timestamp := time.Now().Format(impl.timeFormat())
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var buf bytes.Buffer
	if impl.cfg.JSON() {
		impl.encodeJSON(&buf, timestamp, level, msg)
	} else {
		impl.encodeText(&buf, timestamp, level, msg)
	}
	impl.out.write(buf.Bytes())

	if level == Fatal {
		impl.exit(1)
	}
}

func (impl *LoggerServiceImpl) encodeJSON(buf *bytes.Buffer, timestamp string, level LogLevel, msg string) {
	entry := logEntry{
		Timestamp: timestamp,
		Level:     level.String(),
		Service:   impl.name,
		Message:   msg,
	}
	if len(impl.fields) > 0 {
		entry.Fields = make(map[string]any, len(impl.fields))
		for _, f := range impl.fields {
			entry.Fields[f.key] = f.value
		}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		data, _ = json.Marshal(logEntry{Timestamp: timestamp, Level: level.String(), Service: impl.name, Message: msg})
	}
	buf.Write(data)
	buf.WriteByte('\n')
}

func (impl *LoggerServiceImpl) encodeText(buf *bytes.Buffer, timestamp string, level LogLevel, msg string) {
	if impl.cfg.Color {
		buf.WriteString(Color(level))
	}
	fmt.Fprintf(buf, "[%s] %-5s", timestamp, level)
	if impl.name != "" {
		fmt.Fprintf(buf, " [%s]", impl.name)
	}
	buf.WriteByte(' ')
	buf.WriteString(msg)
	for _, f := range impl.fields {
		fmt.Fprintf(buf, " %s=%v", f.key, f.value)
	}
	if impl.cfg.Color {
		buf.WriteString(resetColor)
	}
	buf.WriteByte('\n')
}

func (impl *LoggerServiceImpl) Debug(msg string, args ...any) {
	impl.log(Debug, msg, args...)
}

func (impl *LoggerServiceImpl) Info(msg string, args ...any) {
	impl.log(Info, msg, args...)
}

func (impl *LoggerServiceImpl) Warn(msg string, args ...any) {
	impl.log(Warn, msg, args...)
}

func (impl *LoggerServiceImpl) Error(msg string, args ...any) {
	impl.log(Error, msg, args...)
}

// Fatal logs and exits the process with status 1.
func (impl *LoggerServiceImpl) Fatal(msg string, args ...any) {
	impl.log(Fatal, msg, args...)
}

// Named joins name onto the parent name with a slash.
func (impl *LoggerServiceImpl) Named(name string) LoggerService {
	child := impl.child()
	if impl.name != "" {
		name = impl.name + "/" + name
	}
	child.name = name
	return child
}

// With pairs keyvals up as key/value fields. A trailing key without a value
// is logged with the value "MISSING".
func (impl *LoggerServiceImpl) With(keyvals ...any) LoggerService {
	child := impl.child()
	for i := 0; i < len(keyvals); i += 2 {
		f := field{key: fmt.Sprint(keyvals[i]), value: "MISSING"}
		if i+1 < len(keyvals) {
			f.value = keyvals[i+1]
		}
		child.fields = append(child.fields, f)
	}
	return child
}

func (impl *LoggerServiceImpl) child() *LoggerServiceImpl {
	return &LoggerServiceImpl{
		cfg:    impl.cfg,
		name:   impl.name,
		level:  impl.level,
		fields: append([]field(nil), impl.fields...),
		out:    impl.out,
		exit:   impl.exit,
	}
}

func (impl *LoggerServiceImpl) timeFormat() string {
	if impl.cfg.TimeFormat == "" {
		return time.RFC3339
	}
	return impl.cfg.TimeFormat
}
