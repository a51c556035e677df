package logger

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// ConsoleLogger writes human-readable log lines to stderr, optionally
// colorized by level.
type ConsoleLogger struct {
	level      Level
	color      bool
	baseFields []Field
}

// NewConsole creates a console logger with the given minimum level.
func NewConsole(level Level, color bool) *ConsoleLogger {
	return &ConsoleLogger{level: level, color: color}
}

func (c *ConsoleLogger) Debug(msg string, fields ...Field) { c.write(LevelDebug, msg, fields) }
func (c *ConsoleLogger) Info(msg string, fields ...Field)  { c.write(LevelInfo, msg, fields) }
func (c *ConsoleLogger) Warn(msg string, fields ...Field)  { c.write(LevelWarn, msg, fields) }
func (c *ConsoleLogger) Error(msg string, fields ...Field) { c.write(LevelError, msg, fields) }

func (c *ConsoleLogger) WithFields(fields ...Field) Logger {
	return &ConsoleLogger{
		level:      c.level,
		color:      c.color,
		baseFields: mergeFields(c.baseFields, fields),
	}
}

func (c *ConsoleLogger) Close() error { return nil }

func (c *ConsoleLogger) write(level Level, msg string, fields []Field) {
	if level < c.level {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("15:04:05.000"))
	b.WriteByte(' ')
	b.WriteString(c.tag(level))
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, f := range mergeFields(c.baseFields, fields) {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	b.WriteByte('\n')
	os.Stderr.WriteString(b.String())
}

func (c *ConsoleLogger) tag(level Level) string {
	if !c.color {
		return fmt.Sprintf("%-5s", level.String())
	}
	var code string
	switch level {
	case LevelDebug:
		code = "\033[36m"
	case LevelInfo:
		code = "\033[32m"
	case LevelWarn:
		code = "\033[33m"
	case LevelError:
		code = "\033[31m"
	}
	return fmt.Sprintf("%s%-5s\033[0m", code, level.String())
}
