package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ndjsonCore holds the shared file handle for all NDJSONLogger instances
// derived via WithFields.
type ndjsonCore struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NDJSONLogger appends one JSON object per log line to a file.
type NDJSONLogger struct {
	level      Level
	baseFields []Field
	core       *ndjsonCore
}

// NewNDJSON creates an NDJSON logger writing to path, creating parent
// directories as needed.
func NewNDJSON(path string, level Level) (*NDJSONLogger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &NDJSONLogger{
		level: level,
		core:  &ndjsonCore{file: f, enc: json.NewEncoder(f)},
	}, nil
}

func (l *NDJSONLogger) Debug(msg string, fields ...Field) { l.write(LevelDebug, msg, fields) }
func (l *NDJSONLogger) Info(msg string, fields ...Field)  { l.write(LevelInfo, msg, fields) }
func (l *NDJSONLogger) Warn(msg string, fields ...Field)  { l.write(LevelWarn, msg, fields) }
func (l *NDJSONLogger) Error(msg string, fields ...Field) { l.write(LevelError, msg, fields) }

func (l *NDJSONLogger) WithFields(fields ...Field) Logger {
	return &NDJSONLogger{
		level:      l.level,
		baseFields: mergeFields(l.baseFields, fields),
		core:       l.core,
	}
}

func (l *NDJSONLogger) Close() error {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	if l.core.file == nil {
		return nil
	}
	err := l.core.file.Close()
	l.core.file = nil
	return err
}

func (l *NDJSONLogger) write(level Level, msg string, fields []Field) {
	if level < l.level {
		return
	}

	all := mergeFields(l.baseFields, fields)
	entry := make(map[string]any, 3+len(all))
	entry["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["msg"] = msg
	for _, f := range all {
		entry[f.Key] = f.Value
	}

	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	if l.core.file == nil {
		return
	}
	l.core.enc.Encode(entry)
}
