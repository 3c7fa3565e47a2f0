package storage

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"pomodoro/internal/core/model"
)

const sessionLogFileName = "session_log.csv"

// SessionLog is an append-only file of session records, one line each.
type SessionLog struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewSessionLog returns a log stored at path. The file and its directory are
// created on first append.
func NewSessionLog(path string, logger *slog.Logger) *SessionLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionLog{path: path, logger: logger}
}

// DefaultSessionLogPath returns the session log location inside configDir.
func DefaultSessionLogPath(configDir string) string {
	return filepath.Join(configDir, sessionLogFileName)
}

// Path returns the file the log writes to.
func (sessionLog *SessionLog) Path() string {
	return sessionLog.path
}

// Append writes record as a single line.
func (sessionLog *SessionLog) Append(record model.Record) error {
	sessionLog.mu.Lock()
	defer sessionLog.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(sessionLog.path), 0o755); err != nil {
		return fmt.Errorf("append session record: create log directory: %w", err)
	}
	file, err := os.OpenFile(sessionLog.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("append session record: %w", err)
	}
	if _, err := file.WriteString(record.Line() + "\n"); err != nil {
		_ = file.Close()
		return fmt.Errorf("append session record: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("append session record: %w", err)
	}

	sessionLog.logger.Debug("session record appended", "path", sessionLog.path, "goal", record.Goal, "focus_minutes", record.FocusMinutes)
	return nil
}

// ReadAll returns every well-formed record in file order. A missing file is
// an empty log; blank lines are ignored and malformed lines are skipped.
func (sessionLog *SessionLog) ReadAll() ([]model.Record, error) {
	sessionLog.mu.Lock()
	defer sessionLog.mu.Unlock()

	file, err := os.Open(sessionLog.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session log: %w", err)
	}
	defer file.Close()

	var records []model.Record
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		record, err := model.ParseRecord(line)
		if err != nil {
			sessionLog.logger.Warn("skipping invalid session log line", "path", sessionLog.path, "line", lineNumber, "error", err)
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("read session log: %w", err)
	}
	return records, nil
}
