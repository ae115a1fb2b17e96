// Package logger records diagnostics in a rotating file under the config
// directory. Command output meant for the user never goes through it.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/momentum/internal/constants"
)

// Field keys shared by every call site so log lines can be filtered by key.
const (
	KeyCommand   = "command"
	KeyComponent = "component"
	KeyDay       = "day"
	KeyDriver    = "driver"
	KeyError     = "error"
	KeyGoal      = "goal"
	KeyKeySource = "key_source"
	KeyOp        = "op"
	KeyPath      = "path"
	KeyVersion   = "version"
)

const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

// Logger is nil until Init runs. The package helpers are no-ops until then,
// so library code and tests can log unconditionally.
var Logger *log.Logger

var file *lumberjack.Logger

type Config struct {
	// Debug lowers the level to debug and mirrors every line to Stderr.
	Debug     bool
	ConfigDir string
	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

// LogFile returns the path of the rotating log file under configDir.
func LogFile(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

// Init replaces the global logger. Lines are written in logfmt so the file
// stays greppable by the Key* fields.
func Init(cfg Config) error {
	path := LogFile(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := Close(); err != nil {
		return err
	}

	file = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}

	var w io.Writer = file
	level := log.WarnLevel
	if cfg.Debug {
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		w = io.MultiWriter(stderr, file)
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          constants.AppName,
		Formatter:       log.LogfmtFormatter,
	})
	return nil
}

// Close releases the log file. Logging after Close is a no-op.
func Close() error {
	Logger = nil
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

// Fields carries key/value pairs attached to every line logged through it.
type Fields []any

// With returns Fields holding keyvals, typically a KeyComponent pair.
func With(keyvals ...any) Fields {
	return Fields(keyvals)
}

func (f Fields) merge(keyvals []any) []any {
	out := make([]any, 0, len(f)+len(keyvals))
	out = append(out, f...)
	return append(out, keyvals...)
}

func (f Fields) Debug(msg string, keyvals ...any) { Debug(msg, f.merge(keyvals)...) }
func (f Fields) Info(msg string, keyvals ...any)  { Info(msg, f.merge(keyvals)...) }
func (f Fields) Warn(msg string, keyvals ...any)  { Warn(msg, f.merge(keyvals)...) }
func (f Fields) Error(msg string, keyvals ...any) { Error(msg, f.merge(keyvals)...) }

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
