// Package logger holds the process-wide logger. Output goes to a rotating file
// under the config directory; debug mode mirrors it to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/dayquest/internal/constants"
)

const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

var (
	// Logger is nil until Init. The helpers below drop messages until then.
	Logger *log.Logger

	discard = log.New(io.Discard)
)

type Config struct {
	Debug     bool
	ConfigDir string
	// Level overrides the default of warn (debug with Debug set).
	Level string
}

// Init points the global logger at <ConfigDir>/logs/dayquest.log.
func Init(cfg Config) error {
	level, err := cfg.level()
	if err != nil {
		return err
	}

	dir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	var w io.Writer = &lumberjack.Logger{
		Filename:   filepath.Join(dir, constants.AppName+".log"),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	if cfg.Debug {
		w = io.MultiWriter(os.Stderr, w)
	}

	Logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          constants.AppName,
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return nil
}

func (c Config) level() (log.Level, error) {
	if c.Level != "" {
		l, err := log.ParseLevel(c.Level)
		if err != nil {
			return 0, fmt.Errorf("invalid log level %q: %w", c.Level, err)
		}
		return l, nil
	}
	if c.Debug {
		return log.DebugLevel, nil
	}
	return log.WarnLevel, nil
}

func current() *log.Logger {
	if Logger == nil {
		return discard
	}
	return Logger
}

// With returns a sub-logger tagged with component.
func With(component string) *log.Logger {
	return current().With("component", component)
}

func Debug(msg string, keyvals ...any) { current().Debug(msg, keyvals...) }
func Info(msg string, keyvals ...any)  { current().Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { current().Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { current().Error(msg, keyvals...) }

// Fatal logs at error level and exits with status 1.
func Fatal(msg string, keyvals ...any) {
	current().Error(msg, keyvals...)
	os.Exit(1)
}
