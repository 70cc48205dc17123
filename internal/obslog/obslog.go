// Package obslog provides the CLI's leveled logging, replacing the
// boolean-global Logf/Printf helpers this is adapted from with a
// slog.Logger and the verbose/quiet toggles as level plumbing.
package obslog

import (
	"log/slog"
	"os"
	"sync"
)

var (
	mu       sync.Mutex
	level    = new(slog.LevelVar)
	logger   = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	quietOut = false
)

func init() {
	level.Set(slog.LevelInfo)
}

// Logger returns the process-wide logger. Commands should prefer this
// over slog.Default() so SetJSON/SetVerbose take effect uniformly.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// SetVerbose drops the logger to debug level when true, info otherwise.
func SetVerbose(verbose bool) {
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// SetQuiet records the quiet setting that IsQuiet reports, independent
// of the logger's level. This package suppresses no output based on it.
func SetQuiet(quiet bool) {
	mu.Lock()
	quietOut = quiet
	mu.Unlock()
}

func IsQuiet() bool {
	mu.Lock()
	defer mu.Unlock()
	return quietOut
}

// SetJSON switches the handler to JSON output, for scripted/CI
// consumption of revctl's logs.
func SetJSON(json bool) {
	mu.Lock()
	defer mu.Unlock()
	if json {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
}

// Debug logs build/plan step detail, visible only with --verbose.
func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }

// Warn logs a non-fatal condition (a skipped malformed manifest, a
// manifest watch error).
func Warn(msg string, args ...any) { Logger().Warn(msg, args...) }

// Error logs a command failure before it is returned to cobra.
func Error(msg string, args ...any) { Logger().Error(msg, args...) }
