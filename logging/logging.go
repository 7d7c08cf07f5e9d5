// Package logging installs the global zerolog logger. The TUI owns the
// terminal, so interactive runs log to a file under the XDG state directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logFile = "termjong/termjong.log"

// Path returns the log file used when file is empty.
func Path(file string) (string, error) {
	if file != "" {
		return file, nil
	}
	return xdg.StateFile(logFile)
}

// Setup opens the log file (appending) and routes the global logger to it.
// The returned closer closes the file.
func Setup(level, file string) (io.Closer, error) {
	path, err := Path(file)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	if err := To(f, level); err != nil {
		f.Close()
		return nil, err
	}
	log.Debug().Str("path", path).Msg("logging started")
	return f, nil
}

// To routes the global logger to w as JSON lines at the given level.
func To(w io.Writer, level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}

// Console routes the global logger to stderr in human-readable form.
func Console(level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	return nil
}

func parseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", level, err)
	}
	return lvl, nil
}
