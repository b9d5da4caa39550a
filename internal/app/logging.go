package app

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/neovide/neovide/internal/cmdline"
	"github.com/neovide/neovide/internal/settings"
)

// LogLevelEnv overrides the log level (debug, info, warn, error).
const LogLevelEnv = "NEOVIDE_LOG"

const (
	logFileName    = "neovide.log"
	logMaxSizeMB   = 10
	logMaxBackups  = 1
	fileLogDefault = slog.LevelDebug
)

// initLogger installs the process logger. With --log, records go to
// neovide.log in the working directory (rotated at 10 MB, one backup kept)
// and errors are also written to stderr. Otherwise only errors reach stderr.
func initLogger(s *settings.Settings) error {
	cmd := settings.Get[cmdline.CmdLineSettings](s)

	var handler slog.Handler
	if cmd.LogToFile {
		level, err := parseLevel(os.Getenv(LogLevelEnv), fileLogDefault)
		file := &lumberjack.Logger{
			Filename:   logFileName,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
		}
		handler = slogmulti.Fanout(
			slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}),
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}),
		)
		slog.SetDefault(slog.New(handler))
		return err
	}

	level, err := parseLevel(os.Getenv(LogLevelEnv), slog.LevelError)
	handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return err
}

func parseLevel(value string, fallback slog.Level) (slog.Level, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return fallback, errors.New("invalid " + LogLevelEnv + " value " + value)
	}
	return level, nil
}
