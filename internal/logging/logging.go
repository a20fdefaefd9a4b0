package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"companybar/internal/config"
)

// Setup points the standard logrus logger at a rotated log file. The
// terminal belongs to the UI, so nothing is written to stdout or stderr.
// The returned closer flushes and closes the file.
func Setup(settings config.LogSettings) (io.Closer, error) {
	level, err := logrus.ParseLevel(settings.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", settings.Level, err)
	}
	logrus.SetLevel(level)
	if settings.File == "" {
		logrus.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}

	logFile := &lumberjack.Logger{
		Filename:   settings.File,
		MaxSize:    settings.MaxSizeMB,
		MaxBackups: settings.MaxBackups,
		MaxAge:     28,
		Compress:   true,
	}

	logrus.SetOutput(logFile)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	return logFile, nil
}
