package logging

import (
	"io"
	"os"
	"path"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config is the configuration of the zerolog logger and writers
type Config struct {
	// WithConsoleLog enables the human readable console writer
	WithConsoleLog bool

	// WithColor enables console writer coloring
	WithColor bool

	// WithLogFile enables logging to a rotated file
	WithLogFile bool

	// Directory to log to when file logging is enabled
	Directory string

	// Filename is the name of the logfile placed inside the directory
	Filename string

	// MaxSize is the max size in MB of the logfile before it's rolled
	MaxSize int

	// MaxBackups is the max number of rolled files to keep
	MaxBackups int

	// MaxAge is the max age in days to keep a logfile
	MaxAge int
}

const TimeFormat = "15:04:05.000"

// Configure sets up the logging framework and returns the root logger.
func Configure(config Config) zerolog.Logger {
	var writers []io.Writer

	if config.WithConsoleLog {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: TimeFormat,
			NoColor:    !config.WithColor,
		})
	}
	if config.WithLogFile {
		writers = append(writers, newRollingFile(config))
	}
	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = zerolog.MultiLevelWriter(writers...)
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func newRollingFile(config Config) io.Writer {
	return &lumberjack.Logger{
		Filename:   path.Join(config.Directory, config.Filename),
		MaxBackups: config.MaxBackups,
		MaxSize:    config.MaxSize,
		MaxAge:     config.MaxAge,
	}
}
