package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

type Logger struct{}

// Log is the process wide logger. It is usable before DoConfigureLogger runs.
var Log *Logger

func (l *Logger) ZDebug() *zerolog.Event {
	return zlog.Debug()
}

func (l *Logger) ZInfo() *zerolog.Event {
	return zlog.Info()
}

func (l *Logger) ZWarn() *zerolog.Event {
	return zlog.Warn()
}

func (l *Logger) Debug(msg string, err ...error) {
	withErr(zlog.Debug(), err).Msg(msg)
}

func (l *Logger) Debugf(msg string, args ...interface{}) {
	zlog.Debug().Msg(fmt.Sprintf(msg, args...))
}

func (l *Logger) Info(msg string, err ...error) {
	withErr(zlog.Info(), err).Msg(msg)
}

func (l *Logger) Infof(msg string, args ...interface{}) {
	zlog.Info().Msg(fmt.Sprintf(msg, args...))
}

func (l *Logger) Warn(msg string, err ...error) {
	withErr(zlog.Warn(), err).Msg(msg)
}

func (l *Logger) Warnf(msg string, args ...interface{}) {
	zlog.Warn().Msg(fmt.Sprintf(msg, args...))
}

func (l *Logger) Error(msg string, err ...error) {
	withErr(zlog.Error(), err).Msg(msg)
}

func (l *Logger) Errorf(msg string, args ...interface{}) {
	zlog.Error().Msg(fmt.Sprintf(msg, args...))
}

func (l *Logger) Fatal(msg string, err ...error) {
	withErr(zlog.Fatal(), err).Msg(msg)
}

func (l *Logger) Fatalf(msg string, args ...interface{}) {
	zlog.Fatal().Msg(fmt.Sprintf(msg, args...))
}

func withErr(event *zerolog.Event, err []error) *zerolog.Event {
	if len(err) == 1 {
		return event.Err(err[0])
	}
	return event
}

// DoConfigureLogger points the global logger at stderr and, when logPath is set, at that
// file as well. Stdout is left to command output. Unknown levels fall back to info.
func DoConfigureLogger(logPath string, logLevel string, prettyLogging bool) {
	var out io.Writer = os.Stderr
	if len(logPath) > 0 {
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			panic(err)
		}
		out = io.MultiWriter(os.Stderr, file)
	}

	if prettyLogging {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: out})
	} else {
		zlog.Logger = zlog.Output(out)
	}

	zerolog.SetGlobalLevel(parseLevel(logLevel))
}

func parseLevel(logLevel string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil || level == zerolog.NoLevel || logLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}
