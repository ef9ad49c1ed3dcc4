package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/logrusorgru/aurora"
	"github.com/rs/zerolog"
)

var once sync.Once
var Log zerolog.Logger

func configureLogger() {
	customTimeFormat := "2006-01-02T15:04:05.000Z07:00"
	zerolog.TimeFieldFormat = customTimeFormat

	output := zerolog.ConsoleWriter{
		Out:         os.Stderr,
		TimeFormat:  customTimeFormat,
		FormatLevel: formatLevel,
	}

	Log = zerolog.New(output).With().Timestamp().Logger()
}

func formatLevel(i interface{}) string {
	level, _ := i.(string)
	label := fmt.Sprintf("%-5s", strings.ToUpper(level))
	switch level {
	case zerolog.LevelDebugValue, zerolog.LevelTraceValue:
		return aurora.Blue(label).String()
	case zerolog.LevelInfoValue:
		return aurora.Green(label).String()
	case zerolog.LevelWarnValue:
		return aurora.Yellow(label).String()
	case zerolog.LevelErrorValue, zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		return aurora.Red(label).String()
	default:
		return label
	}
}

func GetConfigured(level zerolog.Level) *zerolog.Logger {
	once.Do(func() {
		configureLogger()
		zerolog.SetGlobalLevel(level)
	})
	return &Log
}

func Get() *zerolog.Logger {
	once.Do(func() {
		configureLogger()
	})
	return &Log
}
