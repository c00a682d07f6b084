package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger holds the logging flags shared by every command, meant to be
// embedded into a go-flags option group.
type Logger struct {
	Level  string `long:"log-level"  env:"LOG_LEVEL"  description:"Logging level"  default:"info"    choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error"`
	Format string `long:"log-format" env:"LOG_FORMAT" description:"Logging format" default:"console" choice:"console" choice:"json"`
}

// Setup applies the selected level and format to the global logger.
// Unknown levels fall back to info.
func (l *Logger) Setup() {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if l.Format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
