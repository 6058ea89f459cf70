package log

import (
	"io"
	"os"
	"time"

	config "github.com/provscan/explorer-ingest/configs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

const serviceName = "explorer-ingest"

// InitLogger replaces the zerolog global logger with the service default.
func InitLogger() {
	log.Logger = NewLogger("main")
}

// NewLogger builds a component-tagged logger. Level and output format come
// from the log section of the config; an unparseable level falls back to warn.
func NewLogger(component string) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level := zerolog.WarnLevel
	if lvl, err := zerolog.ParseLevel(config.Cfg.Log.Level); err == nil && lvl != zerolog.NoLevel {
		level = lvl
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stderr
	if config.Cfg.Log.Prettify {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Str("component", component).
		Logger()
}
