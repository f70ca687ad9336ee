package debug

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// logger is shared by the category log and the always-on warnings.
var logger = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.TimeOnly,
}).With().Timestamp().Logger()

// SetOutput redirects all log output. Tests use it to capture diagnostics.
func SetOutput(w io.Writer) {
	logger = zerolog.New(w).With().Timestamp().Logger()
}

// Warn reports a recovered failure. Warnings are emitted in every build
// because they explain why a row was drawn without decoration.
func Warn(cat Category, err error, msg string) {
	logger.Warn().Str("category", string(cat)).Err(err).Msg(msg)
}
