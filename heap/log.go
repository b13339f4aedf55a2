package heap

import (
	"os"

	"github.com/rs/zerolog"
)

// logger is the package-level structured logger. It defaults to a quiet
// stderr writer at warn level so importing this package doesn't spam a
// caller's output; embedding applications can replace it with SetLogger.
var logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel)

// SetLogger replaces the package-level logger used for checker diagnostics
// and heap-growth tracing.
func SetLogger(l zerolog.Logger) {
	logger = l
}
