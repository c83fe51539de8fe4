package logger

import (
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// HandlePanic logs a recovered panic with its stack trace. It must be
// deferred directly.
func HandlePanic(log zerolog.Logger) {
	r := recover()
	if r == nil {
		return
	}
	log.Error().
		Caller().
		Str("error", fmt.Sprint(r)).
		Str("stack_trace", string(debug.Stack())).
		Msg("Recovered from panic")
}
