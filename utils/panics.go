package utils

import "fmt"

// RecoverWithError turns a panic of the surrounding function into *err.
// Panics carrying an error keep it in the chain.
func RecoverWithError(err *error) {
	rv := recover()
	if rv == nil {
		return
	}
	if rvErr, ok := rv.(error); ok {
		*err = fmt.Errorf("recovered panic: %w", rvErr)
		return
	}
	*err = fmt.Errorf("recovered panic: %v", rv)
}
