package engine

import (
	"fmt"
	"os"
	"runtime/debug"
)

// PanicHandler receives a recovered panic value
type PanicHandler func(r any)

// DefaultPanicHandler prints the panic and stack to stderr and exits
func DefaultPanicHandler(r any) {
	fmt.Fprintf(os.Stderr, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Exit(1)
}

// Go runs fn on a new goroutine, routing a panic to handler
func Go(fn func(), handler PanicHandler) {
	if handler == nil {
		handler = DefaultPanicHandler
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				handler(r)
			}
		}()
		fn()
	}()
}
