// Cookbook is a terminal recipe book: browse the bundled seafood recipes and
// add your own.
//
// Usage:
//
//	cookbook [--verbose] [--quiet] [--store sqlite|file|memory] <command>
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, a := newRootCmd()
	err := root.ExecuteContext(ctx)
	if cerr := a.teardown(); cerr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", cerr)
	}
	if err == nil {
		return
	}
	// Failures the user already saw as an alert only set the exit code.
	if !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}
