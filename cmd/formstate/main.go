// Command formstate renders, validates and interactively fills declarative
// forms.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &app{out: os.Stdout, errOut: os.Stderr}
	if err := newRootCmd(app).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errInvalidForm) {
			fmt.Fprintf(os.Stderr, "formstate: %v\n", err)
		}
		os.Exit(1)
	}
}
