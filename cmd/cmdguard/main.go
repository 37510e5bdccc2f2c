// Package main is the entry point for the cmdguard CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/xdg/cmdguard/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.Execute(ctx)
	stop()

	if err != nil {
		var exitErr *cmd.ExitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(cmd.ExitError)
	}
}
