// Command booklet-maker re-orders a PDF into a foldable booklet.
//
// Usage:
//
//	booklet-maker input.pdf output.pdf [blank pages to insert at start]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spookylukey/booklet-maker/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stdout, os.Stderr, cli.LogInfo)
	code := c.Run(ctx, os.Args[1:])
	cancel()
	os.Exit(code)
}
