// Command banter is a terminal chat client for a remote chat service.
//
// Usage:
//
//	banter [flags]              interactive chat
//	banter ask [flags] <text>   send one message and print the reply
//
// Settings are read from an optional YAML file (--config), a .env file in
// the working directory and BANTER_* environment variables. Flags win.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.LookupEnv).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "banter: %v\n", err)
		stop()
		os.Exit(1)
	}
}
