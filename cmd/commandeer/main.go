// Command commandeer is the dispatch entrypoint invoked by session launchers.
//
//	commandeer record --file testcmds/cmds.json --command git -- status --short
//	commandeer replay --file testcmds/cmds.json --command git -- status --short
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ruffel/commandeer/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
