package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/portalsync/internal/client/cli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := cli.NewRootCommand()
	root.Version = fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit)

	code := cli.Execute(ctx, root)
	stop()
	os.Exit(code)
}
