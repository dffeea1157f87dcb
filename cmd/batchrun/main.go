package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aryankumar/batchrun/internal/cli"
	"github.com/aryankumar/batchrun/internal/util"
)

func main() {
	ctx := util.SetupSignalHandler()

	if err := cli.Execute(ctx); err != nil {
		slog.Debug("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", util.FriendlyError(err))
		os.Exit(1)
	}
}
