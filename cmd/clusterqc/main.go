// clusterqc - Spectrum clustering quality evaluation tool
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ChrisMcGann/clusterqc/cmd/clusterqc/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
