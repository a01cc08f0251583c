package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ardnew/jitcalc/cli"
	"github.com/ardnew/jitcalc/cli/cmd"
	"github.com/ardnew/jitcalc/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	if err != nil {
		// Evaluation errors were already reported with their source snippet.
		if !cmd.IsEvaluate(err) {
			log.Error(
				"run failed",
				slog.Any("error", err),
			) // slog automatically uses LogValue()
		}

		os.Exit(1)
	}
}
