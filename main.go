package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nojimay/jack/cli"
	"github.com/nojimay/jack/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error(
			"run failed",
			slog.Any("error", err),
		) // non-pretty slog handlers resolve LogValue(); pretty ones print Error()
		os.Exit(1)
	}
}
