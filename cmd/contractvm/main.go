package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/empower1/contractvm/cmd/contractvm/cli"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	root := cli.NewCLI(logger.Sugar())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
