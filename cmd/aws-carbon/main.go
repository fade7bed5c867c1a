package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/diillson/aws-carbon-emissions-go/internal/adapter/driven/config"
	"github.com/diillson/aws-carbon-emissions-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-carbon-emissions-go/internal/bootstrap"
	"github.com/diillson/aws-carbon-emissions-go/pkg/version"
)

func main() {
	// Cancela polls e extrações em andamento no Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewCLIApp(version.Version, config.NewConfigRepository(), bootstrap.Build)

	if err := app.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
