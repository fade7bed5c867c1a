package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/diillson/aws-carbon-emissions-go/internal/adapter/driven/config"
	"github.com/diillson/aws-carbon-emissions-go/internal/adapter/driving/handler"
	"github.com/diillson/aws-carbon-emissions-go/internal/bootstrap"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"github.com/diillson/aws-carbon-emissions-go/pkg/console"
)

func main() {
	out := console.NewStructuredConsole(os.Stdout, "json", os.Getenv("CARBON_DEBUG") == "true")
	log := out.Logger()

	cfg := types.DefaultConfig()
	if path := os.Getenv("CARBON_CONFIG_FILE"); path != "" {
		fileCfg, err := config.NewConfigRepository().LoadConfigFile(path)
		if err != nil {
			log.WithError(err).Fatal("loading config file")
		}
		cfg = cfg.Merge(*fileCfg)
	}
	cfg = cfg.Merge(handler.ConfigFromEnv())

	name := os.Getenv("CARBON_HANDLER")
	if err := handler.Validate(name, cfg); err != nil {
		log.WithError(err).WithField("handler", name).Fatal("invalid configuration")
	}

	container, err := bootstrap.Build(context.Background(), cfg, out)
	if err != nil {
		log.WithError(err).Fatal("building dependencies")
	}

	handlers := handler.NewHandlers(
		container.Enumerator,
		container.Index,
		container.Extraction,
		container.Views,
		out,
		cfg,
	)

	fn, err := handlers.Select(name)
	if err != nil {
		log.WithError(err).Fatal("selecting handler")
	}
	log.WithField("handler", name).Info("starting")

	lambda.Start(fn)
}
