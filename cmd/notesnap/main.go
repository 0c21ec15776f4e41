package main

import (
	"fmt"
	"os"

	"github.com/notesnap/notesnap/config"
	"github.com/notesnap/notesnap/internal/cli"
	"github.com/notesnap/notesnap/internal/output"
	"github.com/notesnap/notesnap/pkg/sdk"
)

func main() {
	if err := run(); err != nil {
		formatter := output.NewFormatter(os.Stderr)
		formatter.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	deps := &cli.Dependencies{
		Client: sdk.NewClient(cfg.ServerURL, cfg.Token),
		Config: cfg,
	}

	return cli.NewRootCmd(deps).Execute()
}
