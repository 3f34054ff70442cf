package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/warp/vacation-planner/cli"
	"github.com/warp/vacation-planner/render"
)

func main() {
	if err := cli.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading .env: %v\n", err)
		os.Exit(cli.ExitFailure)
	}

	var root cli.Root
	parser, err := cli.NewParser(&root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitFailure)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger, err := cli.NewLogger(root.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitConfig)
	}

	color := isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("NO_COLOR") == ""
	appCtx := &cli.Context{
		Out:      os.Stdout,
		Log:      logger,
		Renderer: render.NewRenderer(color),
	}

	if err := kctx.Run(appCtx); err != nil {
		logger.WithError(err).Debug("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
