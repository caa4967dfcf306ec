// Package main is the entry point for upim-contact, which lists and creates
// contacts stored as plain-text notes.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/vinicius-lino-figueiredo/upim/internal/cli"
	"github.com/vinicius-lino-figueiredo/upim/internal/config"
	"github.com/vinicius-lino-figueiredo/upim/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	args, err := cli.Parse(argv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "upim-contact: %v\n\n%s", err, cli.Usage())
		return 2
	}
	if args.Help {
		fmt.Print(cli.Usage())
		return 0
	}

	log := newLogger(args.LogLevel)

	workDir, err := os.Getwd()
	if err != nil {
		log.Errorw("failed to get working directory", "error", err)
		return 1
	}
	home, _ := os.UserHomeDir()
	src := config.SearchPaths(home, os.Getenv("XDG_CONFIG_HOME"), workDir)

	cfg, err := config.Load(src, args.ConfPath, config.WithAliasValidator(cli.ValidateAlias))
	if err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				log.Errorw("invalid configuration", "error", e)
			}
		} else {
			log.Errorw("failed to load configuration", "error", err)
		}
		return 1
	}

	if args.LogLevel == "" && cfg.LogLevel != config.DefaultLogLevel {
		log = newLogger(cfg.LogLevel)
	}
	log.Debugw("configuration loaded", "default_collection", cfg.DefaultCollection, "collections", len(cfg.Collections))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := cli.NewApp(cfg, cli.WithLogger(log))
	if err := app.Run(ctx, args); err != nil {
		log.Errorw("command failed", "error", err)
		return 1
	}
	return 0
}

func newLogger(level string) *logger.Logger {
	if level == "" {
		level = config.DefaultLogLevel
	}
	log, err := logger.New(logger.Config{Level: level})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return logger.Nop()
	}
	return log
}
