package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/andrebq/hijackbox/cmd/hijackbox/serve"
	"github.com/andrebq/hijackbox/cmd/hijackbox/token"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "hijackbox",
		Usage: "A deliberately broken web app to demo session hijacking and phishing",
		Commands: []*cli.Command{
			serve.Cmd(),
			token.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
		os.Exit(1)
	}
}
