package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/coinkeeper/internal/cli"
	"github.com/dmitrijs2005/coinkeeper/internal/config"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}
	log := logging.Setup(os.Stderr, cfg.LogLevel, !term.IsTerminal(int(os.Stderr.Fd())))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, db, err := cli.Bootstrap(ctx, cfg, os.Stdin, os.Stdout, log)
	if err != nil {
		return err
	}
	defer db.Close()

	app.Run(ctx)
	return nil
}
