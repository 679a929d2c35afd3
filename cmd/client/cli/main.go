package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mpavlovs/authkeep/internal/buildinfo"
	"github.com/mpavlovs/authkeep/internal/client/cli"
	"github.com/mpavlovs/authkeep/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
