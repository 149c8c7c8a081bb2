package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/stockkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/stockkeeper/internal/client/cli"
	"github.com/dmitrijs2005/stockkeeper/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
