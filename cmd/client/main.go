package main

import (
	"context"
	"log"
	"os"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/buildinfo"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/cli"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
