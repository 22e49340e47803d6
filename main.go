package main

import (
	"log"
	"os"

	"corpus-count/internal"
	"corpus-count/internal/common"
	"corpus-count/internal/ui"
)

func main() {
	logger, err := internal.NewLogger(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	app := ui.PrepareConsoleApp(logger)
	if err = app.RunContext(common.WaitSignal(), os.Args); err != nil {
		_ = logger.Sync()
		log.Fatal(err)
	}
}
