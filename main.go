package main

import (
	"fmt"
	"os"

	"github.com/haguru/sakura/config"
	"github.com/haguru/sakura/internal/app"
)

func main() {
	// create and initialize the app
	app, err := app.NewApp(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	// serve until interrupted
	if err := app.Run(); err != nil {
		app.Logger.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
}
