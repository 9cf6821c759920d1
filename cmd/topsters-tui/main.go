package main

import (
	"fmt"
	"os"

	"github.com/handiism/topsters/internal/config"
	"github.com/handiism/topsters/internal/logging"
	"github.com/handiism/topsters/internal/tui"
)

func main() {
	// Logs would corrupt the alternate screen.
	cfg := logging.ConfigFromEnv()
	cfg.Level = "disabled"
	logging.Init(cfg)

	settings, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
