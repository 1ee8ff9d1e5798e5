package main

import (
	"log"

	"github.com/voigtlab/gslc/internal/cmd"
	"github.com/voigtlab/gslc/internal/config"
)

// main sets up the gslc data directory and runs the root command, which
// already has every subcommand registered by internal/cmd.
func main() {
	config.Setup("")

	if err := cmd.RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
