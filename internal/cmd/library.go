package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/voigtlab/gslc/internal/config"
	"github.com/voigtlab/gslc/internal/dnamat"
)

// libraryCmd is for reading directly from the configured sequence library,
// independent of any assembly.
var libraryCmd = &cobra.Command{
	Use:                        "library",
	Short:                      "Inspect the configured sequence library",
	SuggestionsMinimumDistance: 2,
}

var libraryGetCmd = &cobra.Command{
	Use:     "get <name>",
	Short:   "Print a sequence from the library by name",
	Args:    cobra.ExactArgs(1),
	Run:     runLibraryGetCmd,
	Example: "  gslc library get pTEF1-linker",
}

func init() {
	libraryCmd.AddCommand(libraryGetCmd)
	RootCmd.AddCommand(libraryCmd)
}

func runLibraryGetCmd(cmd *cobra.Command, args []string) {
	config.Setup("")
	cfg := config.New()

	if cfg.LibraryDSN == "" {
		log.Fatal("no library-dsn configured")
	}

	lib, err := dnamat.OpenDuckDBLibrary(cfg.LibraryDSN)
	if err != nil {
		log.Fatalf("open sequence library: %v", err)
	}
	defer lib.Close()

	seq, ok := lib.Get(args[0])
	if !ok {
		log.Fatalf("no sequence named %q in library", args[0])
	}

	fmt.Println(seq)
}
