package cmd

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/voigtlab/gslc/internal/config"
	"github.com/voigtlab/gslc/internal/dnamat"
)

// refgenomeCmd is for inspecting the reference genomes configured for this
// install: which are registered, and what a gene resolves to in one of them.
var refgenomeCmd = &cobra.Command{
	Use:                        "refgenome",
	Short:                      "Inspect configured reference genomes",
	SuggestionsMinimumDistance: 2,
}

var refgenomeListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the reference genomes configured in config.yaml",
	Run:     runRefGenomeListCmd,
	Example: "  gslc refgenome list",
}

var refgenomeGeneCmd = &cobra.Command{
	Use:     "gene <name>",
	Short:   "Look up a gene's coordinates in a reference genome",
	Args:    cobra.ExactArgs(1),
	Run:     runRefGenomeGeneCmd,
	Example: "  gslc refgenome gene ADH1 --genome sacCer3",
}

func init() {
	refgenomeGeneCmd.Flags().StringP("genome", "g", "", "reference genome name (defaults to the configured default)")

	refgenomeCmd.AddCommand(refgenomeListCmd)
	refgenomeCmd.AddCommand(refgenomeGeneCmd)
	RootCmd.AddCommand(refgenomeCmd)
}

func runRefGenomeListCmd(cmd *cobra.Command, args []string) {
	config.Setup("")
	cfg := config.New()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.TabIndent)
	fmt.Fprintf(w, "name\tflank\tdefault\n")
	for name, rg := range cfg.RefGenomes {
		isDefault := ""
		if name == cfg.DefaultRefGenome {
			isDefault = "*"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, rg.Flank, isDefault)
	}
	w.Flush()
}

func runRefGenomeGeneCmd(cmd *cobra.Command, args []string) {
	config.Setup("")
	cfg := config.New()

	genomeName, _ := cmd.Flags().GetString("genome")
	if genomeName == "" {
		genomeName = cfg.DefaultRefGenome
	}

	rgCfg, ok := cfg.RefGenomes[genomeName]
	if !ok {
		log.Fatalf("no reference genome configured under name %q", genomeName)
	}
	if rgCfg.DSN == "" {
		log.Fatalf("reference genome %q has no dsn configured", genomeName)
	}

	genome, err := dnamat.OpenDuckDBRefGenome(genomeName, rgCfg.DSN, cfg.Flank(genomeName, 0))
	if err != nil {
		log.Fatalf("open reference genome %q: %v", genomeName, err)
	}
	defer genome.Close()

	feat, err := genome.Get(args[0])
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s\t%s:%d-%d\tforward=%t\n", feat.Name(), feat.Chrom(), feat.Left(), feat.Right(), feat.Forward())
}
