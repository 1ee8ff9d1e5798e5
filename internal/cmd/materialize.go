package cmd

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jinzhu/copier"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/voigtlab/gslc/internal/config"
	"github.com/voigtlab/gslc/internal/dnamat"
)

// materializeCmd drives the materializer against a JSON assembly fixture, a
// stand-in for the (out-of-scope) GSL parser's output. It exists for manual
// testing of the materialization pipeline.
var materializeCmd = &cobra.Command{
	Use:                        "materialize [assembly.json]",
	Short:                      "Materialize a parsed assembly fixture into DNA slices",
	Run:                        runMaterializeCmd,
	SuggestionsMinimumDistance: 2,
	Args:                       cobra.ExactArgs(1),
	Long: `Decode a JSON assembly fixture and run it through the full
materialization pipeline, printing each emitted DNA slice.`,
	Example: `  gslc materialize ./testdata/assembly.json`,
}

func init() {
	RootCmd.AddCommand(materializeCmd)
}

func runMaterializeCmd(cmd *cobra.Command, args []string) {
	config.Setup("")
	cfg := config.New()

	asm, err := loadAssemblyFixture(args[0])
	if err != nil {
		log.Fatal(err)
	}

	// Defensive copy of the decoded parts before they reach the expander.
	// Multi-part normalization is an identity pass and mutates nothing; the
	// copy keeps the decoded fixture independent of the expander regardless.
	safeParts := make([]dnamat.PPP, len(asm.Parts))
	if err := copier.Copy(&safeParts, &asm.Parts); err != nil {
		log.Fatal(err)
	}
	asm.Parts = safeParts

	m := buildMaterializer(cfg)
	slices, err := m.Expand(asm)
	if err != nil {
		log.Fatal(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.TabIndent)
	fmt.Fprintf(w, "breed\tslice\tsource\tdest\tlen\tdescription\n")
	for _, s := range slices {
		fmt.Fprintf(w, "%s\t%s\t%s:%d-%d\t%d-%d\t%d\t%s\n",
			s.Breed, s.SliceType, s.SourceChr, s.SourceFrom, s.SourceTo,
			s.DestFrom, s.DestTo, s.Len(), s.Description)
	}
	w.Flush()
}

func buildMaterializer(cfg *config.Config) *dnamat.Materializer {
	genomes := dnamat.NewRefGenomeSet()
	for name, rg := range cfg.RefGenomes {
		if rg.DSN == "" {
			continue
		}
		genome, err := dnamat.OpenDuckDBRefGenome(name, rg.DSN, cfg.Flank(name, 0))
		if err != nil {
			log.Fatalf("open reference genome %q: %v", name, err)
		}
		genomes.Register(genome)
	}

	var library dnamat.SeqLibrary
	if cfg.LibraryDSN != "" {
		lib, err := dnamat.OpenDuckDBLibrary(cfg.LibraryDSN)
		if err != nil {
			log.Fatalf("open sequence library: %v", err)
		}
		library = lib
	}

	var external dnamat.ExternalPartResolver
	if cfg.ExternalPartsURL != "" {
		external = dnamat.NewHTTPExternalPartResolver(cfg.ExternalPartsURL, nil)
	}

	var candidateProxy dnamat.CandidateProxy
	if cfg.CandidateProxyURL != "" {
		base := dnamat.NewHTTPCandidateProxy(nil)
		if cfg.CandidateCacheAddr != "" {
			rdb := redis.NewClient(&redis.Options{Addr: cfg.CandidateCacheAddr})
			ttl := cfg.CandidateCacheTTL
			if ttl == 0 {
				ttl = 24 * time.Hour
			}
			candidateProxy = dnamat.NewCachedCandidateProxy(base, rdb, ttl)
		} else {
			candidateProxy = base
		}
	}

	var linkerChecker dnamat.LinkerChecker
	if cfg.LinkerDB != "" {
		checker, err := dnamat.NewFileLinkerChecker(cfg.LinkerDB)
		if err != nil {
			log.Fatalf("load linker database: %v", err)
		}
		linkerChecker = checker
	}

	return &dnamat.Materializer{
		Genomes:           genomes,
		Library:           library,
		External:          external,
		CandidateProxy:    candidateProxy,
		CandidateProxyURL: cfg.CandidateProxyURL,
		LinkerChecker:     linkerChecker,
		DefaultGenome:     cfg.DefaultRefGenome,
		ApproxMargin:      cfg.ApproxMargin,
		MarkerGeneName:    cfg.MarkerGeneName,
	}
}
