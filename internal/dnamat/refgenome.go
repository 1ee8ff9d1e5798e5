package dnamat

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
)

// RefGenome is the reference-genome collaborator contract: lookup by gene
// name, a default flank width, and a chromosome DNA fetch.
type RefGenome interface {
	Name() string
	Flank() int
	IsValid(gene string) bool
	Get(gene string) (Feature, error)
	DNA(tag, chr string, left, right int) (string, error)
}

// RefGenomeSet resolves a reference genome by name, the first step of the
// source resolution order a PPP's pragmas and the assembly's pragmas feed
// into.
type RefGenomeSet interface {
	Genome(name string) (RefGenome, bool)
	Names() []string
}

// feature is the in-memory Feature implementation backing memRefGenome.
type feature struct {
	name  string
	chrom string
	left  int
	right int
	fwd   bool
}

func (f feature) Name() string  { return f.name }
func (f feature) Chrom() string { return f.chrom }
func (f feature) Left() int     { return f.left }
func (f feature) Right() int    { return f.right }
func (f feature) Forward() bool { return f.fwd }

// memRefGenome is an in-process reference genome: a small map held
// entirely in memory, suited to tests and small genomes.
type memRefGenome struct {
	name     string
	flank    int
	features map[string]feature
	chroms   map[string]string
}

// NewMemRefGenome returns an empty in-memory reference genome. Features and
// chromosome sequences are loaded with AddFeature/AddChromSeq; this is the
// backing store only, not a genome-file loader.
func NewMemRefGenome(name string, flank int) *memRefGenome {
	return &memRefGenome{
		name:     name,
		flank:    flank,
		features: map[string]feature{},
		chroms:   map[string]string{},
	}
}

// AddFeature registers a gene at a 0-based, half-open-free [left,right]
// span on chrom.
func (g *memRefGenome) AddFeature(name, chrom string, left, right int, fwd bool) {
	g.features[strings.ToUpper(name)] = feature{name: strings.ToUpper(name), chrom: chrom, left: left, right: right, fwd: fwd}
}

// AddChromSeq registers the full sequence for a chromosome, used to answer
// DNA fetches.
func (g *memRefGenome) AddChromSeq(chrom, seq string) {
	g.chroms[chrom] = strings.ToUpper(seq)
}

func (g *memRefGenome) Name() string { return g.name }
func (g *memRefGenome) Flank() int   { return g.flank }

func (g *memRefGenome) IsValid(gene string) bool {
	_, ok := g.features[strings.ToUpper(gene)]
	return ok
}

func (g *memRefGenome) Get(gene string) (Feature, error) {
	f, ok := g.features[strings.ToUpper(gene)]
	if !ok {
		return nil, &MaterializeError{Kind: ErrUnknownGene, Msg: fmt.Sprintf("unknown gene %q in genome %q", gene, g.name)}
	}
	return f, nil
}

func (g *memRefGenome) DNA(tag, chr string, left, right int) (string, error) {
	seq, ok := g.chroms[chr]
	if !ok {
		return "", fmt.Errorf("%s: no sequence loaded for chromosome %q", tag, chr)
	}
	if left < 0 || right >= len(seq) || left > right {
		return "", fmt.Errorf("%s: out-of-range genomic fetch [%d,%d] on %s (length %d)", tag, left, right, chr, len(seq))
	}
	return seq[left : right+1], nil
}

// memRefGenomeSet is a RefGenomeSet backed by a name->genome map. It holds
// any RefGenome implementation, in-memory or DuckDB-backed alike.
type memRefGenomeSet struct {
	genomes map[string]RefGenome
}

// NewRefGenomeSet returns an empty genome set.
func NewRefGenomeSet() *memRefGenomeSet {
	return &memRefGenomeSet{genomes: map[string]RefGenome{}}
}

// Register adds or replaces a genome under its own name.
func (s *memRefGenomeSet) Register(g RefGenome) {
	s.genomes[g.Name()] = g
}

func (s *memRefGenomeSet) Genome(name string) (RefGenome, bool) {
	g, ok := s.genomes[name]
	if !ok {
		return nil, false
	}
	return g, true
}

func (s *memRefGenomeSet) Names() []string {
	names := maps.Keys(s.genomes)
	return names
}
