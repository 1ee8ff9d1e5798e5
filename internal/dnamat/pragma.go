package dnamat

// Recognized pragma keys, Unknown pragmas pass through
// unchanged to the emitted DNASlice.
const (
	PragmaRefGenome = "refgenome"
	PragmaDNASource = "dnasrc"
	PragmaName      = "name"
	PragmaURI       = "uri"
	PragmaFuse      = "fuse"
)

// resolveRefGenomeName determines which reference genome a PPP should use:
// its own pragma, else the assembly's, else the configured default.
func resolveRefGenomeName(ppp PPP, assemblyPragmas PragmaSet, defaultName string) string {
	if v, ok := ppp.Pragmas.GetOne(PragmaRefGenome); ok {
		return v
	}
	if v, ok := assemblyPragmas.GetOne(PragmaRefGenome); ok {
		return v
	}
	return defaultName
}

// resolveDNASource determines the dna_source label recorded on a materialized
// slice: PPP dnasrc, else PPP refgenome, else assembly refgenome, else "".
func resolveDNASource(ppp PPP, assemblyPragmas PragmaSet) string {
	if v, ok := ppp.Pragmas.GetOne(PragmaDNASource); ok {
		return v
	}
	if v, ok := ppp.Pragmas.GetOne(PragmaRefGenome); ok {
		return v
	}
	if v, ok := assemblyPragmas.GetOne(PragmaRefGenome); ok {
		return v
	}
	return ""
}
