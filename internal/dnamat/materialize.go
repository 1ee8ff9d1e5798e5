package dnamat

import (
	"fmt"
	"strings"
)

// Materializer holds every collaborator the part materializers need:
// the genome/library backing stores, the external-part resolver and
// candidate proxy, an optional linker checker, and the genome-scoped
// defaults applied when a PPP does not override them.
type Materializer struct {
	Genomes  RefGenomeSet
	Library  SeqLibrary
	External ExternalPartResolver

	CandidateProxy    CandidateProxy
	CandidateProxyURL string

	LinkerChecker LinkerChecker

	DefaultGenome  string
	ApproxMargin   int
	MarkerGeneName string
}

// materialize dispatches ppp's part to the matching part-kind materializer.
func (m *Materializer) materialize(ppp PPP, dnaSource string, asmPragmas PragmaSet) (DNASlice, error) {
	switch p := ppp.Part.(type) {
	case MarkerPart:
		return m.materializeMarker(ppp, dnaSource)
	case InlineDNAPart:
		return m.materializeInline(ppp, p, dnaSource)
	case GenePart:
		return m.materializeGene(ppp, p, dnaSource, asmPragmas)
	case ExternalIDPart:
		return m.materializeExternal(ppp, p, dnaSource)
	case FusionMarkerPart:
		return m.fusionSlice(), nil
	default:
		return DNASlice{}, fmt.Errorf("materialize: unsupported part kind %T", ppp.Part)
	}
}

// materializeMarker fetches the configured marker gene from the sequence
// library. Missing library entry is fatal.
func (m *Materializer) materializeMarker(ppp PPP, dnaSource string) (DNASlice, error) {
	if m.Library == nil {
		return DNASlice{}, &MaterializeError{Kind: ErrMissingMarker, Loc: ppp.Loc, Msg: fmt.Sprintf("marker gene %q requested but no sequence library is configured", m.MarkerGeneName)}
	}
	seq, ok := m.Library.Get(m.MarkerGeneName)
	if !ok {
		return DNASlice{}, &MaterializeError{Kind: ErrMissingMarker, Loc: ppp.Loc, Msg: fmt.Sprintf("marker gene %q not found in sequence library", m.MarkerGeneName)}
	}

	dna := seq
	desc := m.MarkerGeneName + " marker"
	if ppp.Reversed {
		dna = reverseComplement(dna)
		desc = "!" + desc
	}

	template := dna
	return DNASlice{
		DNA:         dna,
		SourceChr:   "library",
		SourceFrom:  0,
		SourceTo:    len(seq) - 1,
		SourceFwd:   true,
		DestFwd:     !ppp.Reversed,
		Template:    &template,
		Amplified:   false,
		SliceType:   SliceMarker,
		Breed:       BreedMarker,
		Description: desc,
		Pragmas:     ppp.Pragmas,
		DNASource:   dnaSource,
	}, nil
}

// materializeInline uses the literal DNA written directly in the source.
func (m *Materializer) materializeInline(ppp PPP, p InlineDNAPart, dnaSource string) (DNASlice, error) {
	dna := strings.ToUpper(p.Literal)
	desc := p.Literal
	if ppp.Reversed {
		dna = reverseComplement(dna)
		desc = "!" + desc
	}

	template := dna
	return DNASlice{
		DNA:         dna,
		SourceChr:   "inline",
		SourceFrom:  0,
		SourceTo:    len(dna) - 1,
		SourceFwd:   true,
		DestFwd:     !ppp.Reversed,
		Template:    &template,
		Amplified:   false,
		SliceType:   SliceInline,
		Breed:       BreedInline,
		Description: desc,
		Pragmas:     ppp.Pragmas,
		DNASource:   dnaSource,
	}, nil
}

// fusionSlice returns the sentinel slice requested by a FUSION_MARKER part
// or a "fuse" pragma: empty DNA, no template, breed VIRTUAL. It carries its
// own empty pragma set rather than the preceding part's.
func (m *Materializer) fusionSlice() DNASlice {
	return DNASlice{
		SliceType:   SliceFusion,
		Breed:       BreedVirtual,
		Description: "::",
		Pragmas:     NewPragmaSet(),
	}
}

// materializeExternal delegates to the configured external-part resolver.
func (m *Materializer) materializeExternal(ppp PPP, p ExternalIDPart, dnaSource string) (DNASlice, error) {
	if m.External == nil {
		return DNASlice{}, fmt.Errorf("external part %q referenced but no external-part resolver is configured", p.PartID)
	}
	slice, err := m.External.FetchSequence(m.Library, ppp, p.PartID)
	if err != nil {
		return DNASlice{}, fmt.Errorf("external part %q: %w", p.PartID, err)
	}
	slice.Pragmas = ppp.Pragmas
	slice.DNASource = dnaSource
	return slice, nil
}

// materializeGene handles a GENE_PART: resolve prefix/breed, resolve the
// active reference genome, fold modifiers into a final slice, then dispatch
// to the genomic or library materializer depending on where the stripped
// gene name resolves.
func (m *Materializer) materializeGene(ppp PPP, p GenePart, dnaSource string, asmPragmas PragmaSet) (DNASlice, error) {
	if len(p.Gene) < 2 {
		return DNASlice{}, &MaterializeError{Kind: ErrUnknownPrefix, Loc: ppp.Loc, Msg: fmt.Sprintf("malformed gene reference %q", p.Gene)}
	}
	prefix := p.Gene[0]
	geneName := p.Gene[1:]

	kind, breed, err := initialBreed(prefix)
	if err != nil {
		if me, ok := err.(*MaterializeError); ok {
			me.Loc = ppp.Loc
		}
		return DNASlice{}, err
	}

	if err := validateSliceModifiers(p.Modifiers, kind, ppp.Loc); err != nil {
		return DNASlice{}, err
	}
	if err := validateLinker(m.LinkerChecker, p.Linker, ppp.Loc); err != nil {
		return DNASlice{}, err
	}

	refgenomeName := resolveRefGenomeName(ppp, asmPragmas, m.DefaultGenome)
	genome, hasGenome := m.Genomes.Genome(refgenomeName)
	if !hasGenome {
		return DNASlice{}, &MaterializeError{
			Kind: ErrMissingRefGenome,
			Loc:  ppp.Loc,
			Msg:  fmt.Sprintf("reference genome %q not loaded; available: %s", refgenomeName, strings.Join(m.Genomes.Names(), ", ")),
		}
	}

	finalSlice, finalKind := applyModifiers(canonicalSlice(kind, genome.Flank()), kind, genome.Flank(), p.Modifiers)
	if finalKind != kind {
		breed = breedForKind(finalKind)
	}

	var slice DNASlice
	if genome.IsValid(geneName) {
		slice, err = m.materializeGenomicGene(ppp, geneName, genome, finalSlice, breed, dnaSource)
	} else {
		if m.Library == nil {
			return DNASlice{}, &MaterializeError{Kind: ErrUnknownGene, Loc: ppp.Loc, Msg: fmt.Sprintf("gene %q not found in reference genome %q and no sequence library is configured", geneName, refgenomeName)}
		}
		if _, ok := m.Library.Get(geneName); !ok {
			return DNASlice{}, &MaterializeError{Kind: ErrUnknownGene, Loc: ppp.Loc, Msg: fmt.Sprintf("gene %q not found in reference genome %q or the sequence library", geneName, refgenomeName)}
		}
		if verr := validateLibrarySlice(finalSlice, ppp.Loc); verr != nil {
			return DNASlice{}, verr
		}
		slice, err = m.materializeLibraryGene(ppp, geneName, finalSlice, dnaSource)
	}
	if err != nil {
		return DNASlice{}, err
	}

	m.attachCandidates(&slice, geneName)
	return slice, nil
}

// materializeLibraryGene projects a final slice onto a library sequence and
// extracts the subsequence it denotes. source_from/to report library-local
// 0-based offsets, not genomic ones.
func (m *Materializer) materializeLibraryGene(ppp PPP, geneName string, s Slice, dnaSource string) (DNASlice, error) {
	seq, _ := m.Library.Get(geneName)
	length := len(seq)

	project := func(pos RelPos) int {
		if pos.End == FivePrime {
			return pos.Offset
		}
		return length + 1 + pos.Offset
	}

	x := project(s.Left)
	y := project(s.Right)

	if x < 1 || y < x || y > length {
		return DNASlice{}, &MaterializeError{Kind: ErrInvalidSlice, Loc: ppp.Loc, Msg: fmt.Sprintf("library gene %q slice [%d,%d] out of range for a %d-base sequence", geneName, x, y, length)}
	}

	dna := seq[x-1 : y]
	if ppp.Reversed {
		dna = reverseComplement(dna)
	}

	desc := geneName
	if ppp.Reversed {
		desc = "!" + desc
	}

	template := dna
	return DNASlice{
		DNA:         dna,
		SourceChr:   "library",
		SourceFrom:  x - 1,
		SourceTo:    y - 1,
		SourceFwd:   true,
		DestFwd:     !ppp.Reversed,
		Template:    &template,
		Amplified:   false,
		SliceType:   SliceRegular,
		Breed:       BreedX,
		Description: desc,
		Pragmas:     ppp.Pragmas,
		DNASource:   dnaSource,
	}, nil
}

// materializeGenomicGene projects a final slice onto the reference genome,
// widening approximate endpoints, fetching the genomic span, and applying
// strand- and orientation-driven reverse-complementation.
func (m *Materializer) materializeGenomicGene(ppp PPP, geneName string, genome RefGenome, finalSlice Slice, breed Breed, dnaSource string) (DNASlice, error) {
	feat, err := genome.Get(geneName)
	if err != nil {
		if me, ok := err.(*MaterializeError); ok {
			me.Loc = ppp.Loc
		}
		return DNASlice{}, err
	}

	approxSlice := widenApprox(finalSlice, m.ApproxMargin)

	leftPhys := adjustToPhysical(feat, approxSlice.Left)
	rightPhys := adjustToPhysical(feat, approxSlice.Right)

	var left, right int
	lApprox, rApprox := finalSlice.LApprox, finalSlice.RApprox
	if feat.Forward() {
		if leftPhys > rightPhys {
			return DNASlice{}, &MaterializeError{Kind: ErrNegativeLength, Loc: ppp.Loc, Msg: fmt.Sprintf("%s: negatively lengthed DNA on forward-strand feature", geneName)}
		}
		left, right = leftPhys, rightPhys
	} else {
		if rightPhys > leftPhys {
			return DNASlice{}, &MaterializeError{Kind: ErrNegativeLength, Loc: ppp.Loc, Msg: fmt.Sprintf("%s: negatively lengthed DNA on reverse-strand feature", geneName)}
		}
		left, right = rightPhys, leftPhys
		lApprox, rApprox = rApprox, lApprox
	}

	dna, err := genome.DNA(geneName, feat.Chrom(), left, right)
	if err != nil {
		return DNASlice{}, err
	}
	dna = strings.ToUpper(dna)

	if !feat.Forward() {
		dna = reverseComplement(dna)
		lApprox, rApprox = rApprox, lApprox
	}

	desc := geneName
	if ppp.Reversed {
		dna = reverseComplement(dna)
		lApprox, rApprox = rApprox, lApprox
		desc = "!" + desc
	}

	if breed == BreedX {
		breed = refineBreed(approxSlice)
	}

	template := dna
	return DNASlice{
		DNA:              dna,
		SourceChr:        feat.Chrom(),
		SourceFrom:       left,
		SourceTo:         right,
		SourceFwd:        feat.Forward(),
		SourceFromApprox: lApprox,
		SourceToApprox:   rApprox,
		DestFwd:          !ppp.Reversed,
		Template:         &template,
		Amplified:        true,
		SliceType:        SliceRegular,
		Breed:            breed,
		Description:      desc,
		Pragmas:          ppp.Pragmas,
		DNASource:        dnaSource,
	}, nil
}

// attachCandidates runs the candidate lookup step: only breeds U and D
// get a query; every other breed keeps an empty candidate list.
func (m *Materializer) attachCandidates(slice *DNASlice, geneName string) {
	if m.CandidateProxy == nil || m.CandidateProxyURL == "" {
		return
	}
	var prefix string
	switch slice.Breed {
	case BreedUpstream:
		prefix = "US_"
	case BreedDownstream:
		prefix = "DS_"
	default:
		return
	}
	slice.ExternalCandidates = m.CandidateProxy.FetchCandidates(m.CandidateProxyURL, prefix+geneName, string(slice.Breed))
}
