package dnamat

// canonicalSlice returns the canonical initial slice for a gene-part kind,
// per the canonical-slice-by-kind table. flank is the genome-configurable upstream/downstream
// window size; it is only consulted by KindUpstream/KindDownstream.
func canonicalSlice(kind GeneKind, flank int) Slice {
	switch kind {
	case KindPromoter:
		return Slice{Left: RelPos{-500, FivePrime}, Right: RelPos{-1, FivePrime}, LApprox: true}
	case KindUpstream:
		return Slice{Left: RelPos{-flank, FivePrime}, Right: RelPos{-1, FivePrime}, LApprox: true}
	case KindTerminator:
		return Slice{Left: RelPos{1, ThreePrime}, Right: RelPos{500, ThreePrime}, RApprox: true}
	case KindDownstream:
		return Slice{Left: RelPos{1, ThreePrime}, Right: RelPos{flank, ThreePrime}, RApprox: true}
	case KindFusableORF:
		return Slice{Left: RelPos{1, FivePrime}, Right: RelPos{-4, ThreePrime}}
	case KindMRNA:
		return Slice{Left: RelPos{1, FivePrime}, Right: RelPos{200, ThreePrime}, RApprox: true}
	default: // KindORF
		return Slice{Left: RelPos{1, FivePrime}, Right: RelPos{-1, ThreePrime}}
	}
}

// applyModifiers folds a part's modifier list over its canonical initial
// slice. A DotMod changes the effective gene kind (and so resets the
// baseline to that kind's canonical slice before later modifiers apply); a
// SliceModifier overrides whichever sides it carries. Callers must run
// validateSliceModifiers first — this function assumes a legal mods list.
func applyModifiers(initial Slice, kind GeneKind, flank int, mods []Modifier) (Slice, GeneKind) {
	result := initial
	for _, mod := range mods {
		switch v := mod.(type) {
		case DotMod:
			switch v.Name {
			case "up":
				kind = KindUpstream
			case "down":
				kind = KindDownstream
			case "mrna":
				kind = KindMRNA
			}
			result = canonicalSlice(kind, flank)
		case SliceModifier:
			if v.Left != nil {
				result.Left = *v.Left
				result.LApprox = v.LApprox
			}
			if v.Right != nil {
				result.Right = *v.Right
				result.RApprox = v.RApprox
			}
		}
	}
	return result, kind
}

// widenApprox widens each approximate endpoint of s outward by margin: the
// left side (if approximate) moves further negative, the right side (if
// approximate) moves further positive, each skipping the no-zero gap.
func widenApprox(s Slice, margin int) Slice {
	out := s
	if s.LApprox {
		out.Left = RelPos{Offset: shiftRelOffset(s.Left.Offset, -margin), End: s.Left.End}
	}
	if s.RApprox {
		out.Right = RelPos{Offset: shiftRelOffset(s.Right.Offset, margin), End: s.Right.End}
	}
	return out
}

// breedForKind returns the breed implied by a gene kind reached via a
// DotMod (UPSTREAM/DOWNSTREAM/MRNA only carry one possible breed each,
// unlike ORF which depends on the originating prefix).
func breedForKind(kind GeneKind) Breed {
	switch kind {
	case KindUpstream:
		return BreedUpstream
	case KindDownstream:
		return BreedDownstream
	case KindMRNA:
		return BreedGST
	default:
		return BreedX
	}
}
