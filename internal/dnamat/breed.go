package dnamat

import "fmt"

// initialBreed maps a gene part's single-character prefix to its initial
// kind and breed, per the breed-prefix table.
func initialBreed(prefix byte) (GeneKind, Breed, error) {
	switch prefix {
	case 'p':
		return KindPromoter, BreedPromoter, nil
	case 't':
		return KindTerminator, BreedTerminator, nil
	case 'u':
		return KindUpstream, BreedUpstream, nil
	case 'd':
		return KindDownstream, BreedDownstream, nil
	case 'o':
		return KindORF, BreedGS, nil
	case 'f':
		return KindFusableORF, BreedFusableORF, nil
	case 'g':
		return KindORF, BreedX, nil
	case 'm':
		return KindMRNA, BreedGST, nil
	}
	return 0, "", &MaterializeError{
		Kind: ErrUnknownPrefix,
		Msg:  fmt.Sprintf("unrecognized part prefix %q", string(rune(prefix))),
	}
}

// near reports whether a and b anchor the same endpoint and differ by less
// than tol.
func near(a, b RelPos, tol int) bool {
	if a.End != b.End {
		return false
	}
	d := a.Offset - b.Offset
	if d < 0 {
		d = -d
	}
	return d < tol
}

// refineBreed re-derives a genomic gene's breed from its final,
// approximation-widened slice geometry, per the breed geometry rules. Only
// called when the part's initial breed was BreedX.
func refineBreed(final Slice) Breed {
	switch {
	case near(final.Left, RelPos{1, ThreePrime}, 1) && near(final.Right, RelPos{150, ThreePrime}, 100):
		return BreedTerminator
	case near(final.Left, RelPos{-300, FivePrime}, 400) && near(final.Right, RelPos{-1, FivePrime}, 40):
		return BreedPromoter
	case final.Left == (RelPos{1, FivePrime}) && near(final.Right, RelPos{150, ThreePrime}, 100):
		return BreedGST
	default:
		return BreedX
	}
}
