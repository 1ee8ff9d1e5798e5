package dnamat

// Expand materializes every part of asm into an ordered list of DNA slices
// and runs the destination-offset recomputation pass over the result.
func (m *Materializer) Expand(asm Assembly) ([]DNASlice, error) {
	slices, err := m.expandParts(asm.Parts, asm.Pragmas)
	if err != nil {
		return nil, err
	}
	recomputeDestOffsets(slices)
	return slices, nil
}

// expandParts walks one PPP list in source order, recursing into
// multi-parts and inserting fusion sentinels after "fuse"-pragma'd parts.
func (m *Materializer) expandParts(parts []PPP, asmPragmas PragmaSet) ([]DNASlice, error) {
	var out []DNASlice

	for _, ppp := range parts {
		switch p := ppp.Part.(type) {
		case ExpandedPart:
			out = append(out, p.Slice)
			continue

		case ErrorPart:
			return nil, &MaterializeError{Kind: ErrParseError, Loc: ppp.Loc, Msg: p.Msg}

		case InlineProteinPart:
			return nil, &MaterializeError{Kind: ErrUnexpandedSpecial, Loc: ppp.Loc, Msg: "protein-level part reached the DNA materialization stage"}

		case HeterologyBlockPart:
			return nil, &MaterializeError{Kind: ErrUnexpandedSpecial, Loc: ppp.Loc, Msg: "heterology block reached the DNA materialization stage"}

		case MultiPart:
			children := normalizeMultiPart(ppp, p.Children)
			childSlices, err := m.expandParts(children, asmPragmas)
			if err != nil {
				return nil, err
			}
			out = append(out, childSlices...)
			continue
		}

		dnaSource := resolveDNASource(ppp, asmPragmas)
		slice, err := m.materialize(ppp, dnaSource, asmPragmas)
		if err != nil {
			return nil, err
		}
		out = append(out, slice)

		if ppp.Pragmas.Contains(PragmaFuse) {
			out = append(out, m.fusionSlice())
		}
	}

	return out, nil
}

// normalizeMultiPart distributes a multi-part's own direction and pragmas
// over its children before recursion. Current policy is identity: children
// are returned exactly as written. The hook is preserved because a future
// policy is expected to merge the parent's reversal into each child
// (reversing both its orientation and the child order) and push pragmas a
// child lacks down from the parent.
func normalizeMultiPart(parent PPP, children []PPP) []PPP {
	return children
}

// recomputeDestOffsets assigns contiguous destination offsets: slice i+1
// begins where slice i ended. A zero-length (fusion) slice advances nothing
// — its dest_to is one less than its dest_from.
func recomputeDestOffsets(slices []DNASlice) {
	pos := 0
	for i := range slices {
		slices[i].DestFrom = pos
		slices[i].DestTo = pos + slices[i].Len() - 1
		pos += slices[i].Len()
	}
}
