package dnamat

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LinkerChecker delegates linker well-formedness checking to an external
// collaborator; enzyme-level validation is out of scope here.
type LinkerChecker interface {
	CheckLinker(linker string) error
}

// fileLinkerChecker is a LinkerChecker backed by a flat, tab-delimited
// database of recognized linker names to their sequences. A linker not in
// the database is rejected.
type fileLinkerChecker struct {
	linkers map[string]string
}

// NewFileLinkerChecker loads a linker database from path: one "name\tseq"
// pair per line.
func NewFileLinkerChecker(path string) (*fileLinkerChecker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open linker database %q: %w", path, err)
	}
	defer f.Close()

	linkers := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		columns := strings.Split(scanner.Text(), "\t")
		if len(columns) < 2 {
			continue
		}
		linkers[columns[0]] = columns[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read linker database %q: %w", path, err)
	}

	return &fileLinkerChecker{linkers: linkers}, nil
}

func (c *fileLinkerChecker) CheckLinker(linker string) error {
	if _, ok := c.linkers[linker]; !ok {
		return fmt.Errorf("linker %q not found in the configured linker database", linker)
	}
	return nil
}

// validateSliceModifiers runs the static slice-modifier checks over a gene part's raw
// modifier list, before folding: a SliceModifier whose two explicit sides
// share an endpoint must not have left > right; at most one DotMod is
// allowed, and only on a GENE-kind part.
func validateSliceModifiers(mods []Modifier, kind GeneKind, loc SourceLoc) error {
	dotModSeen := false
	for _, mod := range mods {
		switch v := mod.(type) {
		case SliceModifier:
			if v.Left != nil && v.Right != nil && v.Left.End == v.Right.End && v.Left.Offset > v.Right.Offset {
				return &MaterializeError{
					Kind: ErrInvalidSlice,
					Loc:  loc,
					Msg:  fmt.Sprintf("left %s exceeds right %s at the same endpoint", v.Left, v.Right),
				}
			}
		case DotMod:
			if dotModSeen {
				return &MaterializeError{Kind: ErrIllegalModifier, Loc: loc, Msg: "multiple dot-modifiers on one part"}
			}
			dotModSeen = true
			if kind != KindORF {
				return &MaterializeError{Kind: ErrIllegalModifier, Loc: loc, Msg: fmt.Sprintf(".%s is only valid on a gene part", v.Name)}
			}
			if v.Name != "up" && v.Name != "down" && v.Name != "mrna" {
				return &MaterializeError{Kind: ErrIllegalModifier, Loc: loc, Msg: fmt.Sprintf("unrecognized dot-modifier %q", v.Name)}
			}
		}
	}
	return nil
}

// validateLibrarySlice rejects any approximate bound on a library gene's
// final slice: a library has no surrounding genomic context to widen into.
func validateLibrarySlice(s Slice, loc SourceLoc) error {
	if s.LApprox || s.RApprox {
		return &MaterializeError{Kind: ErrUnsupportedApprox, Loc: loc, Msg: "library genes cannot have an approximate slice bound"}
	}
	return nil
}

// validateLinker delegates to an externally supplied linker checker, when
// one is configured and the part actually carries a linker.
func validateLinker(checker LinkerChecker, linker string, loc SourceLoc) error {
	if checker == nil || linker == "" {
		return nil
	}
	if err := checker.CheckLinker(linker); err != nil {
		return &MaterializeError{Kind: ErrIllegalModifier, Loc: loc, Msg: fmt.Sprintf("invalid linker %q: %v", linker, err)}
	}
	return nil
}
