package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/voigtlab/gslc/internal/dnamat"
)

// assemblyFixture is the on-disk JSON stand-in for the output of the
// out-of-scope GSL parser: a already-parsed assembly, given directly to the
// materializer for manual testing.
type assemblyFixture struct {
	Pragmas map[string][]string `json:"pragmas"`
	Parts   []partFixture       `json:"parts"`
}

type partFixture struct {
	Kind      string              `json:"kind"`
	Gene      string              `json:"gene,omitempty"`
	Linker    string              `json:"linker,omitempty"`
	Literal   string              `json:"literal,omitempty"`
	PartID    string              `json:"partId,omitempty"`
	Reversed  bool                `json:"reversed,omitempty"`
	Pragmas   map[string][]string `json:"pragmas,omitempty"`
	Modifiers []modifierFixture   `json:"modifiers,omitempty"`
	Children  []partFixture       `json:"children,omitempty"`
}

type modifierFixture struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	LeftOffset  *int   `json:"leftOffset,omitempty"`
	LeftEnd     string `json:"leftEnd,omitempty"`
	RightOffset *int   `json:"rightOffset,omitempty"`
	RightEnd    string `json:"rightEnd,omitempty"`
	LApprox     bool   `json:"lApprox,omitempty"`
	RApprox     bool   `json:"rApprox,omitempty"`
}

func loadAssemblyFixture(path string) (dnamat.Assembly, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return dnamat.Assembly{}, fmt.Errorf("read assembly fixture %q: %w", path, err)
	}

	var fixture assemblyFixture
	if err := json.Unmarshal(raw, &fixture); err != nil {
		return dnamat.Assembly{}, fmt.Errorf("decode assembly fixture %q: %w", path, err)
	}

	parts := make([]dnamat.PPP, 0, len(fixture.Parts))
	for _, pf := range fixture.Parts {
		ppp, err := decodePPP(pf)
		if err != nil {
			return dnamat.Assembly{}, err
		}
		parts = append(parts, ppp)
	}

	return dnamat.Assembly{
		Parts:   parts,
		Pragmas: pragmaSetOf(fixture.Pragmas),
	}, nil
}

func decodePPP(pf partFixture) (dnamat.PPP, error) {
	part, err := decodePart(pf)
	if err != nil {
		return dnamat.PPP{}, err
	}
	return dnamat.PPP{
		Part:     part,
		Reversed: pf.Reversed,
		Pragmas:  pragmaSetOf(pf.Pragmas),
	}, nil
}

func decodePart(pf partFixture) (dnamat.Part, error) {
	switch pf.Kind {
	case "gene":
		mods, err := decodeModifiers(pf.Modifiers)
		if err != nil {
			return nil, err
		}
		return dnamat.GenePart{Gene: pf.Gene, Modifiers: mods, Linker: pf.Linker}, nil
	case "marker":
		return dnamat.MarkerPart{}, nil
	case "inline":
		return dnamat.InlineDNAPart{Literal: pf.Literal}, nil
	case "external":
		return dnamat.ExternalIDPart{PartID: pf.PartID}, nil
	case "fusion":
		return dnamat.FusionMarkerPart{}, nil
	case "multi":
		children := make([]dnamat.PPP, 0, len(pf.Children))
		for _, cf := range pf.Children {
			child, err := decodePPP(cf)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return dnamat.MultiPart{Children: children}, nil
	default:
		return nil, fmt.Errorf("unrecognized fixture part kind %q", pf.Kind)
	}
}

func decodeModifiers(mfs []modifierFixture) ([]dnamat.Modifier, error) {
	mods := make([]dnamat.Modifier, 0, len(mfs))
	for _, mf := range mfs {
		switch mf.Type {
		case "dot":
			mods = append(mods, dnamat.DotMod{Name: mf.Name})
		case "slice":
			mod := dnamat.SliceModifier{LApprox: mf.LApprox, RApprox: mf.RApprox}
			if mf.LeftOffset != nil {
				mod.Left = &dnamat.RelPos{Offset: *mf.LeftOffset, End: endpointOf(mf.LeftEnd)}
			}
			if mf.RightOffset != nil {
				mod.Right = &dnamat.RelPos{Offset: *mf.RightOffset, End: endpointOf(mf.RightEnd)}
			}
			mods = append(mods, mod)
		default:
			return nil, fmt.Errorf("unrecognized fixture modifier type %q", mf.Type)
		}
	}
	return mods, nil
}

func endpointOf(s string) dnamat.Endpoint {
	if s == "3" {
		return dnamat.ThreePrime
	}
	return dnamat.FivePrime
}

func pragmaSetOf(m map[string][]string) dnamat.PragmaSet {
	set := dnamat.NewPragmaSet()
	for k, vs := range m {
		for _, v := range vs {
			set.Add(k, v)
		}
	}
	return set
}
