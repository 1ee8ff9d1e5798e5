package dnamat

import "strings"

// SeqLibrary is the sequence-library collaborator contract: an uppercase
// gene name to sequence buffer mapping.
type SeqLibrary interface {
	Get(name string) (string, bool)
}

// mapLibrary is an in-process SeqLibrary backed by a Go map.
type mapLibrary map[string]string

// NewMapLibrary returns an empty in-memory sequence library.
func NewMapLibrary() mapLibrary {
	return mapLibrary{}
}

// Add registers a sequence under name, uppercasing both.
func (l mapLibrary) Add(name, seq string) {
	l[strings.ToUpper(name)] = strings.ToUpper(seq)
}

func (l mapLibrary) Get(name string) (string, bool) {
	seq, ok := l[strings.ToUpper(name)]
	return seq, ok
}
