package dnamat

import "testing"

func TestMapLibrary(t *testing.T) {
	lib := NewMapLibrary()
	lib.Add("mygene", "aaaaccccggggtttt")

	seq, ok := lib.Get("MYGENE")
	if !ok {
		t.Fatal("Get(MYGENE) should find a gene added as mygene")
	}
	if seq != "AAAACCCCGGGGTTTT" {
		t.Errorf("Get(MYGENE) = %q, want uppercased sequence", seq)
	}

	if _, ok := lib.Get("nope"); ok {
		t.Error("Get(nope) should report false")
	}
}
