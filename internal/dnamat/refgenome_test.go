package dnamat

import "testing"

func newTestGenome() *memRefGenome {
	g := NewMemRefGenome("sacCer3", 250)
	g.AddFeature("ADH1", "chr1", 1000, 1500, true)
	g.AddFeature("ERG10", "chr1", 5000, 5600, false)
	chrom := make([]byte, 6000)
	for i := range chrom {
		chrom[i] = "ACGT"[i%4]
	}
	g.AddChromSeq("chr1", string(chrom))
	return g
}

func TestMemRefGenomeIsValid(t *testing.T) {
	g := newTestGenome()
	if !g.IsValid("adh1") {
		t.Error("IsValid should be case-insensitive and find ADH1")
	}
	if g.IsValid("nope") {
		t.Error("IsValid should reject an unregistered gene")
	}
}

func TestMemRefGenomeGet(t *testing.T) {
	g := newTestGenome()
	f, err := g.Get("ADH1")
	if err != nil {
		t.Fatalf("Get(ADH1) returned error: %v", err)
	}
	if f.Left() != 1000 || f.Right() != 1500 || !f.Forward() {
		t.Errorf("Get(ADH1) = %+v, want left=1000 right=1500 fwd=true", f)
	}

	if _, err := g.Get("NOPE"); err == nil {
		t.Fatal("Get(NOPE) should have errored")
	}
}

func TestMemRefGenomeDNA(t *testing.T) {
	g := newTestGenome()
	seq, err := g.DNA("test", "chr1", 0, 3)
	if err != nil {
		t.Fatalf("DNA() returned error: %v", err)
	}
	if seq != "ACGT" {
		t.Errorf("DNA() = %q, want %q", seq, "ACGT")
	}

	if _, err := g.DNA("test", "chr1", 5, 3); err == nil {
		t.Fatal("DNA() with left > right should have errored")
	}
	if _, err := g.DNA("test", "chrX", 0, 3); err == nil {
		t.Fatal("DNA() against an unloaded chromosome should have errored")
	}
}

func TestRefGenomeSetRegisterAndLookup(t *testing.T) {
	set := NewRefGenomeSet()
	set.Register(newTestGenome())

	if _, ok := set.Genome("sacCer3"); !ok {
		t.Fatal("Genome(sacCer3) should be found after Register")
	}
	if _, ok := set.Genome("nope"); ok {
		t.Fatal("Genome(nope) should not be found")
	}
	names := set.Names()
	if len(names) != 1 || names[0] != "sacCer3" {
		t.Errorf("Names() = %v, want [sacCer3]", names)
	}
}
