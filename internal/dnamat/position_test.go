package dnamat

import "testing"

func TestOneToZero(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"positive one", 1, 0},
		{"positive ten", 10, 9},
		{"negative one", -1, -1},
		{"negative ten", -10, -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := oneToZero(tt.n); got != tt.want {
				t.Errorf("oneToZero(%d) = %d, want %d", tt.n, got, tt.want)
			}
		})
	}
}

func TestShiftRelOffsetRoundTrips(t *testing.T) {
	// shifting by zero must be the identity for every legal offset.
	for _, n := range []int{-500, -300, -100, -1, 1, 100, 300, 500} {
		if got := shiftRelOffset(n, 0); got != n {
			t.Errorf("shiftRelOffset(%d, 0) = %d, want %d", n, got, n)
		}
	}
}

func TestShiftRelOffsetNeverZero(t *testing.T) {
	for n := -50; n <= 50; n++ {
		if n == 0 {
			continue
		}
		for delta := -50; delta <= 50; delta++ {
			if got := shiftRelOffset(n, delta); got == 0 {
				t.Errorf("shiftRelOffset(%d, %d) = 0, which is illegal", n, delta)
			}
		}
	}
}

func TestShiftRelOffsetWidensOutward(t *testing.T) {
	if got, want := shiftRelOffset(-500, -50), -550; got != want {
		t.Errorf("shiftRelOffset(-500, -50) = %d, want %d", got, want)
	}
	if got, want := shiftRelOffset(500, 50), 550; got != want {
		t.Errorf("shiftRelOffset(500, 50) = %d, want %d", got, want)
	}
}

type testFeature struct {
	name  string
	chrom string
	left  int
	right int
	fwd   bool
}

func (f testFeature) Name() string  { return f.name }
func (f testFeature) Chrom() string { return f.chrom }
func (f testFeature) Left() int     { return f.left }
func (f testFeature) Right() int    { return f.right }
func (f testFeature) Forward() bool { return f.fwd }

func TestAdjustToPhysical(t *testing.T) {
	fwd := testFeature{name: "ADH1", chrom: "chr1", left: 1000, right: 1500, fwd: true}
	crick := testFeature{name: "ERG10", chrom: "chr1", left: 5000, right: 5600, fwd: false}

	tests := []struct {
		name string
		f    Feature
		pos  RelPos
		want int
	}{
		{"fwd 5' +1 is the feature start", fwd, RelPos{1, FivePrime}, 1000},
		{"fwd 3' -1 is the feature end", fwd, RelPos{-1, ThreePrime}, 1500},
		{"fwd 5' -500 is 500 upstream", fwd, RelPos{-500, FivePrime}, 500},
		{"crick 5' +1 is the feature right edge", crick, RelPos{1, FivePrime}, 5600},
		{"crick 3' +1 is one before the feature left edge", crick, RelPos{1, ThreePrime}, 4999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adjustToPhysical(tt.f, tt.pos); got != tt.want {
				t.Errorf("adjustToPhysical(%v, %v) = %d, want %d", tt.f, tt.pos, got, tt.want)
			}
		})
	}
}

// TestCoordinateRoundTrip coordinate round-trip invariant:
// projecting p and re-deriving its offset from the projected coordinate
// must reproduce p.offset.
func TestCoordinateRoundTrip(t *testing.T) {
	fwd := testFeature{name: "ADH1", chrom: "chr1", left: 1000, right: 1500, fwd: true}
	crick := testFeature{name: "ERG10", chrom: "chr1", left: 5000, right: 5600, fwd: false}

	for _, f := range []Feature{fwd, crick} {
		for _, end := range []Endpoint{FivePrime, ThreePrime} {
			for _, offset := range []int{-500, -100, -1, 1, 100, 500} {
				pos := RelPos{offset, end}
				phys := adjustToPhysical(f, pos)

				var anchor, direction, shift int
				switch {
				case end == FivePrime && f.Forward():
					anchor, direction = f.Left(), 1
				case end == FivePrime && !f.Forward():
					anchor, direction = f.Right(), -1
				case end == ThreePrime && f.Forward():
					anchor, direction, shift = f.Right(), 1, 1
				default:
					anchor, direction, shift = f.Left(), -1, 1
				}

				zb := (phys-anchor)/direction - shift
				var recovered int
				if zb >= 0 {
					recovered = zb + 1
				} else {
					recovered = zb
				}
				if recovered != offset {
					t.Errorf("round-trip failed for %+v end=%v offset=%d: got %d", f, end, offset, recovered)
				}
			}
		}
	}
}
