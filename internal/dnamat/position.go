package dnamat

// oneToZero converts a signed, 1-based, no-zero offset to a 0-based offset:
// n-1 if n>0, else n, so +1 maps to 0 and -1 maps to -1.
func oneToZero(n int) int {
	if n > 0 {
		return n - 1
	}
	return n
}

// shiftRelOffset shifts a signed, 1-based, no-zero offset by delta in the
// 0-based continuum (delta<0 moves toward -infinity, delta>0 toward
// +infinity), skipping the zero discontinuity. It is the exact inverse of
// oneToZero composed with the shift, used by widenApprox to push an
// approximate endpoint outward by a margin without landing on zero.
func shiftRelOffset(n, delta int) int {
	zb := oneToZero(n) + delta
	if zb >= 0 {
		return zb + 1
	}
	return zb
}

// adjustToPhysical projects a RelPos against a Feature into an absolute,
// 0-based genomic coordinate, respecting the feature's strand. At the 5' end
// +1 is the feature's first base and -1 the base before it; at the 3' end
// -1 is the feature's last base and +1 the base after it.
func adjustToPhysical(f Feature, pos RelPos) int {
	var anchor int
	switch {
	case pos.End == FivePrime && f.Forward():
		anchor = f.Left()
	case pos.End == FivePrime && !f.Forward():
		anchor = f.Right()
	case pos.End == ThreePrime && f.Forward():
		anchor = f.Right()
	default: // ThreePrime, reverse strand
		anchor = f.Left()
	}

	direction := 1
	if !f.Forward() {
		direction = -1
	}

	offset := oneToZero(pos.Offset)
	if pos.End == ThreePrime {
		offset++
	}

	return anchor + direction*offset
}
