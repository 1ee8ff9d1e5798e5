package dnamat

import (
	"bytes"
	"strings"
)

// reverseComplement returns the reverse complement of seq, honoring IUPAC
// ambiguity codes.
func reverseComplement(seq string) string {
	seq = strings.ToUpper(seq)

	revCompMap := map[rune]byte{
		'A': 'T',
		'T': 'A',
		'G': 'C',
		'C': 'G',
		'M': 'K',
		'R': 'Y',
		'W': 'S',
		'Y': 'R',
		'S': 'W',
		'K': 'M',
		'H': 'D',
		'D': 'H',
		'V': 'B',
		'B': 'V',
		'N': 'N',
		'X': 'X',
	}

	var buf bytes.Buffer
	for _, c := range seq {
		b, ok := revCompMap[c]
		if !ok {
			b = 'N'
		}
		buf.WriteByte(b)
	}

	out := buf.Bytes()
	for i := 0; i < len(out)/2; i++ {
		j := len(out) - i - 1
		out[i], out[j] = out[j], out[i]
	}

	return string(out)
}
