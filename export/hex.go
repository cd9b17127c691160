package export

import "encoding/hex"

// hexLineWidth is the fixture's text column width. Wrapping is cosmetic:
// concatenating the lines back together must reproduce the full encoding.
const hexLineWidth = 64

// hexLines encodes data as lowercase two-digit-per-byte hex with no
// separators, wrapped into lines of at most hexLineWidth characters.
// Encoding is per-byte, so output is identical on any platform.
func hexLines(data []byte) []string {
	s := hex.EncodeToString(data)
	lines := make([]string, 0, (len(s)+hexLineWidth-1)/hexLineWidth)
	for len(s) > hexLineWidth {
		lines = append(lines, s[:hexLineWidth])
		s = s[hexLineWidth:]
	}
	if len(s) > 0 {
		lines = append(lines, s)
	}
	return lines
}
