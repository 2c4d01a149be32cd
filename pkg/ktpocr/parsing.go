package ktpocr

import (
	"regexp"
	"strings"
)

var nikRE = regexp.MustCompile(`\d{16}`)

// FindCandidates collects distinct 16-digit runs across the given OCR
// texts. Digit runs broken up by spaces, dots, or colons (Tesseract loves
// splitting the NIK line) are joined before matching.
func FindCandidates(texts ...string) []string {
	seen := map[string]bool{}
	var out []string
	for _, text := range texts {
		for _, line := range strings.Split(text, "\n") {
			joined := joinDigitRuns(line)
			for _, m := range nikRE.FindAllString(joined, -1) {
				if !seen[m] {
					seen[m] = true
					out = append(out, m)
				}
			}
		}
	}
	return out
}

// joinDigitRuns removes separators that commonly appear between the digits
// of one printed number: "3171 0241 7708 0001" -> "3171024177080001".
func joinDigitRuns(line string) string {
	var b strings.Builder
	for _, r := range line {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '.' || r == ':' || r == '-':
			// dropped; these only ever separate digits on the NIK line
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
