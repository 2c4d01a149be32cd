// Package ktpocr extracts the 16-digit NIK from a photographed or scanned
// KTP (Indonesian identity card). It runs Tesseract over the original image
// and a contrast-boosted variant, then picks the candidate whose digit
// structure best matches how a NIK is actually composed.
package ktpocr

import (
	"errors"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// ErrNoNIK is returned when no 16-digit candidate survives scanning.
var ErrNoNIK = errors.New("no NIK detected")

// Result is the outcome of a successful scan.
type Result struct {
	NIK        string
	Raw        string  // candidate as it appeared in the OCR text
	Confidence float64 // structural plausibility in [0,1]
}

// ExtractNIK scans the image at path for a NIK. The digit whitelist keeps
// Tesseract from confusing letters for digits on the card's printed labels.
func ExtractNIK(path string) (Result, error) {
	texts := make([]string, 0, 2)

	if text, err := scanImage(path); err == nil {
		texts = append(texts, text)
	} else {
		return Result{}, err
	}

	// Second pass on a cleaned-up variant; skipped silently when
	// preprocessing fails (corrupt image, unsupported format).
	if tmp, err := preprocessForScan(path); err == nil {
		if text, err := scanImage(tmp); err == nil {
			texts = append(texts, text)
		}
		os.Remove(tmp)
	}

	best := Result{}
	for _, candidate := range FindCandidates(texts...) {
		score := Plausibility(candidate)
		if score > best.Confidence {
			best = Result{NIK: candidate, Raw: candidate, Confidence: score}
		}
	}
	if best.NIK == "" {
		return Result{}, ErrNoNIK
	}
	return best, nil
}

func scanImage(path string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage("eng")
	_ = client.SetWhitelist("0123456789NIK:. ")
	if err := client.SetImage(path); err != nil {
		return "", err
	}
	return client.Text()
}
