package ktpocr

import "testing"

func TestFindCandidatesJoinsSeparatedDigits(t *testing.T) {
	text := "PROVINSI DKI JAKARTA\nNIK: 3171 0241 7708 0001\nNama: BUDI SANTOSO"
	got := FindCandidates(text)
	if len(got) != 1 || got[0] != "3171024177080001" {
		t.Fatalf("expected single joined NIK, got %v", got)
	}
}

func TestFindCandidatesDedupesAcrossPasses(t *testing.T) {
	a := "NIK: 3171024177080001"
	b := "NIK 3171.0241.7708.0001 extra"
	got := FindCandidates(a, b)
	if len(got) != 1 {
		t.Fatalf("expected dedupe to one candidate, got %v", got)
	}
}

func TestFindCandidatesIgnoresShortRuns(t *testing.T) {
	got := FindCandidates("Telp: 0812 3456 789\nKode Pos: 12345")
	if len(got) != 0 {
		t.Fatalf("expected no candidates, got %v", got)
	}
}

func TestJoinDigitRuns(t *testing.T) {
	if got := joinDigitRuns("3171 0241 7708 0001"); got != "3171024177080001" {
		t.Fatalf("got %q", got)
	}
	if got := joinDigitRuns("NIK: 31.71-02:41"); got != "NIK31710241" {
		t.Fatalf("got %q", got)
	}
}
