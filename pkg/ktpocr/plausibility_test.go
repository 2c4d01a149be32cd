package ktpocr

import "testing"

func TestPlausibilityPerfectNIK(t *testing.T) {
	// Jakarta Selatan, male, born 02-04-1977, serial 0001
	if got := Plausibility("3171020204770001"); got < 0.99 {
		t.Fatalf("expected ~1.0 got %v", got)
	}
	// female NIK has +40 on the birth day
	if got := Plausibility("3171024204770001"); got < 0.99 {
		t.Fatalf("expected ~1.0 for female NIK got %v", got)
	}
}

func TestPlausibilityRejectsWrongShape(t *testing.T) {
	if got := Plausibility("12345"); got != 0 {
		t.Fatalf("short string scored %v", got)
	}
	if got := Plausibility("31710202047700ab"); got != 0 {
		t.Fatalf("non-digit string scored %v", got)
	}
}

func TestPlausibilityPenalizesImplausibleFields(t *testing.T) {
	perfect := Plausibility("3171020204770001")
	// province 03 does not exist
	if got := Plausibility("0371020204770001"); got >= perfect {
		t.Fatalf("bad province scored %v >= %v", got, perfect)
	}
	// day 39 is neither a male nor a female birth day
	if got := Plausibility("3171023904770001"); got >= perfect {
		t.Fatalf("bad day scored %v >= %v", got, perfect)
	}
	// month 13
	if got := Plausibility("3171020213770001"); got >= perfect {
		t.Fatalf("bad month scored %v >= %v", got, perfect)
	}
	// serial 0000
	if got := Plausibility("3171020204770000"); got >= perfect {
		t.Fatalf("zero serial scored %v >= %v", got, perfect)
	}
}
