package ktpocr

import "strconv"

// Plausibility scores how well a 16-digit string matches the structure of a
// real NIK: 6 digits of region code, a DDMMYY birth date (women get +40 on
// the day), and a non-zero 4-digit serial. Returns 0 for anything that is
// not 16 digits; a structurally perfect candidate scores 1.
func Plausibility(nik string) float64 {
	if len(nik) != 16 {
		return 0
	}
	for _, r := range nik {
		if r < '0' || r > '9' {
			return 0
		}
	}
	score := 0.2 // right length and all digits

	province, _ := strconv.Atoi(nik[0:2])
	if province >= 11 && province <= 94 {
		score += 0.2
	}
	regency, _ := strconv.Atoi(nik[2:4])
	district, _ := strconv.Atoi(nik[4:6])
	if regency > 0 && district > 0 {
		score += 0.1
	}

	day, _ := strconv.Atoi(nik[6:8])
	if (day >= 1 && day <= 31) || (day >= 41 && day <= 71) {
		score += 0.2
	}
	month, _ := strconv.Atoi(nik[8:10])
	if month >= 1 && month <= 12 {
		score += 0.2
	}

	serial, _ := strconv.Atoi(nik[12:16])
	if serial > 0 {
		score += 0.1
	}
	return score
}
