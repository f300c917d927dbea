package evidencepdf

import "unicode"

// SplitDisplayUnits splits a label into the units stacked in the label box.
// A maximal run of decimal digits is one unit; every other rune is a unit of
// its own. Order is preserved and "" yields an empty, non-nil slice.
//
//	"原證1"    -> ["原", "證", "1"]
//	"被上證15" -> ["被", "上", "證", "15"]
//	"A12B3"   -> ["A", "12", "B", "3"]
func SplitDisplayUnits(s string) []string {
	units := make([]string, 0, len(s))
	runStart := -1

	for i, r := range s {
		if unicode.IsDigit(r) {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			units = append(units, s[runStart:i])
			runStart = -1
		}
		units = append(units, string(r))
	}
	if runStart >= 0 {
		units = append(units, s[runStart:])
	}
	return units
}
