package match

import "strings"

// stripNonAlnum lower-cases s and removes every character outside [a-z0-9].
func stripNonAlnum(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, s)
}

// bigrams builds the set of overlapping 2-character substrings of s after
// stripping all non-alphanumeric characters.
func bigrams(s string) map[string]bool {
	clean := stripNonAlnum(s)
	set := make(map[string]bool, len(clean))
	for i := 0; i+2 <= len(clean); i++ {
		set[clean[i:i+2]] = true
	}
	return set
}

// Dice is the Dice coefficient over character bigrams:
// 2*|A∩B| / (|A|+|B|), 0 when both strings produce no bigrams.
func Dice(a, b string) float64 {
	biA, biB := bigrams(a), bigrams(b)
	if len(biA) == 0 && len(biB) == 0 {
		return 0
	}

	intersection := 0
	for bg := range biA {
		if biB[bg] {
			intersection++
		}
	}
	return 2 * float64(intersection) / float64(len(biA)+len(biB))
}

// Jaccard is the Jaccard similarity over two token sets:
// |A∩B| / |A∪B|, 0 when the union is empty.
func Jaccard(a, b map[string]bool) float64 {
	intersection := 0
	union := len(b)
	for token := range a {
		if b[token] {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// WeightedOverlap scores how much of the query's raw tokens are covered by
// the target, weighting longer tokens higher (0.5 for len<=2, 0.8 for
// len<=4, else 1.0). A verbatim hit contributes full weight; a token that is
// a substring of, or contains, some target token contributes 0.6x weight
// (first such target token wins). Returns matched weight / total weight.
func WeightedOverlap(query, target []string) float64 {
	if len(query) == 0 {
		return 0
	}

	targetSet := make(map[string]bool, len(target))
	for _, t := range target {
		targetSet[t] = true
	}

	var totalWeight, matchedWeight float64
	for _, qt := range query {
		w := 1.0
		switch {
		case len(qt) <= 2:
			w = 0.5
		case len(qt) <= 4:
			w = 0.8
		}
		totalWeight += w

		if targetSet[qt] {
			matchedWeight += w
			continue
		}
		for _, tt := range target {
			if strings.Contains(tt, qt) || strings.Contains(qt, tt) {
				matchedWeight += w * 0.6
				break
			}
		}
	}

	if totalWeight == 0 {
		return 0
	}
	return matchedWeight / totalWeight
}

// SubstringOverlap is the fraction of raw query tokens that appear as a
// literal substring of the space-joined raw target tokens.
func SubstringOverlap(query []string, targetJoined string) float64 {
	if len(query) == 0 {
		return 0
	}

	hits := 0
	for _, qt := range query {
		if strings.Contains(targetJoined, qt) {
			hits++
		}
	}
	return float64(hits) / float64(len(query))
}

// StationBonus scores agreement between a defect's reported location and a
// concern's station code. Exact match after trim/lower-case scores 0.30;
// equality after stripping non-alphanumerics (length >= 2) scores 0.25; a
// shared leading character that is a known station-prefix code scores 0.10.
func StationBonus(location, station string) float64 {
	loc := strings.ToLower(strings.TrimSpace(location))
	sta := strings.ToLower(strings.TrimSpace(station))
	if loc == sta {
		return 0.30
	}

	cleanLoc := stripNonAlnum(loc)
	cleanSta := stripNonAlnum(sta)
	if len(cleanLoc) >= 2 && cleanLoc == cleanSta {
		return 0.25
	}
	if cleanLoc != "" && cleanSta != "" && cleanLoc[0] == cleanSta[0] {
		if _, known := stationPrefixes[cleanLoc[0]]; known {
			return 0.10
		}
	}
	return 0
}
