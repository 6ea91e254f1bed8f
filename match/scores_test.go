package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiceSelf(t *testing.T) {
	for _, s := range []string{"belt", "seat belt loose", "t10", "ab"} {
		assert.Equal(t, 1.0, Dice(s, s), "dice(%q, %q)", s, s)
	}
}

func TestDiceSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"seat belt loose", "belt insecure"},
		{"paint scratch", "scratched paint"},
		{"bolt missing", "torque error"},
	}
	for _, p := range pairs {
		assert.Equal(t, Dice(p[0], p[1]), Dice(p[1], p[0]), "dice(%q, %q)", p[0], p[1])
	}
}

func TestDiceNoBigrams(t *testing.T) {
	assert.Equal(t, 0.0, Dice("", ""))
	assert.Equal(t, 0.0, Dice("a", "b"))
	assert.Equal(t, 0.0, Dice("", "belt"))
}

func TestDiceDisjoint(t *testing.T) {
	assert.Equal(t, 0.0, Dice("abab", "cdcd"))
}

func TestJaccard(t *testing.T) {
	set := func(tokens ...string) map[string]bool {
		s := make(map[string]bool, len(tokens))
		for _, t := range tokens {
			s[t] = true
		}
		return s
	}

	tests := []struct {
		name string
		a, b map[string]bool
		want float64
	}{
		{"identical", set("belt", "loose"), set("belt", "loose"), 1.0},
		{"empty against empty", set(), set(), 0.0},
		{"empty against nonempty", set(), set("belt"), 0.0},
		{"disjoint", set("belt"), set("bolt"), 0.0},
		{"half overlap", set("belt", "loose"), set("belt", "tight"), 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Jaccard(tt.a, tt.b), 1e-12)
		})
	}
}

func TestWeightedOverlap(t *testing.T) {
	tests := []struct {
		name   string
		query  []string
		target []string
		want   float64
	}{
		{
			name:   "empty query",
			query:  nil,
			target: []string{"belt"},
			want:   0,
		},
		{
			name:   "verbatim full coverage",
			query:  []string{"belt", "loose"},
			target: []string{"belt", "loose", "t10"},
			want:   1.0,
		},
		{
			// "seat" is a substring of "seatbelt": 0.6 * 0.8 over total 0.8.
			name:   "substring scores sixty percent",
			query:  []string{"seat"},
			target: []string{"seatbelt"},
			want:   0.6,
		},
		{
			// len<=2 weighs 0.5, len<=4 weighs 0.8: only "lh" hits.
			name:   "short tokens weigh less",
			query:  []string{"lh", "trim"},
			target: []string{"lh"},
			want:   0.5 / 1.3,
		},
		{
			name:   "no overlap",
			query:  []string{"paint"},
			target: []string{"torque"},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WeightedOverlap(tt.query, tt.target), 1e-12)
		})
	}
}

func TestSubstringOverlap(t *testing.T) {
	assert.Equal(t, 0.0, SubstringOverlap(nil, "seat belt"))
	assert.Equal(t, 1.0, SubstringOverlap([]string{"belt"}, "seat belt loose"))
	assert.Equal(t, 0.5, SubstringOverlap([]string{"belt", "front"}, "seat belt loose"))
	assert.Equal(t, 0.0, SubstringOverlap([]string{"paint"}, "seat belt loose"))
}

func TestStationBonus(t *testing.T) {
	tests := []struct {
		name     string
		location string
		station  string
		want     float64
	}{
		{"exact match", "t10", "T10", 0.30},
		{"exact after trim", " t10 ", "t10", 0.30},
		{"both empty", "", "", 0.30},
		{"equal after stripping separators", "T-10", "t10", 0.25},
		{"shared known area prefix", "t10", "t22", 0.10},
		{"shared unknown prefix", "x10", "x22", 0.0},
		{"different areas", "t10", "c5", 0.0},
		{"one side empty", "t10", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StationBonus(tt.location, tt.station))
		})
	}
}
