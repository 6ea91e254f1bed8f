package match

import "strings"

// Tokenize splits text into normalized tokens: lower-cased, any character
// outside [a-z0-9/- ] replaced with a space, whitespace-split, tokens of
// length <= 1 dropped. Order and duplicates are preserved.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '/', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return ' '
		}
	}, text)

	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Normalizer expands tokens with a fixed bidirectional synonym table.
// It is immutable after construction and safe for concurrent use.
type Normalizer struct {
	// expansion maps every known term (canonical or variant) to the full
	// set of terms its synonym group contributes. One level only: no
	// transitive closure across unrelated canonical entries.
	expansion map[string][]string
}

// NewNormalizer builds a Normalizer from a canonical-term -> variants table.
// A nil table yields a Normalizer that expands nothing.
func NewNormalizer(synonyms map[string][]string) *Normalizer {
	expansion := make(map[string][]string, len(synonyms)*3)

	for canonical, variants := range synonyms {
		expansion[canonical] = append(expansion[canonical], variants...)
		for _, variant := range variants {
			group := make([]string, 0, len(variants)+1)
			group = append(group, canonical)
			group = append(group, variants...)
			expansion[variant] = append(expansion[variant], group...)
		}
	}

	return &Normalizer{expansion: expansion}
}

// DefaultNormalizer returns a Normalizer loaded with the manufacturing
// synonym table.
func DefaultNormalizer() *Normalizer {
	return NewNormalizer(DefaultSynonyms)
}

// Expand returns the set union of the input tokens, all variants of any
// canonical term present, and the whole synonym group of any variant present.
// The expanded set always contains the input tokens.
func (n *Normalizer) Expand(tokens []string) map[string]bool {
	expanded := make(map[string]bool, len(tokens)*2)
	for _, token := range tokens {
		expanded[token] = true
	}
	for _, token := range tokens {
		for _, term := range n.expansion[token] {
			expanded[term] = true
		}
	}
	return expanded
}

// ExpandText tokenizes text and expands the result in one step.
func (n *Normalizer) ExpandText(text string) map[string]bool {
	return n.Expand(Tokenize(text))
}
