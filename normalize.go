package facultysearch

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball/english"
)

// Match sequences of letters or digits as "words"
var wordRe = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Normalizer turns free text into index terms: lower-case, split into
// words, drop stopwords, stem. Documents and queries go through the same
// Normalizer so their terms line up.
type Normalizer struct {
	stop map[string]struct{}
}

// NewNormalizer returns a Normalizer. If stop is nil, uses DefaultStopwords().
func NewNormalizer(stop map[string]struct{}) *Normalizer {
	if stop == nil {
		stop = DefaultStopwords()
	}
	return &Normalizer{stop: stop}
}

// Normalize returns the ordered term sequence of text.
func (n *Normalizer) Normalize(text string) []string {
	var out []string
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if _, bad := n.stop[w]; bad {
			continue
		}
		s := stem(w)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// NormalizeJoined is Normalize with the terms joined by single spaces.
func (n *Normalizer) NormalizeJoined(text string) string {
	return strings.Join(n.Normalize(text), " ")
}

// internal stemmer
func stem(w string) string { return english.Stem(w, true) }
