package facultysearch

// DefaultStopwords returns the English stopword set NewNormalizer uses when
// given nil. Each call builds a fresh map, so callers may add to it.
func DefaultStopwords() map[string]struct{} {
	ws := []string{
		"a", "an", "the", "and", "or", "but",
		"to", "in", "of", "on", "for", "with", "as", "at", "by", "from",
		"is", "are", "was", "were", "be", "been", "being", "am",
		"this", "that", "these", "those", "it", "its", "itself",
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves",
		"you", "your", "yours", "yourself", "yourselves",
		"he", "him", "his", "himself", "she", "her", "hers", "herself",
		"they", "them", "their", "theirs", "themselves",
		"what", "which", "who", "whom", "whose", "why", "how",
		"do", "does", "did", "doing",
		"have", "has", "had", "having",
		"not", "no", "nor", "only", "very", "too", "own", "same",
		"can", "could", "should", "would", "may", "might", "must", "will", "shall",
		"if", "then", "else", "than", "so", "because", "while", "when", "where",
		"about", "above", "below", "under", "over", "into", "out", "up", "down",
		"through", "during", "before", "after", "between", "against", "off",
		"again", "further", "once", "here", "there",
		"all", "any", "both", "each", "few", "more", "most", "other", "some", "such",
		"just", "now", "s", "t",
	}
	m := make(map[string]struct{}, len(ws))
	for _, w := range ws {
		m[w] = struct{}{}
	}
	return m
}
