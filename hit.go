package facultysearch

// Hit is a scored search result.
type Hit struct {
	URL   string  `json:"url"`
	Score float64 `json:"score"`
}

// lessHit orders two hits: higher score first; if scores are equal, URL ascending.
func lessHit(a, b Hit) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.URL < b.URL
}

// Paginate splits hits into consecutive pages of perPage entries; the last
// page may be shorter. perPage <= 0 puts everything on one page.
func Paginate(hits []Hit, perPage int) [][]Hit {
	if len(hits) == 0 {
		return nil
	}
	if perPage <= 0 {
		perPage = len(hits)
	}
	pages := make([][]Hit, 0, (len(hits)+perPage-1)/perPage)
	for start := 0; start < len(hits); start += perPage {
		end := min(start+perPage, len(hits))
		pages = append(pages, hits[start:end:end])
	}
	return pages
}
