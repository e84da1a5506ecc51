package facultysearch

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// SearchResponse is the JSON body of /search.
type SearchResponse struct {
	Query   string `json:"query"`
	Page    int    `json:"page"`
	Pages   int    `json:"pages"`
	Results []Hit  `json:"results"`
}

// NewMux provides /search?q=terms&page=n over searcher, paginated like the
// console session. Library-only: does not start the server by itself.
func NewMux(searcher Searcher, perPage int, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	mux := http.NewServeMux()

	// Redirect root to an empty search
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/search", http.StatusFound)
			return
		}
		http.NotFound(w, r)
	})

	// /search?q=terms&page=n -> JSON hits of page n (1-based, clamped)
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			n, err := strconv.Atoi(p)
			if err != nil {
				http.Error(w, "page must be an integer", http.StatusBadRequest)
				return
			}
			page = n
		}

		resp := SearchResponse{Query: q, Results: []Hit{}}
		if q != "" {
			hits, err := searcher.Rank(r.Context(), q)
			if err != nil {
				log.Error("search failed", zap.String("query", q), zap.Error(err))
				http.Error(w, "search failed", http.StatusInternalServerError)
				return
			}
			state := Apply(NewState(perPage), Command{Kind: CmdQuery, Query: q, Hits: hits})
			state.Cursor = clampCursor(page-1, len(state.Pages))
			resp.Pages = len(state.Pages)
			if cur := state.CurrentPage(); cur != nil {
				resp.Page = state.Cursor + 1
				resp.Results = cur
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	return mux
}
