package model

// SearchHit is one raw result from the search provider, normalized out of the
// provider's response shape. Hits are value types; nothing mutates them after
// normalization.
type SearchHit struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"display_link"`
	Source      string `json:"source"`
}

// ScoredHit is a SearchHit plus the combined relevance score the re-ranker
// assigned: cosine similarity against the query plus trust boosts, rounded to
// four decimals. A zero score marks a hit that was kept without a usable
// snippet embedding.
type ScoredHit struct {
	SearchHit
	SimilarityScore float64 `json:"similarity_score"`
}
