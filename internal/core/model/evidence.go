package model

// Evidence is the record handed to the verification pipeline: a re-ranked hit
// reduced to the fields downstream consumers read.
type Evidence struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// EvidenceFromHit maps a scored hit onto the caller-facing Evidence record.
// The snippet becomes the evidence text; full-page fetching is out of scope
// for the retrieval layer.
func EvidenceFromHit(h ScoredHit) Evidence {
	return Evidence{
		URL:   h.Link,
		Title: h.Title,
		Text:  h.Snippet,
	}
}
