package rank

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/agenthands/veracity/internal/core/model"
	"github.com/agenthands/veracity/internal/llm"
)

// DefaultMinSimilarity is the floor below which a hit is treated as
// irrelevant and dropped outright. The boundary is inclusive: a hit scoring
// exactly the floor survives.
const DefaultMinSimilarity = 0.3

// domainBoosts are static trust priors keyed by domain marker. Only the
// single highest matching boost applies per hit.
var domainBoosts = []struct {
	marker string
	boost  float64
}{
	{".gov", 0.08},
	{".edu", 0.06},
	{".org", 0.02},
}

// Ranker deduplicates, filters and orders raw search hits by combining
// semantic similarity between query and snippet with the static trust priors
// above.
type Ranker struct {
	Embedder      llm.EmbedderClient
	MinSimilarity float64
}

func New(embedder llm.EmbedderClient) *Ranker {
	return &Ranker{
		Embedder:      embedder,
		MinSimilarity: DefaultMinSimilarity,
	}
}

// Rerank returns hits deduplicated by link, filtered to MinSimilarity and
// sorted by descending score. Two degradations keep results flowing:
//   - when the query itself cannot be embedded, the deduplicated hits pass
//     through unscored in provider order;
//   - a hit whose snippet cannot be embedded is kept at score zero rather
//     than dropped, bypassing the similarity floor.
func (r *Ranker) Rerank(ctx context.Context, query string, hits []model.SearchHit) []model.ScoredHit {
	if len(hits) == 0 {
		return nil
	}

	deduped := dedupeByLink(hits)

	queryVec, err := r.Embedder.Embed(ctx, query)
	if err != nil || len(queryVec) == 0 {
		out := make([]model.ScoredHit, len(deduped))
		for i, h := range deduped {
			out[i] = model.ScoredHit{SearchHit: h}
		}
		return out
	}

	scored := make([]model.ScoredHit, 0, len(deduped))
	for _, h := range deduped {
		snippetVec, err := r.Embedder.Embed(ctx, h.Snippet)
		if err != nil || len(snippetVec) == 0 {
			scored = append(scored, model.ScoredHit{SearchHit: h})
			continue
		}

		similarity := cosineSimilarity(queryVec, snippetVec)
		if similarity < r.MinSimilarity {
			continue
		}

		score := similarity + domainBoost(h) + typeBoost(h.Link)
		scored = append(scored, model.ScoredHit{
			SearchHit:       h,
			SimilarityScore: round4(score),
		})
	}

	// Stable: hits with equal rounded scores keep their provider order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].SimilarityScore > scored[j].SimilarityScore
	})
	return scored
}

// dedupeByLink drops hits without a link and collapses duplicate links,
// keeping the first occurrence.
func dedupeByLink(hits []model.SearchHit) []model.SearchHit {
	seen := make(map[string]bool, len(hits))
	out := make([]model.SearchHit, 0, len(hits))
	for _, h := range hits {
		if h.Link == "" || seen[h.Link] {
			continue
		}
		seen[h.Link] = true
		out = append(out, h)
	}
	return out
}

// domainBoost returns the highest matching trust prior for the hit's display
// link, falling back to the full link when the provider omitted one.
func domainBoost(h model.SearchHit) float64 {
	display := h.DisplayLink
	if display == "" {
		display = h.Link
	}
	display = strings.ToLower(display)

	best := 0.0
	for _, d := range domainBoosts {
		if strings.Contains(display, d.marker) && d.boost > best {
			best = d.boost
		}
	}
	return best
}

// typeBoost rewards document shapes that tend to carry citable content. The
// two boosts stack with each other and with the domain prior.
func typeBoost(link string) float64 {
	link = strings.ToLower(link)
	b := 0.0
	if strings.HasSuffix(link, ".pdf") {
		b += 0.02
	}
	if strings.Contains(link, "wikipedia.org") {
		b += 0.01
	}
	return b
}

// round4 rounds to four decimals. Rounding happens before the sort, so the
// published score is exactly the sort key.
func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
