package llm

import (
	"context"
	"sort"
	"strings"
	"unicode"
)

// TermFrequencyEmbedder is the deterministic offline fallback. It embeds text
// as normalized term frequencies, one dimension per distinct token, in sorted
// token order. Identical text always produces an identical vector, which the
// ranking layer relies on for reproducible runs. Vectors from different texts
// generally differ in length and only become comparable after zero-padding,
// which the cosine computation handles.
type TermFrequencyEmbedder struct{}

func (TermFrequencyEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		// A degenerate one-dimensional zero vector keeps downstream shapes
		// uniform; cosine against it is defined as zero.
		return []float32{0}, nil
	}

	freq := make(map[string]int, len(tokens))
	maxFreq := 0
	for _, tok := range tokens {
		freq[tok]++
		if freq[tok] > maxFreq {
			maxFreq = freq[tok]
		}
	}

	vocab := make([]string, 0, len(freq))
	for tok := range freq {
		vocab = append(vocab, tok)
	}
	sort.Strings(vocab)

	vec := make([]float32, len(vocab))
	for i, tok := range vocab {
		vec[i] = float32(freq[tok]) / float32(maxFreq)
	}
	return vec, nil
}

// tokenize lowercases the text and splits it into word tokens: runs of
// letters, digits and underscores.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
