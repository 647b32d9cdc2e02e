package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRemote struct {
	Vector []float32
	Err    error
	Calls  int
}

func (m *mockRemote) Embed(ctx context.Context, text string) ([]float32, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Vector, nil
}

func TestProviderPrefersRemote(t *testing.T) {
	remote := &mockRemote{Vector: []float32{0.1, 0.2, 0.3}}
	p := NewProvider(remote)

	vec, err := p.Embed(context.Background(), "solar output 2024")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, 1, remote.Calls)
}

func TestProviderFallsBackOnRemoteError(t *testing.T) {
	remote := &mockRemote{Err: errors.New("api quota exceeded")}
	p := NewProvider(remote)

	vec, err := p.Embed(context.Background(), "solar output")
	require.NoError(t, err, "remote failure must be absorbed")
	assert.NotEmpty(t, vec)

	// The fallback is the term-frequency embedder.
	want, _ := TermFrequencyEmbedder{}.Embed(context.Background(), "solar output")
	assert.Equal(t, want, vec)
}

func TestProviderFallsBackOnEmptyRemoteVector(t *testing.T) {
	remote := &mockRemote{Vector: []float32{}}
	p := NewProvider(remote)

	vec, err := p.Embed(context.Background(), "solar output")
	require.NoError(t, err)
	assert.NotEmpty(t, vec)
}

func TestProviderWithoutRemote(t *testing.T) {
	p := NewProvider(nil)

	vec, err := p.Embed(context.Background(), "solar output")
	require.NoError(t, err)
	assert.NotEmpty(t, vec)
}

func TestProviderEmptyTextHasNoEmbedding(t *testing.T) {
	remote := &mockRemote{Vector: []float32{1}}
	p := NewProvider(remote)

	for _, text := range []string{"", "   ", "\n\t"} {
		vec, err := p.Embed(context.Background(), text)
		require.NoError(t, err)
		assert.Nil(t, vec, "text %q", text)
	}
	assert.Equal(t, 0, remote.Calls, "empty text never reaches the remote API")
}
