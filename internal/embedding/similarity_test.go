package embedding

import (
	"context"
	"errors"
	"testing"

	einoembedding "github.com/cloudwego/eino/components/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-match-go/internal/config"
)

func clientConfig(apiKey string) config.EmbeddingConfig {
	return config.EmbeddingConfig{APIKey: apiKey, Dimensions: 1024}
}

func TestMeanPool(t *testing.T) {
	pooled := MeanPool([][]float64{
		{1, 0, 0},
		{0, 1, 0},
	})
	require.Len(t, pooled, 3)
	// (0.5, 0.5, 0) normalized
	assert.InDelta(t, 0.7071, pooled[0], 1e-4)
	assert.InDelta(t, 0.7071, pooled[1], 1e-4)
	assert.InDelta(t, 0.0, pooled[2], 1e-9)
}

func TestMeanPoolDegenerateInput(t *testing.T) {
	assert.Nil(t, MeanPool(nil))
	assert.Nil(t, MeanPool([][]float64{}))
	assert.Nil(t, MeanPool([][]float64{{1, 0}, {1, 0, 0}}))
	assert.Nil(t, MeanPool([][]float64{{1, 0}, {-1, 0}}))
}

func TestCosine(t *testing.T) {
	a := []float64{1, 2, 3}
	assert.InDelta(t, 1.0, Cosine(a, a), 1e-9)

	assert.InDelta(t, 0.0, Cosine([]float64{1, 0}, []float64{0, 1}), 1e-9)

	// opposite vectors clamp to 0
	assert.InDelta(t, 0.0, Cosine([]float64{1, 0}, []float64{-1, 0}), 1e-9)

	assert.InDelta(t, 0.0, Cosine(nil, a), 1e-9)
	assert.InDelta(t, 0.0, Cosine(a, []float64{1, 2}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float64{0, 0, 0}, a), 1e-9)
}

type stubEmbedder struct {
	vectors [][]float64
	err     error
	calls   int
}

func (s *stubEmbedder) EmbedStrings(_ context.Context, texts []string, _ ...einoembedding.Option) ([][]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = s.vectors[i%len(s.vectors)]
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int { return 3 }

func TestSkillListSimilarity(t *testing.T) {
	stub := &stubEmbedder{vectors: [][]float64{{1, 0, 0}}}
	svc := NewService(func() (Embedder, error) { return stub, nil })

	sim, err := svc.SkillListSimilarity(context.Background(), []string{"python", "sql"}, []string{"python"})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)
	assert.Equal(t, 2, stub.calls)
}

func TestSkillListSimilarityEmptyLists(t *testing.T) {
	stub := &stubEmbedder{vectors: [][]float64{{1, 0, 0}}}
	svc := NewService(func() (Embedder, error) { return stub, nil })

	sim, err := svc.SkillListSimilarity(context.Background(), nil, []string{"python"})
	require.NoError(t, err)
	assert.Zero(t, sim)

	sim, err = svc.SkillListSimilarity(context.Background(), []string{"python"}, nil)
	require.NoError(t, err)
	assert.Zero(t, sim)

	// no backend call was needed
	assert.Zero(t, stub.calls)
}

func TestSkillListSimilarityFactoryError(t *testing.T) {
	svc := NewService(func() (Embedder, error) { return nil, errors.New("no api key") })

	_, err := svc.SkillListSimilarity(context.Background(), []string{"python"}, []string{"java"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSkillListSimilarityBackendError(t *testing.T) {
	stub := &stubEmbedder{err: errors.New("boom")}
	svc := NewService(func() (Embedder, error) { return stub, nil })

	_, err := svc.SkillListSimilarity(context.Background(), []string{"python"}, []string{"java"})
	require.Error(t, err)
	assert.Equal(t, 1, stub.calls)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(clientConfig(""))
	assert.Error(t, err)

	c, err := NewClient(clientConfig("sk-test"))
	require.NoError(t, err)
	assert.Equal(t, 1024, c.Dimensions())
}

func TestClientEmptyInput(t *testing.T) {
	c, err := NewClient(clientConfig("sk-test"))
	require.NoError(t, err)

	vectors, err := c.EmbedStrings(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}
