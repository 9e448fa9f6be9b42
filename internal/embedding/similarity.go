package embedding

import (
	"context"
	"fmt"
	"math"
	"sync"

	"cv-match-go/internal/logger"
)

// MeanPool averages a set of vectors into one and renormalizes it to
// unit length. Empty input or an all-zero average yields nil.
func MeanPool(vectors [][]float64) []float64 {
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil
	}
	dim := len(vectors[0])
	pooled := make([]float64, dim)
	for _, v := range vectors {
		if len(v) != dim {
			return nil
		}
		for i, x := range v {
			pooled[i] += x
		}
	}
	n := float64(len(vectors))
	norm := 0.0
	for i := range pooled {
		pooled[i] /= n
		norm += pooled[i] * pooled[i]
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for i := range pooled {
		pooled[i] /= norm
	}
	return pooled
}

// Cosine returns the cosine similarity of two vectors clamped to
// [0,1]. A nil, empty or zero vector scores 0.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

// Service computes semantic similarity between skill lists. The
// backend is created lazily on first use and shared for the process
// lifetime.
type Service struct {
	factory func() (Embedder, error)

	once     sync.Once
	embedder Embedder
	initErr  error
}

// NewService wraps a backend factory. The factory runs at most once,
// on the first similarity request that actually needs vectors.
func NewService(factory func() (Embedder, error)) *Service {
	return &Service{factory: factory}
}

func (s *Service) get() (Embedder, error) {
	s.once.Do(func() {
		s.embedder, s.initErr = s.factory()
		if s.initErr != nil {
			logger.Error().Err(s.initErr).Msg("embedding backend initialization failed")
		}
	})
	return s.embedder, s.initErr
}

// SkillListSimilarity encodes both skill lists, mean-pools each into a
// single vector and returns their cosine similarity in [0,1]. When
// either list is empty the similarity is 0 and no backend call is
// made. A backend failure is returned wrapped in ErrUnavailable.
func (s *Service) SkillListSimilarity(ctx context.Context, cvSkills, offerSkills []string) (float64, error) {
	if len(cvSkills) == 0 || len(offerSkills) == 0 {
		return 0, nil
	}

	embedder, err := s.get()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	cvVectors, err := embedder.EmbedStrings(ctx, cvSkills)
	if err != nil {
		return 0, fmt.Errorf("embedding candidate skills: %w", err)
	}
	offerVectors, err := embedder.EmbedStrings(ctx, offerSkills)
	if err != nil {
		return 0, fmt.Errorf("embedding required skills: %w", err)
	}

	sim := Cosine(MeanPool(cvVectors), MeanPool(offerVectors))
	logger.Debug().
		Float64("similarity", sim).
		Int("cv_skills", len(cvSkills)).
		Int("offer_skills", len(offerSkills)).
		Msg("skill list similarity computed")
	return sim, nil
}
