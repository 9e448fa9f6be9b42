package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-match-go/internal/lexicon"
	"cv-match-go/internal/types"
)

func newLanguageExtractor(t *testing.T) *LanguageExtractor {
	t.Helper()
	return NewLanguageExtractor(lexicon.Default(nil, nil))
}

func TestExtractCVLanguages(t *testing.T) {
	e := newLanguageExtractor(t)

	entries := e.ExtractCV("Anglais courant")
	require.Len(t, entries, 1)
	assert.Equal(t, types.LanguageEntry{Language: "Anglais", Proficiency: "Courant"}, entries[0])
}

func TestExtractCVLanguageWithoutLevel(t *testing.T) {
	e := newLanguageExtractor(t)

	entries := e.ExtractCV("Je parle espagnol")
	require.Len(t, entries, 1)
	assert.Equal(t, "Espagnol", entries[0].Language)
	assert.Equal(t, "Non spécifié", entries[0].Proficiency)
}

func TestExtractCVCEFRTakesPrecedence(t *testing.T) {
	e := newLanguageExtractor(t)

	entries := e.ExtractCV("Anglais niveau b2, usage courant")
	require.Len(t, entries, 1)
	assert.Equal(t, "B2", entries[0].Proficiency)
}

func TestExtractCVAccentedLanguage(t *testing.T) {
	e := newLanguageExtractor(t)

	entries := e.ExtractCV("Thaï natif")
	require.Len(t, entries, 1)
	assert.Equal(t, "Thaï", entries[0].Language)
	assert.Equal(t, "Natif", entries[0].Proficiency)
}

func TestExtractRequiredObligation(t *testing.T) {
	e := newLanguageExtractor(t)

	entries := e.ExtractRequired("anglais obligatoire")
	require.Len(t, entries, 1)
	assert.Equal(t, "Anglais", entries[0].Language)
	assert.Equal(t, "Courant", entries[0].Proficiency)
	assert.True(t, entries[0].Required)
}

func TestExtractRequiredWish(t *testing.T) {
	e := newLanguageExtractor(t)

	entries := e.ExtractRequired("allemand apprécié")
	require.Len(t, entries, 1)
	assert.Equal(t, "Intermédiaire", entries[0].Proficiency)
	assert.False(t, entries[0].Required)
}

func TestExtractRequiredDefault(t *testing.T) {
	e := newLanguageExtractor(t)

	entries := e.ExtractRequired("contact en espagnol avec les clients")
	require.Len(t, entries, 1)
	assert.Equal(t, "Professionnel", entries[0].Proficiency)
	assert.False(t, entries[0].Required)
}

func TestExtractRequiredExplicitLevel(t *testing.T) {
	e := newLanguageExtractor(t)

	entries := e.ExtractRequired("anglais courant obligatoire")
	require.Len(t, entries, 1)
	assert.Equal(t, "Courant", entries[0].Proficiency)
	assert.True(t, entries[0].Required)
}
