package wordlists

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_Sorted(t *testing.T) {
	cats := Categories()
	require.NotEmpty(t, cats)
	for i := 1; i < len(cats); i++ {
		assert.Less(t, cats[i-1], cats[i])
	}
}

func TestWordsFor_KnownCategoryDefaultLanguage(t *testing.T) {
	words, ok := WordsFor("animals", "")
	require.True(t, ok)
	assert.NotEmpty(t, words)
}

func TestWordsFor_UnknownLanguageFallsBackToDefault(t *testing.T) {
	words, ok := WordsFor("animals", "fr")
	require.True(t, ok)
	fallback, _ := WordsFor("animals", DefaultLanguage)
	assert.Equal(t, fallback, words)
}

func TestWordsFor_UnknownCategory(t *testing.T) {
	_, ok := WordsFor("nonexistent", "en")
	assert.False(t, ok)
}
