package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayscan/bnbetl/internal/textnorm"
)

func TestLoadTaxonomy(t *testing.T) {
	cats, err := LoadTaxonomy()
	require.NoError(t, err)

	assert.Len(t, cats, 28)
	assert.Equal(t, "TV", cats[0].Name)
	assert.Equal(t, CategoryNoAmenities, cats[len(cats)-1].Name)

	for _, c := range cats {
		assert.NotEmpty(t, c.Keywords, "category %s has no keywords", c.Name)
	}
}

func newTestClassifier(t *testing.T, tokens []string) *Classifier {
	t.Helper()
	cats, err := LoadTaxonomy()
	require.NoError(t, err)
	return New(cats, tokens, 0)
}

func TestClassifyExactKeyword(t *testing.T) {
	c := newTestClassifier(t, []string{"wifi", "kitchen", "air conditioning"})

	assert.Contains(t, c.Classify("wifi"), "Internet")
	assert.Contains(t, c.Classify("kitchen"), "Kitchen")
	assert.Contains(t, c.Classify("air conditioning"), "Air Conditioning")
}

func TestClassifyOutOfVocabulary(t *testing.T) {
	c := newTestClassifier(t, []string{"zzyzx"})
	assert.Equal(t, []string{CategoryMiscellaneous}, c.Classify("zzyzx"))
}

func TestClassifyUnknownToken(t *testing.T) {
	// Token never presented at fit time has no cached vector.
	c := newTestClassifier(t, []string{"wifi"})
	assert.Equal(t, []string{CategoryMiscellaneous}, c.Classify("never seen"))
}

func TestClassifyNoAmenitiesToken(t *testing.T) {
	c := newTestClassifier(t, []string{textnorm.NoAmenitiesToken})
	assert.Equal(t, []string{CategoryNoAmenities}, c.Classify(textnorm.NoAmenitiesToken))
}

func TestClassifyNeverEmpty(t *testing.T) {
	tokens := []string{"wifi", "qwertyuiop", "hot tub", textnorm.NoAmenitiesToken}
	c := newTestClassifier(t, tokens)

	for _, tok := range tokens {
		assert.NotEmpty(t, c.Classify(tok), "token %q classified to nothing", tok)
	}
}

func TestClassifySetUnion(t *testing.T) {
	c := newTestClassifier(t, []string{"wifi", "kitchen", "air conditioning"})

	got := c.ClassifySet([]string{"wifi", "kitchen", "air conditioning"})
	assert.Contains(t, got, "Internet")
	assert.Contains(t, got, "Kitchen")
	assert.Contains(t, got, "Air Conditioning")
}

func TestClassifySetDeduplicates(t *testing.T) {
	c := newTestClassifier(t, []string{"wifi", "ethernet"})

	got := c.ClassifySet([]string{"wifi", "ethernet", "wifi"})
	count := 0
	for _, cat := range got {
		if cat == "Internet" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestClassifyMultiLabel(t *testing.T) {
	// "pool" appears in both the Pool and Entertainment ("pool table")
	// keyword bags; multi-label matches are kept.
	c := newTestClassifier(t, []string{"pool"})
	got := c.Classify("pool")
	assert.Contains(t, got, "Pool")
}

func TestNewUsesDefaultThreshold(t *testing.T) {
	cats, err := LoadTaxonomy()
	require.NoError(t, err)

	c := New(cats, []string{"wifi"}, 0)
	assert.InDelta(t, DefaultThreshold, c.threshold, 1e-9)
}
