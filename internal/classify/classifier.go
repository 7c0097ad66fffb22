// Package classify maps normalized amenity tokens to semantic categories
// using TF-IDF vector similarity against a fixed taxonomy.
package classify

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/stayscan/bnbetl/internal/textnorm"
	"github.com/stayscan/bnbetl/internal/vectorize"
)

// DefaultThreshold is the cosine-similarity cutoff above which a token is
// considered a member of a category. Empirically chosen; tunable via config.
const DefaultThreshold = 0.2

// Classifier assigns amenity categories to raw tokens. The vector space is
// fitted jointly over the taxonomy keyword bags and the full universe of
// distinct tokens observed in the data, so it is rebuilt once per run.
type Classifier struct {
	labels    []string
	catVecs   []vectorize.Vector
	tokenVecs map[string]vectorize.Vector
	threshold float64
}

// New fits a Classifier over the taxonomy and the distinct raw tokens.
// A threshold <= 0 falls back to DefaultThreshold.
func New(taxonomy []Category, tokens []string, threshold float64) *Classifier {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	labels := make([]string, len(taxonomy))
	catTexts := make([]string, len(taxonomy))
	for i, cat := range taxonomy {
		labels[i] = cat.Name
		catTexts[i] = strings.Join(cat.Keywords, " ")
	}

	corpus := make([]string, 0, len(catTexts)+len(tokens))
	corpus = append(corpus, catTexts...)
	corpus = append(corpus, tokens...)

	v := vectorize.Fit(corpus)

	tokenVecs := make(map[string]vectorize.Vector, len(tokens))
	for _, tok := range tokens {
		tokenVecs[tok] = v.Transform(tok)
	}

	zap.L().Debug("classify: fitted vector space",
		zap.Int("categories", len(labels)),
		zap.Int("tokens", len(tokens)),
	)

	return &Classifier{
		labels:    labels,
		catVecs:   v.TransformAll(catTexts),
		tokenVecs: tokenVecs,
		threshold: threshold,
	}
}

// Classify returns the category names matching a token, in taxonomy order.
// A token is a member of every category whose keyword-bag vector clears the
// similarity threshold; tokens with no vector or no match fall through to
// the catch-all. The no-amenities token short-circuits to its dedicated
// category so the assignment stays deterministic.
func (c *Classifier) Classify(token string) []string {
	if token == textnorm.NoAmenitiesToken {
		return []string{CategoryNoAmenities}
	}

	vec, ok := c.tokenVecs[token]
	if !ok || vec.NNZ() == 0 {
		return []string{CategoryMiscellaneous}
	}

	var matches []string
	for i, catVec := range c.catVecs {
		if vectorize.Cosine(vec, catVec) > c.threshold {
			matches = append(matches, c.labels[i])
		}
	}
	if len(matches) == 0 {
		return []string{CategoryMiscellaneous}
	}
	return matches
}

// ClassifySet returns the deduplicated union of categories over a listing's
// tokens, sorted for stable output.
func (c *Classifier) ClassifySet(tokens []string) []string {
	seen := make(map[string]bool)
	for _, tok := range tokens {
		for _, cat := range c.Classify(tok) {
			seen[cat] = true
		}
	}

	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}
