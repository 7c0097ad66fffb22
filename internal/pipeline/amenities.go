package pipeline

import (
	"go.uber.org/zap"

	"github.com/stayscan/bnbetl/internal/classify"
	"github.com/stayscan/bnbetl/internal/model"
	"github.com/stayscan/bnbetl/internal/textnorm"
)

// amenitySets holds, per raw listing row, the normalized amenity tokens and
// the deduplicated category set resolved from them. Indices are parallel to
// the raw extract.
type amenitySets struct {
	tokens     [][]string
	categories [][]string
}

// ClassifyAmenities normalizes every raw amenity blob into tokens, fits the
// classifier over the distinct token universe, and resolves each row's
// category set. It also materializes the fixed amenity dimension: one row
// per taxonomy category with a freshly assigned surrogate id.
func ClassifyAmenities(raws []model.RawListing, taxonomy []classify.Category, threshold float64) (amenitySets, []model.Amenity, map[string]int) {
	sets := amenitySets{
		tokens:     make([][]string, len(raws)),
		categories: make([][]string, len(raws)),
	}

	uniq := make(map[string]bool)
	var universe []string
	for i, raw := range raws {
		toks := textnorm.SplitAmenities(raw.Amenities)
		sets.tokens[i] = toks
		for _, t := range toks {
			if !uniq[t] {
				uniq[t] = true
				universe = append(universe, t)
			}
		}
	}

	clf := classify.New(taxonomy, universe, threshold)
	for i, toks := range sets.tokens {
		sets.categories[i] = clf.ClassifySet(toks)
	}

	seq := newKeySeq(amenityKeyBase)
	dim := make([]model.Amenity, 0, len(taxonomy))
	nameToID := make(map[string]int, len(taxonomy))
	for _, cat := range taxonomy {
		id := seq.Next()
		dim = append(dim, model.Amenity{AmenityID: id, AmenityName: cat.Name})
		nameToID[cat.Name] = id
	}

	zap.L().Info("pipeline: classified amenities",
		zap.Int("rows", len(raws)),
		zap.Int("distinct_tokens", len(universe)),
		zap.Int("categories", len(dim)),
	)
	return sets, dim, nameToID
}
