package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayscan/bnbetl/internal/classify"
	"github.com/stayscan/bnbetl/internal/model"
)

func TestClassifyAmenities(t *testing.T) {
	taxonomy, err := classify.LoadTaxonomy()
	require.NoError(t, err)

	raws := []model.RawListing{
		{Amenities: `["Wifi", "Kitchen", "Air conditioning"]`},
		{Amenities: ""},
		{Amenities: `["Quantum flux stabilizer"]`},
	}
	sets, dim, nameToID := ClassifyAmenities(raws, taxonomy, classify.DefaultThreshold)

	require.Len(t, sets.tokens, 3)
	require.Len(t, sets.categories, 3)

	// Every row gets at least one category.
	for i, cats := range sets.categories {
		assert.NotEmpty(t, cats, "row %d", i)
	}

	assert.Contains(t, sets.categories[0], "Internet")
	assert.Contains(t, sets.categories[0], "Kitchen")
	assert.Equal(t, []string{classify.CategoryNoAmenities}, sets.categories[1])
	assert.Equal(t, []string{classify.CategoryMiscellaneous}, sets.categories[2])

	// The amenity dimension enumerates the taxonomy with distinct ids
	// starting at the amenity key base.
	require.Len(t, dim, len(taxonomy))
	for i, a := range dim {
		assert.Equal(t, amenityKeyBase+i, a.AmenityID)
		assert.Equal(t, taxonomy[i].Name, a.AmenityName)
		assert.Equal(t, a.AmenityID, nameToID[a.AmenityName])
	}
}

func TestClassifyAmenitiesEmptyInput(t *testing.T) {
	taxonomy, err := classify.LoadTaxonomy()
	require.NoError(t, err)

	sets, dim, _ := ClassifyAmenities(nil, taxonomy, classify.DefaultThreshold)
	assert.Empty(t, sets.tokens)
	assert.Len(t, dim, len(taxonomy))
}
