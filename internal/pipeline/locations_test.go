package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayscan/bnbetl/internal/model"
)

const testRegion = "Boston, MA"

func TestHostLocationPair(t *testing.T) {
	tests := []struct {
		name    string
		raw     model.RawListing
		wantNb  string
		wantLoc string
	}{
		{
			name:    "both present",
			raw:     model.RawListing{HostNeighbourhood: "Back Bay", HostLocation: "Boston, Massachusetts"},
			wantNb:  "Back Bay",
			wantLoc: "Boston, Massachusetts",
		},
		{
			name:    "both missing",
			raw:     model.RawListing{},
			wantNb:  "Unknown",
			wantLoc: "Unknown",
		},
		{
			name:    "neighborhood missing",
			raw:     model.RawListing{HostLocation: "Cambridge, MA"},
			wantNb:  "Not Specified",
			wantLoc: "Cambridge, MA",
		},
		{
			name:    "location missing",
			raw:     model.RawListing{HostNeighbourhood: "Fenway"},
			wantNb:  "Fenway",
			wantLoc: testRegion,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nb, loc := hostLocationPair(tt.raw, testRegion)
			assert.Equal(t, tt.wantNb, nb)
			assert.Equal(t, tt.wantLoc, loc)
		})
	}
}

func TestListingLocationPair(t *testing.T) {
	nb, loc := listingLocationPair(model.RawListing{NeighbourhoodCleansed: "Allston"}, testRegion)
	assert.Equal(t, "Allston", nb)
	assert.Equal(t, testRegion, loc)

	nb, loc = listingLocationPair(model.RawListing{}, testRegion)
	assert.Equal(t, "Not Specified", nb)
	assert.Equal(t, testRegion, loc)
}

func TestResolveLocationsDedupAndKeys(t *testing.T) {
	raws := []model.RawListing{
		{HostNeighbourhood: "Back Bay", HostLocation: "Boston, Massachusetts", NeighbourhoodCleansed: "Back Bay"},
		{HostNeighbourhood: "Back Bay", HostLocation: "Boston, Massachusetts", NeighbourhoodCleansed: "Allston"},
		{NeighbourhoodCleansed: "Allston"},
	}
	rc := &ResolutionContext{}
	dim := ResolveLocations(raws, testRegion, rc)

	// Host pairs first in first-seen order, then listing pairs.
	require.Len(t, dim, 4)
	assert.Equal(t, model.Location{LocationID: 1, Neighborhood: "Back Bay", Location: "Boston, Massachusetts"}, dim[0])
	assert.Equal(t, model.Location{LocationID: 2, Neighborhood: "Unknown", Location: "Unknown"}, dim[1])
	assert.Equal(t, model.Location{LocationID: 3, Neighborhood: "Back Bay", Location: testRegion}, dim[2])
	assert.Equal(t, model.Location{LocationID: 4, Neighborhood: "Allston", Location: testRegion}, dim[3])

	// Ids are distinct and every observed pair resolves.
	seen := make(map[int]bool)
	for _, l := range dim {
		assert.False(t, seen[l.LocationID])
		seen[l.LocationID] = true
		id, err := rc.LocationID(l.Neighborhood, l.Location)
		require.NoError(t, err)
		assert.Equal(t, l.LocationID, id)
	}
}

func TestResolveLocationsEveryRowResolvable(t *testing.T) {
	raws := []model.RawListing{
		{HostNeighbourhood: "Fenway"},
		{HostLocation: "Somerville, MA", NeighbourhoodCleansed: "Davis Square"},
		{},
	}
	rc := &ResolutionContext{}
	ResolveLocations(raws, testRegion, rc)

	for _, raw := range raws {
		nb, loc := hostLocationPair(raw, testRegion)
		_, err := rc.LocationID(nb, loc)
		assert.NoError(t, err)

		nb, loc = listingLocationPair(raw, testRegion)
		_, err = rc.LocationID(nb, loc)
		assert.NoError(t, err)
	}
}

func TestLocationIDMissIsError(t *testing.T) {
	rc := &ResolutionContext{locations: map[string]int{}}
	_, err := rc.LocationID("Nowhere", "Atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nowhere, Atlantis")
}
