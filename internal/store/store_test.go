package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayscan/bnbetl/internal/config"
	"github.com/stayscan/bnbetl/internal/model"
)

func ptr(v float64) *float64 { return &v }

func newSampleTables() *model.Tables {
	return &model.Tables{
		Locations: []model.Location{
			{LocationID: 1, Neighborhood: "Back Bay", Location: "Boston, MA"},
			{LocationID: 2, Neighborhood: "Unknown", Location: "Unknown"},
		},
		Hosts: []model.Host{
			{HostID: 2000, HostCID: "100", HostName: "Alice", LocationID: 1, HostResponseRate: ptr(95)},
			{HostID: 2001, HostCID: "200", HostName: "Unknown Host", LocationID: 2},
		},
		Amenities: []model.Amenity{
			{AmenityID: 1, AmenityName: "Internet"},
			{AmenityID: 2, AmenityName: "Kitchen"},
		},
		Listings: []model.Listing{
			{
				ListingID: 1000, ListingCID: "10", Name: "Cozy loft", HostID: 2000,
				LocationID: 1, Bedrooms: 1, Beds: 2, Amenities: "Internet,Kitchen",
				OverallRating: ptr(4.8),
			},
		},
		ListingAmenities: []model.ListingAmenity{
			{ListingID: 1000, AmenityID: 1},
			{ListingID: 1000, AmenityID: 2},
		},
		Reviews: []model.Review{
			{ReviewID: 3000, ReviewCID: "7", ListingID: 1000, Date: "2024-01-15", ReviewerID: "55", ReviewerName: "Pat", Comments: "Great"},
		},
		Availability: []model.Availability{
			{ListingID: 1000, Date: "2024-06-01", Available: true, Price: ptr(150)},
			{ListingID: 1000, Date: "2024-06-02", Available: false},
		},
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}

func TestInsertSQL(t *testing.T) {
	got := insertSQL("locations", []string{"location_id", "neighborhood", "location"})
	assert.Equal(t, "INSERT INTO locations (location_id, neighborhood, location) VALUES (?, ?, ?)", got)
}

func TestRowHelpersPreserveColumnOrder(t *testing.T) {
	tables := newSampleTables()

	rows := locationRows(tables.Locations)
	require.Len(t, rows, 2)
	require.Len(t, rows[0], len(locationColumns))
	assert.Equal(t, []any{1, "Back Bay", "Boston, MA"}, rows[0])

	hrows := hostRows(tables.Hosts)
	require.Len(t, hrows[0], len(hostColumns))
	assert.Equal(t, 2000, hrows[0][0])
	assert.Equal(t, "100", hrows[0][1])

	lrows := listingRows(tables.Listings)
	require.Len(t, lrows[0], len(listingColumns))
	assert.Equal(t, 1000, lrows[0][0])
	assert.Equal(t, "10", lrows[0][1])

	arows := availabilityRows(tables.Availability)
	require.Len(t, arows[0], len(availabilityColumns))
	assert.Nil(t, arows[1][3])
}
