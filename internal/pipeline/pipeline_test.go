package pipeline

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayscan/bnbetl/internal/classify"
	"github.com/stayscan/bnbetl/internal/config"
	"github.com/stayscan/bnbetl/internal/extract"
	"github.com/stayscan/bnbetl/internal/model"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Data: config.DataConfig{
			DownloadDir: filepath.Join(dir, "downloads"),
			CleanedDir:  filepath.Join(dir, "cleaned"),
		},
		Classify: config.ClassifyConfig{SimilarityThreshold: classify.DefaultThreshold},
		Resolve:  config.ResolveConfig{Region: testRegion},
	}
}

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestTransformReferentialCompleteness(t *testing.T) {
	p, err := New(testConfig(t))
	require.NoError(t, err)

	rawListings := []model.RawListing{
		listingRaw("10", "100"),
		listingRaw("20", "200"),
		listingRaw("bad-id", "100"),
	}
	rawListings[1].HostNeighbourhood = ""
	rawListings[1].HostLocation = ""
	rawReviews := []model.RawReview{
		{ListingID: "10", ID: "1", Date: "2024-01-01", ReviewerID: "5", ReviewerName: "Pat", Comments: "ok"},
		{ListingID: "9999999", ID: "2", Date: "2024-01-02", ReviewerID: "6", ReviewerName: "Sam", Comments: "gone"},
	}
	rawCalendar := []model.RawCalendar{
		{ListingID: "20", Date: "2024-06-01", Available: "t", Price: "$120.00"},
		{ListingID: "bad-id", Date: "2024-06-01", Available: "t", Price: "$50.00"},
	}

	tables, err := p.Transform(rawListings, rawReviews, rawCalendar)
	require.NoError(t, err)

	require.Len(t, tables.Listings, 2)
	require.Len(t, tables.Reviews, 1)
	require.Len(t, tables.Availability, 1)

	hostIDs := make(map[int]bool)
	for _, h := range tables.Hosts {
		hostIDs[h.HostID] = true
	}
	locationIDs := make(map[int]bool)
	for _, l := range tables.Locations {
		locationIDs[l.LocationID] = true
	}
	listingIDs := make(map[int]bool)
	for _, l := range tables.Listings {
		assert.True(t, hostIDs[l.HostID])
		assert.True(t, locationIDs[l.LocationID])
		listingIDs[l.ListingID] = true
	}
	for _, h := range tables.Hosts {
		assert.True(t, locationIDs[h.LocationID])
	}
	amenityIDs := make(map[int]bool)
	for _, a := range tables.Amenities {
		amenityIDs[a.AmenityID] = true
	}
	for _, la := range tables.ListingAmenities {
		assert.True(t, listingIDs[la.ListingID])
		assert.True(t, amenityIDs[la.AmenityID])
	}
	for _, r := range tables.Reviews {
		assert.True(t, listingIDs[r.ListingID])
	}
	for _, a := range tables.Availability {
		assert.True(t, listingIDs[a.ListingID])
	}
}

func TestTransformEmptyExtracts(t *testing.T) {
	p, err := New(testConfig(t))
	require.NoError(t, err)

	tables, err := p.Transform(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, tables.Listings)
	assert.Empty(t, tables.Hosts)
	assert.Empty(t, tables.Locations)
	assert.Empty(t, tables.Reviews)
	assert.Empty(t, tables.Availability)

	// The amenity dimension is fixed by the taxonomy, not the data.
	assert.NotEmpty(t, tables.Amenities)
}

func TestRunWritesAllArtifacts(t *testing.T) {
	cfg := testConfig(t)
	p, err := New(cfg)
	require.NoError(t, err)

	writeGzip(t, filepath.Join(cfg.Data.DownloadDir, extract.ListingsExtract),
		"id,host_id,host_name,host_neighbourhood,host_location,neighbourhood_cleansed,amenities,name\n"+
			`10,100,Alice,Back Bay,"Boston, Massachusetts",Back Bay,"[""Wifi""]",Loft`+"\n")
	writeGzip(t, filepath.Join(cfg.Data.DownloadDir, extract.ReviewsExtract),
		"listing_id,id,date,reviewer_id,reviewer_name,comments\n10,1,2024-01-01,5,Pat,ok\n")
	// No calendar extract on disk; the run degrades to an empty table.

	manifest, err := p.Run()
	require.NoError(t, err)
	require.NotNil(t, manifest)
	assert.NotEmpty(t, manifest.RunID)
	assert.Equal(t, 1, manifest.RowCounts["listings"])
	assert.Equal(t, 1, manifest.RowCounts["reviews"])
	assert.Equal(t, 0, manifest.RowCounts["availability"])

	for _, name := range []string{
		extract.ListingsFile,
		extract.HostsFile,
		extract.LocationsFile,
		extract.AmenitiesFile,
		extract.ListingAmenitiesFile,
		extract.ReviewsFile,
		extract.AvailabilityFile,
	} {
		_, err := os.Stat(filepath.Join(cfg.Data.CleanedDir, name))
		assert.NoError(t, err, name)
	}

	listings, err := extract.ReadCleaned[model.Listing](filepath.Join(cfg.Data.CleanedDir, extract.ListingsFile))
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, 1000, listings[0].ListingID)
	assert.Equal(t, "10", listings[0].ListingCID)
}
