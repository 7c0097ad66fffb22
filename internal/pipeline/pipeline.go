// Package pipeline implements the normalization and entity-resolution core:
// amenity classification, location/host resolution, listing finalization,
// and fact-table id remapping. Stages run sequentially and each fully
// materializes its output before the next begins.
package pipeline

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/stayscan/bnbetl/internal/classify"
	"github.com/stayscan/bnbetl/internal/config"
	"github.com/stayscan/bnbetl/internal/extract"
	"github.com/stayscan/bnbetl/internal/model"
)

// Pipeline runs the preprocessing stages over one quarterly extract set.
type Pipeline struct {
	cfg      *config.Config
	taxonomy []classify.Category
}

// New creates a Pipeline with the embedded taxonomy loaded.
func New(cfg *config.Config) (*Pipeline, error) {
	taxonomy, err := classify.LoadTaxonomy()
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, taxonomy: taxonomy}, nil
}

// Transform runs the in-memory core over already-read raw rows: classify
// amenities, resolve locations and hosts, finalize listings, then remap the
// fact extracts through the published natural-key maps.
func (p *Pipeline) Transform(rawListings []model.RawListing, rawReviews []model.RawReview, rawCalendar []model.RawCalendar) (*model.Tables, error) {
	region := p.cfg.Resolve.Region
	rc := &ResolutionContext{}

	sets, amenities, amenityIDs := ClassifyAmenities(rawListings, p.taxonomy, p.cfg.Classify.SimilarityThreshold)

	locations := ResolveLocations(rawListings, region, rc)

	hosts, err := ResolveHosts(rawListings, region, rc)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: resolve hosts")
	}

	listings, bridge, err := FinalizeListings(rawListings, sets, region, amenityIDs, rc)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: finalize listings")
	}

	reviews := RemapReviews(rawReviews, rc)
	availability := RemapAvailability(rawCalendar, rc)

	return &model.Tables{
		Listings:         listings,
		Hosts:            hosts,
		Locations:        locations,
		Amenities:        amenities,
		ListingAmenities: bridge,
		Reviews:          reviews,
		Availability:     availability,
	}, nil
}

// Run reads the source extracts from the download directory, transforms
// them, and writes the seven cleaned artifacts to the cleaned directory.
// Missing extracts degrade to empty outputs rather than failing the run.
func (p *Pipeline) Run() (*model.Manifest, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))
	log.Info("pipeline: starting preprocessing run")

	downloads := p.cfg.Data.DownloadDir
	rawListings := extract.ReadExtract[model.RawListing](filepath.Join(downloads, extract.ListingsExtract))
	rawReviews := extract.ReadExtract[model.RawReview](filepath.Join(downloads, extract.ReviewsExtract))
	rawCalendar := extract.ReadExtract[model.RawCalendar](filepath.Join(downloads, extract.CalendarExtract))

	tables, err := p.Transform(rawListings, rawReviews, rawCalendar)
	if err != nil {
		return nil, err
	}

	cleaned := p.cfg.Data.CleanedDir
	writes := []struct {
		file  string
		write func(string) error
	}{
		{extract.ListingsFile, func(path string) error { return extract.WriteCleaned(path, tables.Listings) }},
		{extract.HostsFile, func(path string) error { return extract.WriteCleaned(path, tables.Hosts) }},
		{extract.LocationsFile, func(path string) error { return extract.WriteCleaned(path, tables.Locations) }},
		{extract.AmenitiesFile, func(path string) error { return extract.WriteCleaned(path, tables.Amenities) }},
		{extract.ListingAmenitiesFile, func(path string) error { return extract.WriteCleaned(path, tables.ListingAmenities) }},
		{extract.ReviewsFile, func(path string) error { return extract.WriteCleaned(path, tables.Reviews) }},
		{extract.AvailabilityFile, func(path string) error { return extract.WriteCleaned(path, tables.Availability) }},
	}
	for _, w := range writes {
		if err := w.write(filepath.Join(cleaned, w.file)); err != nil {
			return nil, err
		}
	}

	manifest := &model.Manifest{
		RunID:     runID,
		StartedAt: start,
		Duration:  time.Since(start),
		RowCounts: map[string]int{
			"listings":          len(tables.Listings),
			"hosts":             len(tables.Hosts),
			"locations":         len(tables.Locations),
			"amenities":         len(tables.Amenities),
			"listing_amenities": len(tables.ListingAmenities),
			"reviews":           len(tables.Reviews),
			"availability":      len(tables.Availability),
		},
	}

	log.Info("pipeline: preprocessing complete",
		zap.Duration("duration", manifest.Duration),
		zap.Int("listings", len(tables.Listings)),
		zap.Int("hosts", len(tables.Hosts)),
		zap.Int("reviews", len(tables.Reviews)),
		zap.Int("availability", len(tables.Availability)),
	)
	return manifest, nil
}
