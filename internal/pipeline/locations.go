package pipeline

import (
	"strings"

	"go.uber.org/zap"

	"github.com/stayscan/bnbetl/internal/model"
)

// Fill labels for missing neighborhood/location values.
const (
	labelUnknown      = "Unknown"
	labelNotSpecified = "Not Specified"
)

// hostLocationPair applies the fill policy to the host-supplied neighborhood
// and free-text location: both missing collapses to Unknown/Unknown;
// otherwise a missing neighborhood becomes Not Specified and a missing
// location falls back to the fixed region label.
func hostLocationPair(raw model.RawListing, region string) (string, string) {
	nb := strings.TrimSpace(raw.HostNeighbourhood)
	loc := strings.TrimSpace(raw.HostLocation)

	if nb == "" && loc == "" {
		return labelUnknown, labelUnknown
	}
	if nb == "" {
		nb = labelNotSpecified
	}
	if loc == "" {
		loc = region
	}
	return nb, loc
}

// listingLocationPair applies the fill policy to the listing-side
// neighborhood; the listing location is always the fixed region label.
func listingLocationPair(raw model.RawListing, region string) (string, string) {
	nb := strings.TrimSpace(raw.NeighbourhoodCleansed)
	if nb == "" {
		nb = labelNotSpecified
	}
	return nb, region
}

// ResolveLocations builds the location dimension from the union of
// (neighborhood, location) pairs observed on the host side and the listing
// side of the raw extract, deduplicated in first-seen order, and publishes
// the lookup map into the resolution context. Every pair constructed here is
// resolvable downstream; the dimension is exhaustive by construction.
func ResolveLocations(raws []model.RawListing, region string, rc *ResolutionContext) []model.Location {
	seq := newKeySeq(locationKeyBase)
	rc.locations = make(map[string]int)

	var dim []model.Location
	add := func(nb, loc string) {
		key := locationKey(nb, loc)
		if _, ok := rc.locations[key]; ok {
			return
		}
		id := seq.Next()
		rc.locations[key] = id
		dim = append(dim, model.Location{LocationID: id, Neighborhood: nb, Location: loc})
	}

	for _, raw := range raws {
		add(hostLocationPair(raw, region))
	}
	for _, raw := range raws {
		add(listingLocationPair(raw, region))
	}

	zap.L().Info("pipeline: resolved locations",
		zap.Int("rows", len(raws)),
		zap.Int("locations", len(dim)),
	)
	return dim
}
