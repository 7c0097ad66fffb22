package pipeline

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/stayscan/bnbetl/internal/model"
	"github.com/stayscan/bnbetl/internal/textnorm"
)

// Fill values for missing listing text columns.
const (
	noDescription = "No description given"
	noOverview    = "No neighborhood overview given"
	noLicense     = "No license information"
)

// first numeric token in a bathrooms_text value like "1.5 shared baths".
var bathroomCountRe = regexp.MustCompile(`\d+\.?\d*`)

// bathroomCount prefers the numeric bathrooms column, falls back to the
// number embedded in bathrooms_text, and bottoms out at zero.
func bathroomCount(bathrooms, bathroomsText string) float64 {
	if v := parseFloatOr(bathrooms, -1); v >= 0 {
		return v
	}
	if m := bathroomCountRe.FindString(bathroomsText); m != "" {
		return parseFloatOr(m, 0)
	}
	return 0
}

// bathroomType derives shared/private from the bathrooms_text description.
func bathroomType(bathroomsText string) string {
	if strings.Contains(strings.ToLower(bathroomsText), "shared") {
		return "shared"
	}
	return "private"
}

// FinalizeListings assembles the cleaned listing dimension. Surrogate keys
// enumerate the raw extract position regardless of later drops, so a row's
// key is independent of host/location resolution. Rows are dropped when a
// natural or foreign key fails numeric coercion; duplicates by natural key
// keep the first occurrence. The finalizer is the sole writer of the listing
// natural-key map and also emits the listing-amenity bridge for surviving
// rows.
func FinalizeListings(raws []model.RawListing, sets amenitySets, region string, amenityIDs map[string]int, rc *ResolutionContext) ([]model.Listing, []model.ListingAmenity, error) {
	rc.listings = make(map[string]int)

	var listings []model.Listing
	var bridge []model.ListingAmenity
	var dropped int

	for i, raw := range raws {
		listingID := listingKeyBase + i

		cid, ok := canonicalCID(raw.ID)
		if !ok {
			dropped++
			continue
		}
		if _, ok := rc.listings[cid]; ok {
			// Duplicate natural key; first occurrence wins.
			continue
		}

		hostCID, ok := canonicalCID(raw.HostID)
		if !ok {
			dropped++
			continue
		}
		hostID, ok := rc.HostID(hostCID)
		if !ok {
			dropped++
			continue
		}

		nb, loc := listingLocationPair(raw, region)
		locationID, err := rc.LocationID(nb, loc)
		if err != nil {
			return nil, nil, err
		}

		description := textnorm.FlattenText(raw.Description)
		if description == "" {
			description = noDescription
		}
		overview := strings.TrimSpace(raw.NeighborhoodOverview)
		if overview == "" {
			overview = noOverview
		}
		license := strings.TrimSpace(raw.License)
		if license == "" {
			license = noLicense
		}

		l := model.Listing{
			ListingID:            listingID,
			ListingCID:           cid,
			Name:                 strings.TrimSpace(raw.Name),
			Description:          description,
			HostID:               hostID,
			ListingURL:           raw.ListingURL,
			LocationID:           locationID,
			NeighborhoodOverview: overview,
			PictureURL:           raw.PictureURL,
			Latitude:             parseFloatOr(raw.Latitude, 0),
			Longitude:            parseFloatOr(raw.Longitude, 0),
			PropertyType:         raw.PropertyType,
			RoomType:             raw.RoomType,
			Accommodates:         parseIntOr(raw.Accommodates, 0),
			Bathrooms:            bathroomCount(raw.Bathrooms, raw.BathroomsText),
			Bedrooms:             parseIntOr(raw.Bedrooms, 1),
			BathroomType:         bathroomType(raw.BathroomsText),
			Beds:                 parseIntOr(raw.Beds, 1),
			Amenities:            strings.Join(sets.categories[i], ","),
			License:              license,
			OverallRating:        parseFloatPtr(raw.ReviewScoresRating),
			AccuracyRating:       parseFloatPtr(raw.ReviewScoresAccuracy),
			CleanlinessRating:    parseFloatPtr(raw.ReviewScoresClean),
			CheckinRating:        parseFloatPtr(raw.ReviewScoresCheckin),
			CommunicationRating:  parseFloatPtr(raw.ReviewScoresComm),
			LocationRating:       parseFloatPtr(raw.ReviewScoresLocation),
			ValueRating:          parseFloatPtr(raw.ReviewScoresValue),
			NumberOfReviews:      parseIntOr(raw.NumberOfReviews, 0),
		}

		listings = append(listings, l)
		rc.listings[cid] = listingID

		for _, cat := range sets.categories[i] {
			bridge = append(bridge, model.ListingAmenity{
				ListingID: listingID,
				AmenityID: amenityIDs[cat],
			})
		}
	}

	zap.L().Info("pipeline: finalized listings",
		zap.Int("rows", len(raws)),
		zap.Int("listings", len(listings)),
		zap.Int("bridge_pairs", len(bridge)),
		zap.Int("dropped", dropped),
	)
	return listings, bridge, nil
}
