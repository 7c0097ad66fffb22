package pipeline

import (
	"strings"

	"go.uber.org/zap"

	"github.com/stayscan/bnbetl/internal/model"
)

// availabilityKey identifies a calendar row after remapping. The warehouse
// keys availability on (listing_id, date), so repeated extract rows for the
// same day collapse to the first occurrence.
type availabilityKey struct {
	listingID int
	date      string
}

// RemapAvailability substitutes listing surrogate keys into the calendar
// extract. The price is stripped of its currency symbol and parsed; the
// availability flag is converted from the source's string truth encoding.
// Rows missing a resolvable listing key or a date after remapping are
// dropped, as are repeats of an already seen (listing, date) pair. The
// adjusted price column is read but never carried forward.
func RemapAvailability(raws []model.RawCalendar, rc *ResolutionContext) []model.Availability {
	seen := make(map[availabilityKey]bool)

	var out []model.Availability
	var dropped int

	for _, raw := range raws {
		listingCID, ok := canonicalCID(raw.ListingID)
		if !ok {
			dropped++
			continue
		}
		listingID, ok := rc.ListingID(listingCID)
		if !ok {
			dropped++
			continue
		}

		date := strings.TrimSpace(raw.Date)
		if date == "" {
			dropped++
			continue
		}

		key := availabilityKey{listingID: listingID, date: date}
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, model.Availability{
			ListingID: listingID,
			Date:      date,
			Available: parseBoolT(raw.Available),
			Price:     parsePrice(raw.Price),
		})
	}

	zap.L().Info("pipeline: remapped availability",
		zap.Int("rows", len(raws)),
		zap.Int("availability", len(out)),
		zap.Int("dropped", dropped),
	)
	return out
}
