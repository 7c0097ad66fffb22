package pipeline

import (
	"strings"

	"go.uber.org/zap"

	"github.com/stayscan/bnbetl/internal/model"
	"github.com/stayscan/bnbetl/internal/textnorm"
)

// Fill values for missing review columns.
const (
	unknownReviewer = "Unknown Reviewer"
	noComments      = "No comments provided"
)

// reviewKey is the attribute tuple used for exact-duplicate review removal,
// taken before surrogate id assignment.
type reviewKey struct {
	cid, listingCID, date, reviewerID, reviewerName, comments string
}

// RemapReviews substitutes listing surrogate keys into the review extract
// via the natural-key map. Rows whose listing key is absent from the map
// were dropped during finalization and are silently discarded; that is a
// filter, not an error. Rows without a date are dropped too, since the
// warehouse column does not admit them. Missing reviewer names and comments
// are filled with placeholders, embedded line breaks flattened, exact
// duplicates removed, and a fresh surrogate review id assigned by
// enumeration.
func RemapReviews(raws []model.RawReview, rc *ResolutionContext) []model.Review {
	seq := newKeySeq(reviewKeyBase)
	seen := make(map[reviewKey]bool)

	var reviews []model.Review
	var unresolved, undated int

	for _, raw := range raws {
		listingCID, ok := canonicalCID(raw.ListingID)
		if !ok {
			unresolved++
			continue
		}
		listingID, ok := rc.ListingID(listingCID)
		if !ok {
			unresolved++
			continue
		}

		date := strings.TrimSpace(raw.Date)
		if date == "" {
			undated++
			continue
		}

		name := strings.TrimSpace(raw.ReviewerName)
		if name == "" {
			name = unknownReviewer
		}
		comments := textnorm.FlattenText(raw.Comments)
		if comments == "" {
			comments = noComments
		}

		key := reviewKey{
			cid:          strings.TrimSpace(raw.ID),
			listingCID:   listingCID,
			date:         date,
			reviewerID:   strings.TrimSpace(raw.ReviewerID),
			reviewerName: name,
			comments:     comments,
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		reviews = append(reviews, model.Review{
			ReviewID:     seq.Next(),
			ReviewCID:    key.cid,
			ListingID:    listingID,
			Date:         key.date,
			ReviewerID:   key.reviewerID,
			ReviewerName: name,
			Comments:     comments,
		})
	}

	zap.L().Info("pipeline: remapped reviews",
		zap.Int("rows", len(raws)),
		zap.Int("reviews", len(reviews)),
		zap.Int("unresolved_listing", unresolved),
		zap.Int("undated", undated),
	)
	return reviews
}
