package pipeline

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/stayscan/bnbetl/internal/model"
	"github.com/stayscan/bnbetl/internal/textnorm"
)

const unknownHostName = "Unknown Host"

// hostKey is the exact attribute tuple used for host deduplication. Nullable
// rates are folded to strings so the struct stays comparable; two rows
// collapse only when every attribute matches.
type hostKey struct {
	cid            string
	name           string
	url            string
	since          string
	locationID     int
	about          string
	responseTime   string
	responseRate   string
	acceptanceRate string
	superhost      bool
	thumbnailURL   string
	pictureURL     string
	totalListings  int
	verifications  string
	profilePic     bool
	verified       bool
}

func rateKey(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

// ResolveHosts builds the host dimension from the denormalized per-listing
// host columns. Rows with a non-numeric natural host id are dropped; exact
// duplicate attribute tuples collapse to one row; surrogate ids enumerate
// the deduplicated result offset by the host key base. The first surviving
// row for each natural key wins the natural-key map entry.
func ResolveHosts(raws []model.RawListing, region string, rc *ResolutionContext) ([]model.Host, error) {
	seq := newKeySeq(hostKeyBase)
	rc.hosts = make(map[string]int)
	seen := make(map[hostKey]bool)

	var hosts []model.Host
	var dropped int

	for _, raw := range raws {
		cid, ok := canonicalCID(raw.HostID)
		if !ok {
			dropped++
			continue
		}

		nb, loc := hostLocationPair(raw, region)
		locationID, err := rc.LocationID(nb, loc)
		if err != nil {
			return nil, err
		}

		name := strings.TrimSpace(raw.HostName)
		if name == "" {
			name = unknownHostName
		}

		h := model.Host{
			HostCID:            cid,
			HostName:           name,
			HostURL:            raw.HostURL,
			HostSince:          raw.HostSince,
			LocationID:         locationID,
			HostAbout:          textnorm.FlattenText(raw.HostAbout),
			HostResponseTime:   raw.HostResponseTime,
			HostResponseRate:   parsePercent(raw.HostResponseRate),
			HostAcceptanceRate: parsePercent(raw.HostAcceptanceRate),
			HostIsSuperhost:    parseBoolT(raw.HostIsSuperhost),
			HostThumbnailURL:   raw.HostThumbnailURL,
			HostPictureURL:     raw.HostPictureURL,
			TotalListingsCount: parseIntOr(raw.HostTotalListingsCount, 0),
			HostVerifications:  raw.HostVerifications,
			HostHasProfilePic:  parseBoolT(raw.HostHasProfilePic),
			IdentityVerified:   parseBoolT(raw.HostIdentityVerified),
		}

		key := hostKey{
			cid:            h.HostCID,
			name:           h.HostName,
			url:            h.HostURL,
			since:          h.HostSince,
			locationID:     h.LocationID,
			about:          h.HostAbout,
			responseTime:   h.HostResponseTime,
			responseRate:   rateKey(h.HostResponseRate),
			acceptanceRate: rateKey(h.HostAcceptanceRate),
			superhost:      h.HostIsSuperhost,
			thumbnailURL:   h.HostThumbnailURL,
			pictureURL:     h.HostPictureURL,
			totalListings:  h.TotalListingsCount,
			verifications:  h.HostVerifications,
			profilePic:     h.HostHasProfilePic,
			verified:       h.IdentityVerified,
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		h.HostID = seq.Next()
		hosts = append(hosts, h)
		if _, ok := rc.hosts[cid]; !ok {
			rc.hosts[cid] = h.HostID
		}
	}

	zap.L().Info("pipeline: resolved hosts",
		zap.Int("rows", len(raws)),
		zap.Int("hosts", len(hosts)),
		zap.Int("dropped_bad_id", dropped),
	)
	return hosts, nil
}
