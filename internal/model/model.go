// Package model defines the cleaned relational entities produced by the
// pipeline and the raw extract rows it consumes.
package model

import "time"

// Surrogate keys are assigned fresh each run and are unique only within that
// run. Natural keys (the *CID fields) are the source-supplied identifiers and
// are carried through so the output stays auditable against the extract.

// Listing is one row of the cleaned listing dimension.
type Listing struct {
	ListingID            int      `csv:"listing_id" json:"listing_id"`
	ListingCID           string   `csv:"listing_cid" json:"listing_cid"`
	Name                 string   `csv:"name" json:"name"`
	Description          string   `csv:"description" json:"description"`
	HostID               int      `csv:"host_id" json:"host_id"`
	ListingURL           string   `csv:"listing_url" json:"listing_url"`
	LocationID           int      `csv:"location_id" json:"location_id"`
	NeighborhoodOverview string   `csv:"neighborhood_overview" json:"neighborhood_overview"`
	PictureURL           string   `csv:"picture_url" json:"picture_url"`
	Latitude             float64  `csv:"latitude" json:"latitude"`
	Longitude            float64  `csv:"longitude" json:"longitude"`
	PropertyType         string   `csv:"property_type" json:"property_type"`
	RoomType             string   `csv:"room_type" json:"room_type"`
	Accommodates         int      `csv:"accommodates" json:"accommodates"`
	Bathrooms            float64  `csv:"bathrooms" json:"bathrooms"`
	Bedrooms             int      `csv:"bedrooms" json:"bedrooms"`
	BathroomType         string   `csv:"bathroom_type" json:"bathroom_type"`
	Beds                 int      `csv:"beds" json:"beds"`
	Amenities            string   `csv:"amenities" json:"amenities"`
	License              string   `csv:"license" json:"license"`
	OverallRating        *float64 `csv:"overall_rating" json:"overall_rating,omitempty"`
	AccuracyRating       *float64 `csv:"accuracy_rating" json:"accuracy_rating,omitempty"`
	CleanlinessRating    *float64 `csv:"cleanliness_rating" json:"cleanliness_rating,omitempty"`
	CheckinRating        *float64 `csv:"checkin_rating" json:"checkin_rating,omitempty"`
	CommunicationRating  *float64 `csv:"communication_rating" json:"communication_rating,omitempty"`
	LocationRating       *float64 `csv:"location_rating" json:"location_rating,omitempty"`
	ValueRating          *float64 `csv:"value_rating" json:"value_rating,omitempty"`
	NumberOfReviews      int      `csv:"number_of_reviews" json:"number_of_reviews"`
}

// Host is one row of the cleaned host dimension.
type Host struct {
	HostID             int      `csv:"host_id" json:"host_id"`
	HostCID            string   `csv:"host_cid" json:"host_cid"`
	HostName           string   `csv:"host_name" json:"host_name"`
	HostURL            string   `csv:"host_url" json:"host_url"`
	HostSince          string   `csv:"host_since" json:"host_since"`
	LocationID         int      `csv:"location_id" json:"location_id"`
	HostAbout          string   `csv:"host_about" json:"host_about"`
	HostResponseTime   string   `csv:"host_response_time" json:"host_response_time"`
	HostResponseRate   *float64 `csv:"host_response_rate" json:"host_response_rate,omitempty"`
	HostAcceptanceRate *float64 `csv:"host_acceptance_rate" json:"host_acceptance_rate,omitempty"`
	HostIsSuperhost    bool     `csv:"host_is_superhost" json:"host_is_superhost"`
	HostThumbnailURL   string   `csv:"host_thumbnail_url" json:"host_thumbnail_url"`
	HostPictureURL     string   `csv:"host_picture_url" json:"host_picture_url"`
	TotalListingsCount int      `csv:"host_total_listings_count" json:"host_total_listings_count"`
	HostVerifications  string   `csv:"host_verifications" json:"host_verifications"`
	HostHasProfilePic  bool     `csv:"host_has_profile_pic" json:"host_has_profile_pic"`
	IdentityVerified   bool     `csv:"host_identity_verified" json:"host_identity_verified"`
}

// Location is one row of the location dimension: a distinct
// (neighborhood, location) pair.
type Location struct {
	LocationID   int    `csv:"location_id" json:"location_id"`
	Neighborhood string `csv:"neighborhood" json:"neighborhood"`
	Location     string `csv:"location" json:"location"`
}

// Amenity is one row of the fixed amenity-category dimension.
type Amenity struct {
	AmenityID   int    `csv:"amenity_id" json:"amenity_id"`
	AmenityName string `csv:"amenity_name" json:"amenity_name"`
}

// ListingAmenity is one row of the listing-to-amenity bridge table.
type ListingAmenity struct {
	ListingID int `csv:"listing_id" json:"listing_id"`
	AmenityID int `csv:"amenity_id" json:"amenity_id"`
}

// Review is one row of the cleaned review fact table.
type Review struct {
	ReviewID     int    `csv:"review_id" json:"review_id"`
	ReviewCID    string `csv:"review_cid" json:"review_cid"`
	ListingID    int    `csv:"listing_id" json:"listing_id"`
	Date         string `csv:"date" json:"date"`
	ReviewerID   string `csv:"reviewer_id" json:"reviewer_id"`
	ReviewerName string `csv:"reviewer_name" json:"reviewer_name"`
	Comments     string `csv:"comments" json:"comments"`
}

// Availability is one row of the per-listing per-date availability fact table.
type Availability struct {
	ListingID int      `csv:"listing_id" json:"listing_id"`
	Date      string   `csv:"date" json:"date"`
	Available bool     `csv:"available" json:"available"`
	Price     *float64 `csv:"price" json:"price,omitempty"`
}

// Tables bundles the seven cleaned artifacts of one pipeline run.
type Tables struct {
	Listings         []Listing
	Hosts            []Host
	Locations        []Location
	Amenities        []Amenity
	ListingAmenities []ListingAmenity
	Reviews          []Review
	Availability     []Availability
}

// Manifest records the outcome of one pipeline run.
type Manifest struct {
	RunID     string         `json:"run_id"`
	StartedAt time.Time      `json:"started_at"`
	Duration  time.Duration  `json:"duration"`
	RowCounts map[string]int `json:"row_counts"`
}
