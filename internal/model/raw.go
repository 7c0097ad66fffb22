package model

// Raw extract rows mirror the source-defined column schemas of the quarterly
// compressed extracts. Every field is kept as a string: the source mixes
// blanks, "N/A", percentage suffixes, and currency symbols freely, so all
// coercion happens in the pipeline where a failed parse can drop the row.

// RawListing is one row of the listings extract. It carries both the
// listing-level columns and the denormalized per-listing host columns.
type RawListing struct {
	ID                     string `csv:"id"`
	Name                   string `csv:"name"`
	Description            string `csv:"description"`
	NeighborhoodOverview   string `csv:"neighborhood_overview"`
	PictureURL             string `csv:"picture_url"`
	ListingURL             string `csv:"listing_url"`
	HostID                 string `csv:"host_id"`
	HostURL                string `csv:"host_url"`
	HostName               string `csv:"host_name"`
	HostSince              string `csv:"host_since"`
	HostLocation           string `csv:"host_location"`
	HostAbout              string `csv:"host_about"`
	HostResponseTime       string `csv:"host_response_time"`
	HostResponseRate       string `csv:"host_response_rate"`
	HostAcceptanceRate     string `csv:"host_acceptance_rate"`
	HostIsSuperhost        string `csv:"host_is_superhost"`
	HostThumbnailURL       string `csv:"host_thumbnail_url"`
	HostPictureURL         string `csv:"host_picture_url"`
	HostNeighbourhood      string `csv:"host_neighbourhood"`
	HostTotalListingsCount string `csv:"host_total_listings_count"`
	HostVerifications      string `csv:"host_verifications"`
	HostHasProfilePic      string `csv:"host_has_profile_pic"`
	HostIdentityVerified   string `csv:"host_identity_verified"`
	NeighbourhoodCleansed  string `csv:"neighbourhood_cleansed"`
	Latitude               string `csv:"latitude"`
	Longitude              string `csv:"longitude"`
	PropertyType           string `csv:"property_type"`
	RoomType               string `csv:"room_type"`
	Accommodates           string `csv:"accommodates"`
	Bathrooms              string `csv:"bathrooms"`
	BathroomsText          string `csv:"bathrooms_text"`
	Bedrooms               string `csv:"bedrooms"`
	Beds                   string `csv:"beds"`
	Amenities              string `csv:"amenities"`
	License                string `csv:"license"`
	NumberOfReviews        string `csv:"number_of_reviews"`
	ReviewScoresRating     string `csv:"review_scores_rating"`
	ReviewScoresAccuracy   string `csv:"review_scores_accuracy"`
	ReviewScoresClean      string `csv:"review_scores_cleanliness"`
	ReviewScoresCheckin    string `csv:"review_scores_checkin"`
	ReviewScoresComm       string `csv:"review_scores_communication"`
	ReviewScoresLocation   string `csv:"review_scores_location"`
	ReviewScoresValue      string `csv:"review_scores_value"`
}

// RawReview is one row of the reviews extract.
type RawReview struct {
	ListingID    string `csv:"listing_id"`
	ID           string `csv:"id"`
	Date         string `csv:"date"`
	ReviewerID   string `csv:"reviewer_id"`
	ReviewerName string `csv:"reviewer_name"`
	Comments     string `csv:"comments"`
}

// RawCalendar is one row of the calendar extract. AdjustedPrice is read but
// never carried into the output.
type RawCalendar struct {
	ListingID     string `csv:"listing_id"`
	Date          string `csv:"date"`
	Available     string `csv:"available"`
	Price         string `csv:"price"`
	AdjustedPrice string `csv:"adjusted_price"`
}
