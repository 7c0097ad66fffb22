// Package store loads the cleaned tables into the warehouse. Loads are
// truncate-and-replace: surrogate keys are only unique within a run, so
// appending across runs would collide.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/stayscan/bnbetl/internal/config"
	"github.com/stayscan/bnbetl/internal/model"
)

// Loader is the persistence interface for one load of the cleaned tables.
type Loader interface {
	// Migrate creates the warehouse schema and tables if absent.
	Migrate(ctx context.Context) error

	// Load truncates the warehouse tables and bulk-loads the cleaned
	// tables in dependency order. Returns loaded row counts per table.
	Load(ctx context.Context, tables *model.Tables) (map[string]int64, error)

	Close() error
}

// Open creates a Loader for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Loader, error) {
	switch cfg.Driver {
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL, cfg.Schema)
	case "sqlite":
		return NewSQLite(cfg.SQLitePath)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}

// Table names in load order. Dimensions first so foreign keys resolve, then
// the bridge and fact tables.
const (
	TableLocations        = "locations"
	TableHosts            = "hosts"
	TableAmenities        = "amenities"
	TableListings         = "listings"
	TableListingAmenities = "listing_amenities"
	TableReviews          = "reviews"
	TableAvailability     = "availability"
)

// AllTables lists every warehouse table in load order.
var AllTables = []string{
	TableLocations,
	TableHosts,
	TableAmenities,
	TableListings,
	TableListingAmenities,
	TableReviews,
	TableAvailability,
}

var locationColumns = []string{"location_id", "neighborhood", "location"}

var hostColumns = []string{
	"host_id", "host_cid", "host_name", "host_url", "host_since",
	"location_id", "host_about", "host_response_time", "host_response_rate",
	"host_acceptance_rate", "host_is_superhost", "host_thumbnail_url",
	"host_picture_url", "host_total_listings_count", "host_verifications",
	"host_has_profile_pic", "host_identity_verified",
}

var amenityColumns = []string{"amenity_id", "amenity_name"}

var listingColumns = []string{
	"listing_id", "listing_cid", "name", "description", "host_id",
	"listing_url", "location_id", "neighborhood_overview", "picture_url",
	"latitude", "longitude", "property_type", "room_type", "accommodates",
	"bathrooms", "bedrooms", "bathroom_type", "beds", "amenities", "license",
	"overall_rating", "accuracy_rating", "cleanliness_rating",
	"checkin_rating", "communication_rating", "location_rating",
	"value_rating", "number_of_reviews",
}

var listingAmenityColumns = []string{"listing_id", "amenity_id"}

var reviewColumns = []string{
	"review_id", "review_cid", "listing_id", "date", "reviewer_id",
	"reviewer_name", "comments",
}

var availabilityColumns = []string{"listing_id", "date", "available", "price"}

func locationRows(in []model.Location) [][]any {
	rows := make([][]any, len(in))
	for i, v := range in {
		rows[i] = []any{v.LocationID, v.Neighborhood, v.Location}
	}
	return rows
}

func hostRows(in []model.Host) [][]any {
	rows := make([][]any, len(in))
	for i, v := range in {
		rows[i] = []any{
			v.HostID, v.HostCID, v.HostName, v.HostURL, v.HostSince,
			v.LocationID, v.HostAbout, v.HostResponseTime, v.HostResponseRate,
			v.HostAcceptanceRate, v.HostIsSuperhost, v.HostThumbnailURL,
			v.HostPictureURL, v.TotalListingsCount, v.HostVerifications,
			v.HostHasProfilePic, v.IdentityVerified,
		}
	}
	return rows
}

func amenityRows(in []model.Amenity) [][]any {
	rows := make([][]any, len(in))
	for i, v := range in {
		rows[i] = []any{v.AmenityID, v.AmenityName}
	}
	return rows
}

func listingRows(in []model.Listing) [][]any {
	rows := make([][]any, len(in))
	for i, v := range in {
		rows[i] = []any{
			v.ListingID, v.ListingCID, v.Name, v.Description, v.HostID,
			v.ListingURL, v.LocationID, v.NeighborhoodOverview, v.PictureURL,
			v.Latitude, v.Longitude, v.PropertyType, v.RoomType, v.Accommodates,
			v.Bathrooms, v.Bedrooms, v.BathroomType, v.Beds, v.Amenities, v.License,
			v.OverallRating, v.AccuracyRating, v.CleanlinessRating,
			v.CheckinRating, v.CommunicationRating, v.LocationRating,
			v.ValueRating, v.NumberOfReviews,
		}
	}
	return rows
}

func listingAmenityRows(in []model.ListingAmenity) [][]any {
	rows := make([][]any, len(in))
	for i, v := range in {
		rows[i] = []any{v.ListingID, v.AmenityID}
	}
	return rows
}

func reviewRows(in []model.Review) [][]any {
	rows := make([][]any, len(in))
	for i, v := range in {
		rows[i] = []any{
			v.ReviewID, v.ReviewCID, v.ListingID, v.Date, v.ReviewerID,
			v.ReviewerName, v.Comments,
		}
	}
	return rows
}

func availabilityRows(in []model.Availability) [][]any {
	rows := make([][]any, len(in))
	for i, v := range in {
		rows[i] = []any{v.ListingID, v.Date, v.Available, v.Price}
	}
	return rows
}
