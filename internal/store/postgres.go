package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stayscan/bnbetl/internal/db"
	"github.com/stayscan/bnbetl/internal/model"
)

// PostgresLoader implements Loader using pgxpool and the COPY protocol.
type PostgresLoader struct {
	pool    db.Pool
	schema  string
	closeFn func()
}

// NewPostgres creates a PostgresLoader with a connection pool.
func NewPostgres(ctx context.Context, connString, schema string) (*PostgresLoader, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresLoader{pool: pool, schema: schema, closeFn: pool.Close}, nil
}

// newPostgresWithPool wires an existing pool, for tests.
func newPostgresWithPool(pool db.Pool, schema string) *PostgresLoader {
	return &PostgresLoader{pool: pool, schema: schema, closeFn: func() {}}
}

const postgresMigration = `
CREATE SCHEMA IF NOT EXISTS %[1]s;

CREATE TABLE IF NOT EXISTS %[1]s.locations (
	location_id  INTEGER PRIMARY KEY,
	neighborhood TEXT NOT NULL,
	location     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS %[1]s.hosts (
	host_id                   INTEGER PRIMARY KEY,
	host_cid                  TEXT NOT NULL,
	host_name                 TEXT NOT NULL,
	host_url                  TEXT,
	host_since                TEXT,
	location_id               INTEGER NOT NULL REFERENCES %[1]s.locations(location_id),
	host_about                TEXT,
	host_response_time        TEXT,
	host_response_rate        DOUBLE PRECISION CHECK (host_response_rate >= 0 AND host_response_rate <= 100),
	host_acceptance_rate      DOUBLE PRECISION CHECK (host_acceptance_rate >= 0 AND host_acceptance_rate <= 100),
	host_is_superhost         BOOLEAN,
	host_thumbnail_url        TEXT,
	host_picture_url          TEXT,
	host_total_listings_count INTEGER DEFAULT 0,
	host_verifications        TEXT,
	host_has_profile_pic      BOOLEAN,
	host_identity_verified    BOOLEAN
);

CREATE TABLE IF NOT EXISTS %[1]s.amenities (
	amenity_id   INTEGER PRIMARY KEY,
	amenity_name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS %[1]s.listings (
	listing_id            INTEGER PRIMARY KEY,
	listing_cid           TEXT NOT NULL,
	name                  TEXT,
	description           TEXT,
	host_id               INTEGER NOT NULL REFERENCES %[1]s.hosts(host_id),
	listing_url           TEXT,
	location_id           INTEGER NOT NULL REFERENCES %[1]s.locations(location_id),
	neighborhood_overview TEXT,
	picture_url           TEXT,
	latitude              DOUBLE PRECISION,
	longitude             DOUBLE PRECISION,
	property_type         TEXT,
	room_type             TEXT,
	accommodates          INTEGER,
	bathrooms             DOUBLE PRECISION,
	bedrooms              INTEGER,
	bathroom_type         TEXT,
	beds                  INTEGER,
	amenities             TEXT,
	license               TEXT,
	overall_rating        DOUBLE PRECISION CHECK (overall_rating >= 0 AND overall_rating <= 5),
	accuracy_rating       DOUBLE PRECISION CHECK (accuracy_rating >= 0 AND accuracy_rating <= 5),
	cleanliness_rating    DOUBLE PRECISION CHECK (cleanliness_rating >= 0 AND cleanliness_rating <= 5),
	checkin_rating        DOUBLE PRECISION CHECK (checkin_rating >= 0 AND checkin_rating <= 5),
	communication_rating  DOUBLE PRECISION CHECK (communication_rating >= 0 AND communication_rating <= 5),
	location_rating       DOUBLE PRECISION CHECK (location_rating >= 0 AND location_rating <= 5),
	value_rating          DOUBLE PRECISION CHECK (value_rating >= 0 AND value_rating <= 5),
	number_of_reviews     INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS %[1]s.listing_amenities (
	listing_id INTEGER NOT NULL REFERENCES %[1]s.listings(listing_id),
	amenity_id INTEGER NOT NULL REFERENCES %[1]s.amenities(amenity_id),
	PRIMARY KEY (listing_id, amenity_id)
);

CREATE TABLE IF NOT EXISTS %[1]s.reviews (
	review_id     INTEGER PRIMARY KEY,
	review_cid    TEXT NOT NULL,
	listing_id    INTEGER NOT NULL REFERENCES %[1]s.listings(listing_id),
	date          DATE NOT NULL,
	reviewer_id   TEXT NOT NULL,
	reviewer_name TEXT NOT NULL,
	comments      TEXT
);

CREATE TABLE IF NOT EXISTS %[1]s.availability (
	availability_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	listing_id      INTEGER NOT NULL REFERENCES %[1]s.listings(listing_id),
	date            DATE NOT NULL,
	available       BOOLEAN NOT NULL,
	price           DOUBLE PRECISION
);

CREATE INDEX IF NOT EXISTS idx_listings_host_id ON %[1]s.listings(host_id);
CREATE INDEX IF NOT EXISTS idx_reviews_listing_id ON %[1]s.reviews(listing_id);
CREATE INDEX IF NOT EXISTS idx_availability_listing_id ON %[1]s.availability(listing_id);
`

// Migrate creates the warehouse schema and tables.
func (s *PostgresLoader) Migrate(ctx context.Context) error {
	sql := fmt.Sprintf(postgresMigration, pgx.Identifier{s.schema}.Sanitize())
	if _, err := s.pool.Exec(ctx, sql); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

// Load truncates the warehouse and bulk-loads the cleaned tables. The four
// dimensions load sequentially so foreign keys resolve; the bridge and fact
// tables reference only listings and load concurrently.
func (s *PostgresLoader) Load(ctx context.Context, tables *model.Tables) (map[string]int64, error) {
	start := time.Now()

	if err := db.TruncateSchema(ctx, s.pool, s.schema, AllTables); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(AllTables))
	var mu sync.Mutex
	record := func(table string, n int64) {
		mu.Lock()
		counts[table] = n
		mu.Unlock()
	}

	dims := []struct {
		table   string
		columns []string
		rows    [][]any
	}{
		{TableLocations, locationColumns, locationRows(tables.Locations)},
		{TableHosts, hostColumns, hostRows(tables.Hosts)},
		{TableAmenities, amenityColumns, amenityRows(tables.Amenities)},
		{TableListings, listingColumns, listingRows(tables.Listings)},
	}
	for _, d := range dims {
		n, err := db.CopyFromSchema(ctx, s.pool, s.schema, d.table, d.columns, d.rows)
		if err != nil {
			return nil, err
		}
		record(d.table, n)
	}

	g, gctx := errgroup.WithContext(ctx)
	facts := []struct {
		table   string
		columns []string
		rows    [][]any
	}{
		{TableListingAmenities, listingAmenityColumns, listingAmenityRows(tables.ListingAmenities)},
		{TableReviews, reviewColumns, reviewRows(tables.Reviews)},
		{TableAvailability, availabilityColumns, availabilityRows(tables.Availability)},
	}
	for _, f := range facts {
		f := f
		g.Go(func() error {
			n, err := db.CopyFromSchema(gctx, s.pool, s.schema, f.table, f.columns, f.rows)
			if err != nil {
				return err
			}
			record(f.table, n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("store: load complete",
		zap.String("driver", "postgres"),
		zap.String("schema", s.schema),
		zap.Duration("duration", time.Since(start)),
		zap.String("counts", countsSummary(counts)),
	)
	return counts, nil
}

func countsSummary(counts map[string]int64) string {
	parts := make([]string, 0, len(AllTables))
	for _, t := range AllTables {
		parts = append(parts, fmt.Sprintf("%s=%d", t, counts[t]))
	}
	return strings.Join(parts, " ")
}

func (s *PostgresLoader) Close() error {
	s.closeFn()
	return nil
}
