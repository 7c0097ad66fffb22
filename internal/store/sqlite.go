package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/stayscan/bnbetl/internal/model"
)

// SQLiteLoader implements Loader using modernc.org/sqlite. It exists for
// local development and tests; the warehouse proper runs on Postgres.
type SQLiteLoader struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteLoader, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteLoader{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS locations (
	location_id  INTEGER PRIMARY KEY,
	neighborhood TEXT NOT NULL,
	location     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS hosts (
	host_id                   INTEGER PRIMARY KEY,
	host_cid                  TEXT NOT NULL,
	host_name                 TEXT NOT NULL,
	host_url                  TEXT,
	host_since                TEXT,
	location_id               INTEGER NOT NULL REFERENCES locations(location_id),
	host_about                TEXT,
	host_response_time        TEXT,
	host_response_rate        REAL CHECK (host_response_rate >= 0 AND host_response_rate <= 100),
	host_acceptance_rate      REAL CHECK (host_acceptance_rate >= 0 AND host_acceptance_rate <= 100),
	host_is_superhost         BOOLEAN,
	host_thumbnail_url        TEXT,
	host_picture_url          TEXT,
	host_total_listings_count INTEGER DEFAULT 0,
	host_verifications        TEXT,
	host_has_profile_pic      BOOLEAN,
	host_identity_verified    BOOLEAN
);

CREATE TABLE IF NOT EXISTS amenities (
	amenity_id   INTEGER PRIMARY KEY,
	amenity_name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS listings (
	listing_id            INTEGER PRIMARY KEY,
	listing_cid           TEXT NOT NULL,
	name                  TEXT,
	description           TEXT,
	host_id               INTEGER NOT NULL REFERENCES hosts(host_id),
	listing_url           TEXT,
	location_id           INTEGER NOT NULL REFERENCES locations(location_id),
	neighborhood_overview TEXT,
	picture_url           TEXT,
	latitude              REAL,
	longitude             REAL,
	property_type         TEXT,
	room_type             TEXT,
	accommodates          INTEGER,
	bathrooms             REAL,
	bedrooms              INTEGER,
	bathroom_type         TEXT,
	beds                  INTEGER,
	amenities             TEXT,
	license               TEXT,
	overall_rating        REAL CHECK (overall_rating >= 0 AND overall_rating <= 5),
	accuracy_rating       REAL CHECK (accuracy_rating >= 0 AND accuracy_rating <= 5),
	cleanliness_rating    REAL CHECK (cleanliness_rating >= 0 AND cleanliness_rating <= 5),
	checkin_rating        REAL CHECK (checkin_rating >= 0 AND checkin_rating <= 5),
	communication_rating  REAL CHECK (communication_rating >= 0 AND communication_rating <= 5),
	location_rating       REAL CHECK (location_rating >= 0 AND location_rating <= 5),
	value_rating          REAL CHECK (value_rating >= 0 AND value_rating <= 5),
	number_of_reviews     INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS listing_amenities (
	listing_id INTEGER NOT NULL REFERENCES listings(listing_id),
	amenity_id INTEGER NOT NULL REFERENCES amenities(amenity_id),
	PRIMARY KEY (listing_id, amenity_id)
);

CREATE TABLE IF NOT EXISTS reviews (
	review_id     INTEGER PRIMARY KEY,
	review_cid    TEXT NOT NULL,
	listing_id    INTEGER NOT NULL REFERENCES listings(listing_id),
	date          TEXT NOT NULL,
	reviewer_id   TEXT NOT NULL,
	reviewer_name TEXT NOT NULL,
	comments      TEXT
);

CREATE TABLE IF NOT EXISTS availability (
	availability_id INTEGER PRIMARY KEY AUTOINCREMENT,
	listing_id      INTEGER NOT NULL REFERENCES listings(listing_id),
	date            TEXT NOT NULL,
	available       BOOLEAN NOT NULL,
	price           REAL
);

CREATE INDEX IF NOT EXISTS idx_listings_host_id ON listings(host_id);
CREATE INDEX IF NOT EXISTS idx_reviews_listing_id ON reviews(listing_id);
CREATE INDEX IF NOT EXISTS idx_availability_listing_id ON availability(listing_id);
`

func (s *SQLiteLoader) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Load replaces the warehouse contents inside a single transaction.
func (s *SQLiteLoader) Load(ctx context.Context, tables *model.Tables) (map[string]int64, error) {
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	// Delete in reverse dependency order.
	for i := len(AllTables) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+AllTables[i]); err != nil {
			return nil, eris.Wrapf(err, "sqlite: clear %s", AllTables[i])
		}
	}

	counts := make(map[string]int64, len(AllTables))
	load := func(table string, columns []string, rows [][]any) error {
		if len(rows) == 0 {
			counts[table] = 0
			return nil
		}
		stmt, err := tx.PrepareContext(ctx, insertSQL(table, columns))
		if err != nil {
			return eris.Wrapf(err, "sqlite: prepare %s", table)
		}
		defer stmt.Close() //nolint:errcheck
		for _, row := range rows {
			if _, err := stmt.ExecContext(ctx, row...); err != nil {
				return eris.Wrapf(err, "sqlite: insert into %s", table)
			}
		}
		counts[table] = int64(len(rows))
		return nil
	}

	steps := []struct {
		table   string
		columns []string
		rows    [][]any
	}{
		{TableLocations, locationColumns, locationRows(tables.Locations)},
		{TableHosts, hostColumns, hostRows(tables.Hosts)},
		{TableAmenities, amenityColumns, amenityRows(tables.Amenities)},
		{TableListings, listingColumns, listingRows(tables.Listings)},
		{TableListingAmenities, listingAmenityColumns, listingAmenityRows(tables.ListingAmenities)},
		{TableReviews, reviewColumns, reviewRows(tables.Reviews)},
		{TableAvailability, availabilityColumns, availabilityRows(tables.Availability)},
	}
	for _, step := range steps {
		if err := load(step.table, step.columns, step.rows); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, eris.Wrap(err, "sqlite: commit")
	}

	zap.L().Info("store: load complete",
		zap.String("driver", "sqlite"),
		zap.Duration("duration", time.Since(start)),
		zap.String("counts", countsSummary(counts)),
	)
	return counts, nil
}

func insertSQL(table string, columns []string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)
}

func (s *SQLiteLoader) Close() error {
	return s.db.Close()
}
