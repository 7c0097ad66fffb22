// Package extract reads the compressed source extracts and reads/writes the
// cleaned tabular artifacts. Reads at the extract boundary are fail-soft: a
// missing or unreadable file yields an empty result set so downstream stages
// run in degraded mode instead of crashing the pipeline.
package extract

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Source extract file names, as supplied by the scraper at fixed paths.
const (
	ListingsExtract = "listings.csv.gz"
	ReviewsExtract  = "reviews.csv.gz"
	CalendarExtract = "calendar.csv.gz"
)

// Cleaned artifact file names, as consumed by the loader.
const (
	ListingsFile         = "cleaned_listings.csv"
	HostsFile            = "cleaned_hosts.csv"
	LocationsFile        = "cleaned_locations.csv"
	AmenitiesFile        = "cleaned_amenities.csv"
	ListingAmenitiesFile = "cleaned_listing_amenities.csv"
	ReviewsFile          = "cleaned_reviews.csv"
	AvailabilityFile     = "cleaned_availability.csv"
)

// ReadExtract decodes a gzip-compressed CSV extract into rows of T.
// Any file-level failure (missing file, bad gzip stream, unreadable header)
// logs a warning and returns an empty slice. Rows that fail to decode are
// skipped individually.
func ReadExtract[T any](path string) []T {
	log := zap.L().With(zap.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		log.Warn("extract: cannot open file, continuing with empty set", zap.Error(err))
		return nil
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		log.Warn("extract: bad gzip stream, continuing with empty set", zap.Error(err))
		return nil
	}
	defer gz.Close()

	rows, err := decodeCSV[T](gz)
	if err != nil {
		log.Warn("extract: stream ended early, continuing with partial set",
			zap.Int("rows", len(rows)), zap.Error(err))
		return rows
	}

	log.Info("extract: read source extract", zap.Int("rows", len(rows)))
	return rows
}

// ReadCleaned decodes a cleaned CSV artifact. Unlike the extract boundary,
// failures here surface as errors: the cleaned files are produced by this
// pipeline and must be well formed.
func ReadCleaned[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: open %s", path)
	}
	defer f.Close()

	rows, err := decodeCSV[T](f)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: decode %s", path)
	}
	return rows, nil
}

func decodeCSV[T any](r io.Reader) ([]T, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, eris.Wrap(err, "read header")
	}

	var rows []T
	for {
		var row T
		err := dec.Decode(&row)
		if err == io.EOF {
			break
		}
		if err != nil {
			if isRowError(err) {
				// Malformed row; skip it and keep going.
				continue
			}
			// A broken stream repeats the same error on every Decode call.
			// Stop and hand back whatever decoded cleanly before the break.
			return rows, eris.Wrap(err, "read stream")
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// isRowError reports whether a decode failure is scoped to a single record,
// as opposed to a failure of the underlying stream.
func isRowError(err error) bool {
	var parseErr *csv.ParseError
	var typeErr *csvutil.UnmarshalTypeError
	return errors.As(err, &parseErr) || errors.As(err, &typeErr)
}

// WriteCleaned encodes rows of T to a CSV file with a stable, struct-defined
// column order and no index column. An empty slice still produces the header
// row so the loader sees a consistent schema.
func WriteCleaned[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "extract: create dir for %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "extract: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)

	if len(rows) == 0 {
		var zero T
		if err := enc.EncodeHeader(zero); err != nil {
			return eris.Wrapf(err, "extract: write header %s", path)
		}
	}
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return eris.Wrapf(err, "extract: encode row %s", path)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "extract: flush %s", path)
	}

	zap.L().Info("extract: wrote cleaned artifact",
		zap.String("path", path),
		zap.Int("rows", len(rows)),
	)
	return nil
}
