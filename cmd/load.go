package main

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stayscan/bnbetl/internal/config"
	"github.com/stayscan/bnbetl/internal/extract"
	"github.com/stayscan/bnbetl/internal/model"
	"github.com/stayscan/bnbetl/internal/store"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Bulk-load the cleaned tables into the warehouse",
	RunE: func(cmd *cobra.Command, args []string) error {
		return loadWarehouse(cmd.Context(), cfg)
	},
}

// readCleanedTables reads the seven cleaned artifacts back from disk.
func readCleanedTables(dir string) (*model.Tables, error) {
	var tables model.Tables
	var err error

	if tables.Listings, err = extract.ReadCleaned[model.Listing](filepath.Join(dir, extract.ListingsFile)); err != nil {
		return nil, err
	}
	if tables.Hosts, err = extract.ReadCleaned[model.Host](filepath.Join(dir, extract.HostsFile)); err != nil {
		return nil, err
	}
	if tables.Locations, err = extract.ReadCleaned[model.Location](filepath.Join(dir, extract.LocationsFile)); err != nil {
		return nil, err
	}
	if tables.Amenities, err = extract.ReadCleaned[model.Amenity](filepath.Join(dir, extract.AmenitiesFile)); err != nil {
		return nil, err
	}
	if tables.ListingAmenities, err = extract.ReadCleaned[model.ListingAmenity](filepath.Join(dir, extract.ListingAmenitiesFile)); err != nil {
		return nil, err
	}
	if tables.Reviews, err = extract.ReadCleaned[model.Review](filepath.Join(dir, extract.ReviewsFile)); err != nil {
		return nil, err
	}
	if tables.Availability, err = extract.ReadCleaned[model.Availability](filepath.Join(dir, extract.AvailabilityFile)); err != nil {
		return nil, err
	}
	return &tables, nil
}

func loadWarehouse(ctx context.Context, cfg *config.Config) error {
	tables, err := readCleanedTables(cfg.Data.CleanedDir)
	if err != nil {
		return err
	}

	loader, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer loader.Close() //nolint:errcheck

	if err := loader.Migrate(ctx); err != nil {
		return err
	}
	_, err = loader.Load(ctx, tables)
	return err
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
