package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stayscan/bnbetl/internal/config"
	"github.com/stayscan/bnbetl/internal/model"
	"github.com/stayscan/bnbetl/internal/pipeline"
	"github.com/stayscan/bnbetl/internal/resilience"
)

var runSkipFetch bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run fetch, preprocess, and load end to end",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runAll(cmd.Context(), cfg, runSkipFetch)
		return err
	},
}

// stageRetry builds the retry policy for one driver stage. Each stage is
// rerun wholesale on failure; stages are idempotent, so a retry starts
// clean.
func stageRetry(cfg *config.Config, stage string) resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts:    cfg.Run.StageRetries + 1,
		InitialBackoff: time.Duration(cfg.Run.RetryDelaySecs) * time.Second,
		Multiplier:     1,
		OnRetry:        resilience.RetryLogger(stage),
	}
}

func runAll(ctx context.Context, cfg *config.Config, skipFetch bool) (*model.Manifest, error) {
	start := time.Now()

	if !skipFetch {
		err := resilience.Do(ctx, stageRetry(cfg, "fetch"), func(ctx context.Context) error {
			return fetchExtracts(ctx, cfg)
		})
		if err != nil {
			return nil, err
		}
	}

	manifest, err := resilience.DoVal(ctx, stageRetry(cfg, "preprocess"), func(context.Context) (*model.Manifest, error) {
		p, err := pipeline.New(cfg)
		if err != nil {
			return nil, err
		}
		return p.Run()
	})
	if err != nil {
		return nil, err
	}

	err = resilience.Do(ctx, stageRetry(cfg, "load"), func(ctx context.Context) error {
		return loadWarehouse(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("run: pipeline complete",
		zap.String("run_id", manifest.RunID),
		zap.Duration("duration", time.Since(start)),
	)
	return manifest, nil
}

func init() {
	runCmd.Flags().BoolVar(&runSkipFetch, "skip-fetch", false, "reuse already-downloaded extracts")
	rootCmd.AddCommand(runCmd)
}
