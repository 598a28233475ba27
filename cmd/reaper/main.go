// The reaper is a maintenance job for sync runs that died without reaching a
// terminal state: it fails stale in_progress runs and sweeps expired lock
// rows so the next trigger is not delayed by a crashed predecessor.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/sapsync-service/internal/app/sync/repo"
	"github.com/light-bringer/sapsync-service/internal/pkg/clock"
)

type reaperConfig struct {
	SpannerDB  string
	StaleAfter time.Duration
	LockTTL    time.Duration
	DryRun     bool
}

func main() {
	cfg := reaperConfig{}
	flag.StringVar(&cfg.SpannerDB, "database", "", "Spanner database (required, format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.DurationVar(&cfg.StaleAfter, "stale-after", 30*time.Minute, "Age after which an in_progress run is considered dead")
	flag.DurationVar(&cfg.LockTTL, "lock-ttl", 600*time.Second, "Lock expiry used when sweeping leftover lock rows")
	flag.BoolVar(&cfg.DryRun, "dry-run", false, "Show what would be reaped without changing anything")
	flag.Parse()

	if cfg.SpannerDB == "" {
		log.Fatal("Error: -database flag is required")
	}

	ctx := context.Background()

	if err := reap(ctx, cfg); err != nil {
		log.Fatalf("Reap failed: %v", err)
	}

	log.Println("Reap completed successfully")
}

func reap(ctx context.Context, cfg reaperConfig) error {
	client, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	now := time.Now().UTC()
	runCutoff := now.Add(-cfg.StaleAfter)
	lockCutoff := now.Add(-cfg.LockTTL)

	log.Printf("Reaping stale state...")
	log.Printf("  Run cutoff:  %s (stale after %s)", runCutoff.Format(time.RFC3339), cfg.StaleAfter)
	log.Printf("  Lock cutoff: %s (lock TTL %s)", lockCutoff.Format(time.RFC3339), cfg.LockTTL)
	log.Printf("  Dry run: %v", cfg.DryRun)

	if cfg.DryRun {
		return dryRunReap(ctx, client, runCutoff, lockCutoff)
	}

	progressRepo := repo.NewProgressRepo(client, clock.NewRealClock())
	failed, err := progressRepo.FailStaleRuns(ctx, runCutoff)
	if err != nil {
		return fmt.Errorf("failed to fail stale runs: %w", err)
	}
	log.Printf("Marked %d stale runs failed", failed)

	swept, err := sweepExpiredLocks(ctx, client, lockCutoff)
	if err != nil {
		return fmt.Errorf("failed to sweep expired locks: %w", err)
	}
	log.Printf("Swept %d expired locks", swept)

	return nil
}

func dryRunReap(ctx context.Context, client *spanner.Client, runCutoff, lockCutoff time.Time) error {
	runs, err := countRows(ctx, client, spanner.Statement{
		SQL: `SELECT COUNT(*) FROM sync_progress
		      WHERE status = 'in_progress' AND started_at < @cutoff`,
		Params: map[string]interface{}{"cutoff": runCutoff},
	})
	if err != nil {
		return fmt.Errorf("failed to count stale runs: %w", err)
	}

	locks, err := countRows(ctx, client, spanner.Statement{
		SQL: `SELECT COUNT(*) FROM sync_locks WHERE acquired_at < @cutoff`,
		Params: map[string]interface{}{"cutoff": lockCutoff},
	})
	if err != nil {
		return fmt.Errorf("failed to count expired locks: %w", err)
	}

	log.Printf("DRY RUN: Would fail %d runs and sweep %d locks", runs, locks)
	log.Println("Run without --dry-run to actually reap")
	return nil
}

func sweepExpiredLocks(ctx context.Context, client *spanner.Client, cutoff time.Time) (int64, error) {
	var swept int64
	_, err := client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		count, err := txn.Update(ctx, spanner.Statement{
			SQL:    `DELETE FROM sync_locks WHERE acquired_at < @cutoff`,
			Params: map[string]interface{}{"cutoff": cutoff},
		})
		if err != nil {
			return err
		}
		swept = count
		return nil
	})
	return swept, err
}

func countRows(ctx context.Context, client *spanner.Client, stmt spanner.Statement) (int64, error) {
	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, err
	}
	return count, nil
}
