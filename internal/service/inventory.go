package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Skotchmaster/art_gallery/pkg/logging"
)

const defaultInventoryConcurrency = 8

// soldResult holds the outcome of one sold-flag write.
type soldResult struct {
	ID  string
	Err error
}

// applySold sets the sold flag on every id. All writes are attempted, at most
// limit at a time; one failure never stops the others.
func applySold(ctx context.Context, store ArtworkStore, ids []string, sold bool, limit int) []soldResult {
	if limit < 1 {
		limit = defaultInventoryConcurrency
	}

	results := make([]soldResult, len(ids))
	var g errgroup.Group
	g.SetLimit(limit)

	for i, id := range ids {
		g.Go(func() error {
			results[i] = soldResult{ID: id, Err: store.SetArtworkSold(ctx, id, sold)}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func failedResults(results []soldResult) []soldResult {
	var failed []soldResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

func joinSoldErrors(failed []soldResult) error {
	errs := make([]error, 0, len(failed))
	for _, r := range failed {
		errs = append(errs, fmt.Errorf("artwork %s: %w", r.ID, r.Err))
	}
	return errors.Join(errs...)
}

func logSoldFailures(ctx context.Context, event string, sold bool, failed []soldResult) {
	l := logging.FromContext(ctx)
	for _, r := range failed {
		l.Error(event,
			"collection", "artworks",
			"artwork_id", r.ID,
			"operation", "update_sold",
			"sold", sold,
			"missing", errors.Is(r.Err, gorm.ErrRecordNotFound),
			"error", r.Err,
		)
	}
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
