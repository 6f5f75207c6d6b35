package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/Skotchmaster/art_gallery/internal/models"
	"github.com/Skotchmaster/art_gallery/pkg/logging"
)

// ReconcileReport lists what a reconcile pass did to each artwork it touched.
type ReconcileReport struct {
	OrderID  string   `json:"orderId,omitempty"`
	Marked   []string `json:"marked"`
	Released []string `json:"released"`
	Missing  []string `json:"missing"`
	Failed   []string `json:"failed"`
}

func (r *ReconcileReport) OK() bool { return len(r.Failed) == 0 }

// ReconcileOrder recomputes the sold flag of every artwork on the order from the
// full order history: sold iff some non-cancelled order references it. Safe to repeat.
func (s *OrderService) ReconcileOrder(ctx context.Context, id string) (*ReconcileReport, error) {
	ctx, span := tracer.Start(ctx, "order.reconcile")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", id))

	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	orders, err := s.Orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	report := s.reconcile(ctx, uniqueIDs(order.ArtworkIDs()), activeArtworks(orders))
	report.OrderID = id

	s.publishReconciled(ctx, id, report)
	return report, nil
}

// ReconcileAll repairs every artwork referenced by any order.
func (s *OrderService) ReconcileAll(ctx context.Context) (*ReconcileReport, error) {
	ctx, span := tracer.Start(ctx, "order.reconcile_all")
	defer span.End()

	orders, err := s.Orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	var ids []string
	for i := range orders {
		ids = append(ids, orders[i].ArtworkIDs()...)
	}

	report := s.reconcile(ctx, uniqueIDs(ids), activeArtworks(orders))
	span.SetAttributes(attribute.Int("reconcile.failed", len(report.Failed)))

	s.publishReconciled(ctx, "all", report)
	return report, nil
}

func (s *OrderService) reconcile(ctx context.Context, ids []string, active map[string]bool) *ReconcileReport {
	l := logging.FromContext(ctx).With("svc", "order.reconcile")

	var toMark, toRelease []string
	for _, id := range ids {
		if active[id] {
			toMark = append(toMark, id)
		} else {
			toRelease = append(toRelease, id)
		}
	}

	report := &ReconcileReport{Marked: []string{}, Released: []string{}, Missing: []string{}, Failed: []string{}}
	collect := func(results []soldResult, done *[]string) {
		for _, r := range results {
			switch {
			case r.Err == nil:
				*done = append(*done, r.ID)
			case errors.Is(r.Err, gorm.ErrRecordNotFound):
				report.Missing = append(report.Missing, r.ID)
			default:
				report.Failed = append(report.Failed, r.ID)
				l.Error("reconcile_artwork_failed", "collection", "artworks", "artwork_id", r.ID, "operation", "update_sold", "error", r.Err)
			}
		}
	}

	collect(applySold(ctx, s.Artworks, toMark, true, s.Config.InventoryConcurrency), &report.Marked)
	collect(applySold(ctx, s.Artworks, toRelease, false, s.Config.InventoryConcurrency), &report.Released)

	sort.Strings(report.Marked)
	sort.Strings(report.Released)
	sort.Strings(report.Missing)
	sort.Strings(report.Failed)

	l.Info("reconcile_done", "marked", len(report.Marked), "released", len(report.Released), "missing", len(report.Missing), "failed", len(report.Failed))
	return report
}

// activeArtworks returns the ids referenced by at least one non-cancelled order.
func activeArtworks(orders []models.Order) map[string]bool {
	active := make(map[string]bool)
	for i := range orders {
		if orders[i].IsCancelled() {
			continue
		}
		for _, id := range orders[i].ArtworkIDs() {
			active[id] = true
		}
	}
	return active
}

func (s *OrderService) publishReconciled(ctx context.Context, key string, report *ReconcileReport) {
	s.publish(ctx, key, map[string]any{
		"type":     "inventory_reconciled",
		"orderID":  report.OrderID,
		"marked":   report.Marked,
		"released": report.Released,
		"failed":   report.Failed,
	})
}
