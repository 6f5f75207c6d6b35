package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
	"unicode"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/Skotchmaster/art_gallery/internal/models"
	"github.com/Skotchmaster/art_gallery/internal/mykafka"
	"github.com/Skotchmaster/art_gallery/internal/transport"
	"github.com/Skotchmaster/art_gallery/pkg/logging"
)

// totalTolerance absorbs float rounding when comparing a total to the item sum.
const totalTolerance = 0.005

type OrderConfig struct {
	// StrictStatus limits statuses to the five known values and forbids leaving Cancelled.
	StrictStatus bool
	// VerifyTotal rejects orders whose total differs from the sum of item prices.
	VerifyTotal bool
	// InventoryConcurrency bounds parallel sold-flag writes per operation.
	InventoryConcurrency int
}

// OrderService places orders and keeps artwork sold flags in step with them.
// It is the only writer of Artwork.Sold.
type OrderService struct {
	Orders   OrderStore
	Artworks ArtworkStore
	Events   EventPublisher
	Config   OrderConfig
	Now      func() time.Time
}

func NewOrderService(orders OrderStore, artworks ArtworkStore, events EventPublisher, cfg OrderConfig) *OrderService {
	if events == nil {
		events = NoopPublisher
	}
	return &OrderService{
		Orders:   orders,
		Artworks: artworks,
		Events:   events,
		Config:   cfg,
		Now:      time.Now,
	}
}

func (s *OrderService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// CreateOrder persists the order and then marks each referenced artwork as sold.
// Marking is best effort: the order stands once it is stored, whatever happens to the artworks.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	ctx, span := tracer.Start(ctx, "order.create")
	defer span.End()
	l := logging.FromContext(ctx).With("svc", "order.create")

	order, err := s.buildOrder(ctx, req)
	if err != nil {
		span.SetStatus(codes.Error, "invalid order")
		return nil, err
	}

	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		l.Error("create_order_error", "status", 500, "collection", "orders", "operation", "create", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist order")
		return nil, fmt.Errorf("persist order: %w", err)
	}
	span.SetAttributes(attribute.String("order.id", order.ID), attribute.Int("order.items", len(order.Items)))

	ids := uniqueIDs(order.ArtworkIDs())
	failed := failedResults(applySold(ctx, s.Artworks, ids, true, s.Config.InventoryConcurrency))
	if len(failed) > 0 {
		logSoldFailures(ctx, "mark_sold_failed", true, failed)
		span.SetAttributes(attribute.Int("inventory.failed", len(failed)))
	}

	s.publish(ctx, order.ID, map[string]any{
		"type":       "order_created",
		"orderID":    order.ID,
		"artworkIDs": ids,
		"total":      order.Total,
	})

	l.Info("create_order_success", "order_id", order.ID, "items", len(order.Items), "inventory_failed", len(failed))
	return order, nil
}

func (s *OrderService) buildOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	switch {
	case req.Customer == nil:
		return nil, fmt.Errorf("%w: customer is required", ErrValidation)
	case req.Items == nil:
		return nil, fmt.Errorf("%w: items is required", ErrValidation)
	case !req.Total.Present:
		return nil, fmt.Errorf("%w: total is required", ErrValidation)
	case len(req.Items) == 0:
		return nil, fmt.Errorf("%w: items must not be empty", ErrValidation)
	}

	total := req.Total.OrZero()
	if total < 0 {
		return nil, fmt.Errorf("%w: total must be >= 0", ErrValidation)
	}

	items := make([]models.LineItem, 0, len(req.Items))
	var sum float64
	for _, it := range req.Items {
		item := normalizeItem(it)
		sum += item.Price
		items = append(items, item)
	}

	if math.Abs(sum-total) > totalTolerance {
		if s.Config.VerifyTotal {
			return nil, fmt.Errorf("%w: total %.2f does not match items sum %.2f", ErrValidation, total, sum)
		}
		logging.FromContext(ctx).Warn("order_total_mismatch", "total", total, "items_sum", sum)
	}

	order := &models.Order{
		Customer: models.Customer{
			FullName: string(req.Customer.FullName),
			Address:  string(req.Customer.Address),
			Phone:    string(req.Customer.Phone),
		},
		Items:     items,
		Total:     total,
		Status:    models.OrderStatusNew,
		CreatedAt: s.now(),
	}
	if req.Payment != nil {
		order.Payment = models.Payment{
			CardLast4: lastDigits(string(req.Payment.CardLast4), 4),
			Expiry:    strings.TrimSpace(string(req.Payment.Expiry)),
		}
	}

	return order, nil
}

func normalizeItem(it transport.OrderItemRequest) models.LineItem {
	return models.LineItem{
		ID:       string(it.ID),
		Title:    it.Title.Or("Untitled"),
		Artist:   it.Artist.Or("Unknown"),
		Price:    it.Price.OrZero(),
		Category: string(it.Category),
		ImageURL: string(it.ImageURL),
		Sold:     bool(it.Sold),
	}
}

// lastDigits keeps at most n trailing digits, so a full card number never gets stored.
func lastDigits(s string, n int) string {
	digits := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) > n {
		digits = digits[len(digits)-n:]
	}
	return string(digits)
}

// UpdateOrderStatus overwrites the status. Moving to Cancelled releases every
// artwork on the order; if any release fails the error wraps ErrInventory
// while the new status stays committed.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id, status string) (string, error) {
	ctx, span := tracer.Start(ctx, "order.update_status")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", id), attribute.String("order.status", status))
	l := logging.FromContext(ctx).With("svc", "order.update_status", "order_id", id)

	if strings.TrimSpace(status) == "" {
		return "", fmt.Errorf("%w: status is required", ErrValidation)
	}
	if s.Config.StrictStatus && !slices.Contains(models.OrderStatuses, status) {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	order, err := s.getOrder(ctx, id)
	if err != nil {
		return "", err
	}

	if s.Config.StrictStatus && order.IsCancelled() && status != models.OrderStatusCancelled {
		return "", fmt.Errorf("%w: order %s is cancelled", ErrConflict, id)
	}

	if err := s.Orders.UpdateOrderStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		l.Error("update_status_error", "status", 500, "collection", "orders", "operation", "update", "error", err)
		span.RecordError(err)
		return "", fmt.Errorf("update order status: %w", err)
	}

	if status == models.OrderStatusCancelled && len(order.Items) > 0 {
		ids := uniqueIDs(order.ArtworkIDs())
		failed := failedResults(applySold(ctx, s.Artworks, ids, false, s.Config.InventoryConcurrency))
		if len(failed) > 0 {
			logSoldFailures(ctx, "release_artwork_failed", false, failed)
			span.SetStatus(codes.Error, "release artworks")
			return status, fmt.Errorf("%w: %w", ErrInventory, joinSoldErrors(failed))
		}
	}

	s.publish(ctx, id, map[string]any{
		"type":       "order_status_updated",
		"orderID":    id,
		"fromStatus": order.Status,
		"status":     status,
	})

	l.Info("update_status_success", "from", order.Status, "to", status)
	return status, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.getOrder(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.Orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *OrderService) getOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.Orders.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, key string, event map[string]any) {
	if err := s.Events.PublishEvent(ctx, mykafka.TopicOrderEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_error", "topic", mykafka.TopicOrderEvents, "type", event["type"], "error", err)
	}
}
