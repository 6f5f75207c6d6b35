package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/art_gallery/internal/service"
	"github.com/Skotchmaster/art_gallery/internal/transport"
	"github.com/Skotchmaster/art_gallery/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		return fail(l, "create_order_error", err, "Failed to create order")
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_orders")

	orders, err := h.Svc.ListOrders(ctx)
	if err != nil {
		return fail(l, "get_orders_error", err, "Failed to fetch orders")
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	order, err := h.Svc.GetOrder(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "get_order_error", err, "Failed to fetch order")
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	l := logging.FromContext(ctx).With("handler", "order.update_status", "order_id", id)

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	status, err := h.Svc.UpdateOrderStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrInventory) {
			return fail(l, "update_status_error", err, "Order status updated but artworks could not be released")
		}
		return fail(l, "update_status_error", err, "Failed to update order status")
	}

	return c.JSON(http.StatusOK, transport.UpdateStatusResponse{Message: "Order status updated", Status: status})
}

func (h *OrderHTTP) ReconcileOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.reconcile")

	report, err := h.Svc.ReconcileOrder(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "reconcile_order_error", err, "Failed to reconcile order")
	}

	return c.JSON(http.StatusOK, report)
}

func (h *OrderHTTP) ReconcileAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.reconcile_all")

	report, err := h.Svc.ReconcileAll(ctx)
	if err != nil {
		return fail(l, "reconcile_all_error", err, "Failed to reconcile orders")
	}

	return c.JSON(http.StatusOK, report)
}
