package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mykola-art/shopsTestTask/internal/dto"
	"github.com/Mykola-art/shopsTestTask/internal/models"
	appErrors "github.com/Mykola-art/shopsTestTask/pkg/errors"
	"github.com/Mykola-art/shopsTestTask/pkg/response"
)

type orderService interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (*models.Order, error)
	List(ctx context.Context, query dto.OrderQuery) (*dto.OrderList, error)
	ListByStore(ctx context.Context, storeID string, query dto.OrderQuery) (*dto.OrderList, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	Update(ctx context.Context, id string, req dto.UpdateOrderRequest) (*models.Order, error)
	Delete(ctx context.Context, id string) error
}

// OrderHandler exposes order endpoints.
type OrderHandler struct {
	service orderService
}

// NewOrderHandler builds a new handler.
func NewOrderHandler(service orderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create godoc
// @Summary Schedule an order
// @Description The product must be available at schedule_at in its store zone.
// @Tags Orders
// @Accept json
// @Produce json
// @Param payload body dto.CreateOrderRequest true "Order payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid order payload"))
		return
	}
	order, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, order)
}

// List godoc
// @Summary List orders
// @Description schedule_from and schedule_to take an RFC 3339 instant, or HH:mm read on day in timezone. schedule_to is exclusive.
// @Tags Orders
// @Produce json
// @Param product_id query string false "Product ID"
// @Param is_accepted query bool false "Acceptance flag"
// @Param type query string false "PICKUP or DELIVERY"
// @Param address query string false "Address contains"
// @Param day query string false "Weekday for HH:mm bounds"
// @Param timezone query string false "Zone for HH:mm bounds (or X-Timezone header)"
// @Param schedule_from query string false "Lower bound"
// @Param schedule_to query string false "Upper bound"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	query, err := orderQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	list, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list.Items, list.Pagination)
}

// ListByStore godoc
// @Summary List orders for a store
// @Description Orders of every product the store sells. Takes the same filters as GET /orders.
// @Tags Orders
// @Produce json
// @Param storeId path string true "Store ID"
// @Param is_accepted query bool false "Acceptance flag"
// @Param type query string false "PICKUP or DELIVERY"
// @Param address query string false "Address contains"
// @Param day query string false "Weekday for HH:mm bounds"
// @Param timezone query string false "Zone for HH:mm bounds (or X-Timezone header)"
// @Param schedule_from query string false "Lower bound"
// @Param schedule_to query string false "Upper bound"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /orders/store/{storeId} [get]
func (h *OrderHandler) ListByStore(c *gin.Context) {
	query, err := orderQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	list, err := h.service.ListByStore(c.Request.Context(), c.Param("storeId"), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list.Items, list.Pagination)
}

// Get godoc
// @Summary Get an order
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, order, nil)
}

// Update godoc
// @Summary Update or accept an order
// @Description A new schedule_at must fall inside the product's availability.
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param payload body dto.UpdateOrderRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid order payload"))
		return
	}
	order, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, order, nil)
}

// Delete godoc
// @Summary Delete an order
// @Tags Orders
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func orderQuery(c *gin.Context) (dto.OrderQuery, error) {
	accepted, err := parseQueryBool(c, "is_accepted")
	if err != nil {
		return dto.OrderQuery{}, err
	}
	return dto.OrderQuery{
		ProductID:    c.Query("product_id"),
		IsAccepted:   accepted,
		Type:         c.Query("type"),
		Address:      c.Query("address"),
		Day:          c.Query("day"),
		Timezone:     timezoneParam(c),
		ScheduleFrom: c.Query("schedule_from"),
		ScheduleTo:   c.Query("schedule_to"),
		Page:         parseQueryInt(c, "page", 1),
		PageSize:     parseQueryInt(c, "limit", models.DefaultPageSize),
	}, nil
}
