package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Mykola-art/shopsTestTask/internal/availability"
	"github.com/Mykola-art/shopsTestTask/internal/dto"
	"github.com/Mykola-art/shopsTestTask/internal/models"
	appErrors "github.com/Mykola-art/shopsTestTask/pkg/errors"
)

type orderRepository interface {
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id string) error
}

type productFinder interface {
	FindByID(ctx context.Context, id string) (*models.ProductDetail, error)
}

// OrderService schedules orders against product availability.
type OrderService struct {
	repo      orderRepository
	products  productFinder
	evaluator *availability.Evaluator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewOrderService builds an OrderService.
func NewOrderService(
	repo orderRepository,
	products productFinder,
	evaluator *availability.Evaluator,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *OrderService {
	if validate == nil {
		validate = NewValidator(evaluator.Converter().Zones())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		repo:      repo,
		products:  products,
		evaluator: evaluator,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// Create stores an order whose schedule_at falls inside the product's availability,
// evaluated in the store's zone at that exact instant.
func (s *OrderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*models.Order, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid order payload")
	}
	product, err := s.availableProduct(ctx, req.ProductID, req.ScheduleAt)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ProductID:  product.ID,
		Type:       req.Type,
		ScheduleAt: req.ScheduleAt.UTC(),
		Timezone:   availability.CanonicalZone(req.Timezone),
	}
	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		order.Address = &address
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create order")
	}
	s.logger.Info("order scheduled",
		zap.String("order_id", order.ID),
		zap.String("product_id", order.ProductID),
		zap.Time("schedule_at", order.ScheduleAt),
	)
	return order, nil
}

// availableProduct loads a product and checks that it can be ordered at the instant,
// evaluated in the store's zone.
func (s *OrderService) availableProduct(ctx context.Context, productID string, at time.Time) (*models.ProductDetail, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "product not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load product")
	}

	open, err := s.evaluator.IsOpenNow(product.Schedule(), at)
	s.metrics.ObserveAvailability(checkKindOrder, open, err)
	if err != nil {
		return nil, availabilityError(err)
	}
	if !open {
		local, _ := s.evaluator.LocalClock(product.StoreTimezone, at)
		return nil, appErrors.Clone(appErrors.ErrOutsideAvailability,
			fmt.Sprintf("product is not available at %s (%s)", local, product.StoreTimezone))
	}
	return product, nil
}

// Get returns an order by id.
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	start := time.Now()
	order, err := s.repo.FindByID(ctx, id)
	s.metrics.ObserveDBQuery("orders.find", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "order not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load order")
	}
	return order, nil
}

// Update applies the non-nil fields of req. Moving schedule_at re-runs the availability
// check; delivery orders keep a non-empty address.
func (s *OrderService) Update(ctx context.Context, id string, req dto.UpdateOrderRequest) (*models.Order, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid order payload")
	}
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ScheduleAt != nil && !req.ScheduleAt.Equal(order.ScheduleAt) {
		if _, err := s.availableProduct(ctx, order.ProductID, *req.ScheduleAt); err != nil {
			return nil, err
		}
		order.ScheduleAt = req.ScheduleAt.UTC()
	}
	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		switch {
		case address != "":
			order.Address = &address
		case order.Type == models.OrderTypeDelivery:
			return nil, appErrors.Clone(appErrors.ErrValidation, "delivery orders need an address")
		default:
			order.Address = nil
		}
	}
	if req.IsAccepted != nil {
		order.IsAccepted = *req.IsAccepted
	}

	if err := s.repo.Update(ctx, order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "order not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update order")
	}
	s.logger.Info("order updated",
		zap.String("order_id", order.ID),
		zap.Bool("is_accepted", order.IsAccepted),
		zap.Time("schedule_at", order.ScheduleAt),
	)
	return order, nil
}

// Delete removes an order.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "order not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete order")
	}
	s.logger.Info("order deleted", zap.String("order_id", id))
	return nil
}

// ListByStore lists the orders placed for any product of the store, with the same
// filters and schedule-bound handling as List.
func (s *OrderService) ListByStore(ctx context.Context, storeID string, query dto.OrderQuery) (*dto.OrderList, error) {
	query.StoreID = storeID
	return s.List(ctx, query)
}

// List returns one page of orders. Schedule bounds given as HH:mm are read on
// query.Day in query.Timezone and converted to instants; the window is [from, to).
func (s *OrderService) List(ctx context.Context, query dto.OrderQuery) (*dto.OrderList, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid order query")
	}
	filter := models.OrderFilter{
		ProductID:  query.ProductID,
		StoreID:    query.StoreID,
		IsAccepted: query.IsAccepted,
		Type:       models.OrderType(query.Type),
		Address:    strings.TrimSpace(query.Address),
	}
	filter.Page, filter.PageSize = normalizePage(query.Page, query.PageSize)

	from, err := s.scheduleBound(query, query.ScheduleFrom, availability.ParseTimeOfDay)
	if err != nil {
		return nil, err
	}
	to, err := s.scheduleBound(query, query.ScheduleTo, availability.ParseBoundary)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, appErrors.Clone(appErrors.ErrInvalidInterval, "schedule_from must be before schedule_to")
	}
	filter.ScheduleFrom, filter.ScheduleTo = from, to

	start := time.Now()
	orders, total, err := s.repo.List(ctx, filter)
	s.metrics.ObserveDBQuery("orders.list", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list orders")
	}
	return &dto.OrderList{Items: orders, Pagination: models.NewPagination(filter.Page, filter.PageSize, total)}, nil
}

// scheduleBound resolves one window bound. RFC 3339 values are absolute; wall clocks
// need both a day and a timezone.
func (s *OrderService) scheduleBound(query dto.OrderQuery, raw string, parse func(string) (availability.TimeOfDay, error)) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if at, err := time.Parse(time.RFC3339, raw); err == nil {
		return &at, nil
	}
	clock, err := parse(raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid schedule bound %q, expected RFC 3339 or HH:mm", raw))
	}
	if query.Day == "" || query.Timezone == "" {
		return nil, appErrors.Clone(appErrors.ErrInsufficientFilterContext, "day and timezone are required with an HH:mm schedule bound")
	}
	day, err := availability.ParseWeekday(query.Day)
	if err != nil {
		return nil, availabilityError(err)
	}
	at, err := s.evaluator.Converter().Instant(availability.Civil{Day: day, Time: clock, Zone: query.Timezone})
	if err != nil {
		return nil, availabilityError(err)
	}
	return &at, nil
}
