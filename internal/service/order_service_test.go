package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mykola-art/shopsTestTask/internal/dto"
	"github.com/Mykola-art/shopsTestTask/internal/models"
)

type orderRepoStub struct {
	created []*models.Order
	updated []*models.Order
	deleted []string
	filters []models.OrderFilter
	orders  []models.Order
}

func (s *orderRepoStub) FindByID(ctx context.Context, id string) (*models.Order, error) {
	for _, order := range s.orders {
		if order.ID == id {
			found := order
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *orderRepoStub) Update(ctx context.Context, order *models.Order) error {
	s.updated = append(s.updated, order)
	return nil
}

func (s *orderRepoStub) Delete(ctx context.Context, id string) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *orderRepoStub) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error) {
	s.filters = append(s.filters, filter)
	return s.orders, len(s.orders), nil
}

func (s *orderRepoStub) Create(ctx context.Context, order *models.Order) error {
	order.ID = "66666666-6666-6666-6666-666666666666"
	s.created = append(s.created, order)
	return nil
}

func newTestOrderService(t *testing.T, repo *orderRepoStub) *OrderService {
	t.Helper()
	products := &productRepoStub{products: fixtureProducts(t)}
	return NewOrderService(repo, products, newTestEvaluator(t), NewMetricsService(), nil, nil)
}

func TestOrderServiceCreateInsideAvailability(t *testing.T) {
	repo := &orderRepoStub{}
	svc := newTestOrderService(t, repo)
	address := " 5th Avenue "

	// 17:30 UTC is 12:30 in New York.
	order, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		ProductID:  "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa",
		Type:       models.OrderTypeDelivery,
		ScheduleAt: time.Date(2024, 1, 8, 18, 30, 0, 0, time.FixedZone("CET", 3600)),
		Address:    &address,
		Timezone:   "Europe/Kiev",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 8, 17, 30, 0, 0, time.UTC), order.ScheduleAt)
	assert.Equal(t, "5th Avenue", *order.Address)
	assert.Equal(t, "Europe/Kyiv", order.Timezone)
	assert.False(t, order.IsAccepted)
	require.Len(t, repo.created, 1)
}

func TestOrderServiceCreateOutsideAvailability(t *testing.T) {
	repo := &orderRepoStub{}
	svc := newTestOrderService(t, repo)

	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		ProductID:  "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa",
		Type:       models.OrderTypePickup,
		ScheduleAt: time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC),
		Timezone:   "UTC",
	})
	requireAppError(t, err, "OUTSIDE_AVAILABILITY")
	assert.Contains(t, err.Error(), "Monday - 13:00")
	assert.Empty(t, repo.created)
}

func TestOrderServiceCreateValidation(t *testing.T) {
	svc := newTestOrderService(t, &orderRepoStub{})
	at := time.Date(2024, 1, 8, 17, 30, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		ProductID: "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", Type: models.OrderTypeDelivery, ScheduleAt: at, Timezone: "UTC",
	})
	requireAppError(t, err, "VALIDATION_ERROR")

	_, err = svc.Create(context.Background(), dto.CreateOrderRequest{
		ProductID: "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", Type: "DRONE", ScheduleAt: at, Timezone: "UTC",
	})
	requireAppError(t, err, "VALIDATION_ERROR")

	_, err = svc.Create(context.Background(), dto.CreateOrderRequest{
		ProductID: "cccccccc-cccc-cccc-cccc-cccccccccccc", Type: models.OrderTypePickup, ScheduleAt: at, Timezone: "UTC",
	})
	requireAppError(t, err, "NOT_FOUND")
}

func TestOrderServiceListConvertsWallClockBounds(t *testing.T) {
	repo := &orderRepoStub{}
	svc := newTestOrderService(t, repo)

	list, err := svc.List(context.Background(), dto.OrderQuery{
		Day:          "mon",
		Timezone:     "America/New_York",
		ScheduleFrom: "09:00",
		ScheduleTo:   "24:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Pagination.Page)
	assert.Equal(t, models.DefaultPageSize, list.Pagination.PageSize)

	require.Len(t, repo.filters, 1)
	filter := repo.filters[0]
	require.NotNil(t, filter.ScheduleFrom)
	require.NotNil(t, filter.ScheduleTo)
	assert.True(t, filter.ScheduleFrom.Equal(time.Date(2024, 1, 8, 14, 0, 0, 0, time.UTC)))
	assert.True(t, filter.ScheduleTo.Equal(time.Date(2024, 1, 9, 5, 0, 0, 0, time.UTC)))
}

func TestOrderServiceListAbsoluteBounds(t *testing.T) {
	repo := &orderRepoStub{}
	svc := newTestOrderService(t, repo)
	accepted := true

	_, err := svc.List(context.Background(), dto.OrderQuery{
		IsAccepted:   &accepted,
		Type:         "PICKUP",
		ScheduleFrom: "2024-01-08T00:00:00Z",
		Page:         3,
		PageSize:     5,
	})
	require.NoError(t, err)
	filter := repo.filters[0]
	assert.Equal(t, models.OrderTypePickup, filter.Type)
	assert.True(t, *filter.IsAccepted)
	assert.Nil(t, filter.ScheduleTo)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 5, filter.PageSize)
}

func TestOrderServiceListRejectsIncompleteBounds(t *testing.T) {
	svc := newTestOrderService(t, &orderRepoStub{})

	_, err := svc.List(context.Background(), dto.OrderQuery{ScheduleFrom: "09:00", Timezone: "UTC"})
	requireAppError(t, err, "INSUFFICIENT_FILTER_CONTEXT")

	_, err = svc.List(context.Background(), dto.OrderQuery{ScheduleFrom: "nine", Day: "Monday", Timezone: "UTC"})
	requireAppError(t, err, "VALIDATION_ERROR")

	_, err = svc.List(context.Background(), dto.OrderQuery{ScheduleFrom: "12:00", ScheduleTo: "09:00", Day: "Monday", Timezone: "UTC"})
	requireAppError(t, err, "INVALID_INTERVAL")

	_, err = svc.List(context.Background(), dto.OrderQuery{Day: "Funday"})
	requireAppError(t, err, "VALIDATION_ERROR")
}

// mondayNoonOrder is a pickup order for the New York product at 12:30 local time.
func mondayNoonOrder() models.Order {
	return models.Order{
		ID:         "77777777-7777-7777-7777-777777777777",
		ProductID:  "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa",
		Type:       models.OrderTypePickup,
		ScheduleAt: time.Date(2024, 1, 8, 17, 30, 0, 0, time.UTC),
		Timezone:   "UTC",
	}
}

func TestOrderServiceGet(t *testing.T) {
	svc := newTestOrderService(t, &orderRepoStub{orders: []models.Order{mondayNoonOrder()}})

	order, err := svc.Get(context.Background(), "77777777-7777-7777-7777-777777777777")
	require.NoError(t, err)
	assert.Equal(t, models.OrderTypePickup, order.Type)

	_, err = svc.Get(context.Background(), "88888888-8888-8888-8888-888888888888")
	requireAppError(t, err, "NOT_FOUND")
}

func TestOrderServiceUpdateAccepts(t *testing.T) {
	repo := &orderRepoStub{orders: []models.Order{mondayNoonOrder()}}
	svc := newTestOrderService(t, repo)
	accepted := true

	order, err := svc.Update(context.Background(), "77777777-7777-7777-7777-777777777777", dto.UpdateOrderRequest{IsAccepted: &accepted})
	require.NoError(t, err)
	assert.True(t, order.IsAccepted)
	require.Len(t, repo.updated, 1)
	assert.True(t, repo.updated[0].ScheduleAt.Equal(mondayNoonOrder().ScheduleAt))
}

func TestOrderServiceUpdateRechecksSchedule(t *testing.T) {
	repo := &orderRepoStub{orders: []models.Order{mondayNoonOrder()}}
	svc := newTestOrderService(t, repo)

	// 18:00 UTC is 13:00 in New York, after the product window closes.
	late := time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC)
	_, err := svc.Update(context.Background(), "77777777-7777-7777-7777-777777777777", dto.UpdateOrderRequest{ScheduleAt: &late})
	requireAppError(t, err, "OUTSIDE_AVAILABILITY")
	assert.Empty(t, repo.updated)

	earlier := time.Date(2024, 1, 8, 12, 15, 0, 0, time.FixedZone("EST", -5*3600))
	order, err := svc.Update(context.Background(), "77777777-7777-7777-7777-777777777777", dto.UpdateOrderRequest{ScheduleAt: &earlier})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 8, 17, 15, 0, 0, time.UTC), order.ScheduleAt)
}

func TestOrderServiceUpdateAddress(t *testing.T) {
	delivery := mondayNoonOrder()
	delivery.Type = models.OrderTypeDelivery
	address := "1 Main St"
	delivery.Address = &address
	repo := &orderRepoStub{orders: []models.Order{delivery}}
	svc := newTestOrderService(t, repo)

	blank := "  "
	_, err := svc.Update(context.Background(), delivery.ID, dto.UpdateOrderRequest{Address: &blank})
	requireAppError(t, err, "VALIDATION_ERROR")

	moved := " 2 Side St "
	order, err := svc.Update(context.Background(), delivery.ID, dto.UpdateOrderRequest{Address: &moved})
	require.NoError(t, err)
	assert.Equal(t, "2 Side St", *order.Address)

	_, err = svc.Update(context.Background(), "88888888-8888-8888-8888-888888888888", dto.UpdateOrderRequest{})
	requireAppError(t, err, "NOT_FOUND")
}

func TestOrderServiceDelete(t *testing.T) {
	repo := &orderRepoStub{orders: []models.Order{mondayNoonOrder()}}
	svc := newTestOrderService(t, repo)

	require.NoError(t, svc.Delete(context.Background(), "77777777-7777-7777-7777-777777777777"))
	assert.Equal(t, []string{"77777777-7777-7777-7777-777777777777"}, repo.deleted)

	err := svc.Delete(context.Background(), "88888888-8888-8888-8888-888888888888")
	requireAppError(t, err, "NOT_FOUND")
}

func TestOrderServiceListByStoreConvertsBounds(t *testing.T) {
	repo := &orderRepoStub{}
	svc := newTestOrderService(t, repo)

	_, err := svc.ListByStore(context.Background(), "11111111-1111-1111-1111-111111111111", dto.OrderQuery{
		Day:          "Monday",
		Timezone:     "Europe/London",
		ScheduleFrom: "09:00",
		ScheduleTo:   "12:00",
	})
	require.NoError(t, err)
	require.Len(t, repo.filters, 1)
	filter := repo.filters[0]
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", filter.StoreID)
	assert.True(t, filter.ScheduleFrom.Equal(time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)))
	assert.True(t, filter.ScheduleTo.Equal(time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)))

	_, err = svc.ListByStore(context.Background(), "not-a-uuid", dto.OrderQuery{})
	requireAppError(t, err, "VALIDATION_ERROR")
}
