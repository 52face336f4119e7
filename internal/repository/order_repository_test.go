package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mykola-art/shopsTestTask/internal/models"
)

func TestOrderRepositoryListScheduleWindow(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	from := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)
	to := from.Add(3 * time.Hour)
	accepted := false
	rows := sqlmock.NewRows([]string{"id", "product_id", "type", "schedule_at", "address", "timezone", "is_accepted", "created_at", "updated_at"}).
		AddRow("o1", "p1", "PICKUP", from.Add(time.Hour), nil, "Europe/London", false, time.Now(), time.Now())
	mock.ExpectQuery(`FROM orders WHERE 1=1 AND is_accepted = \$1 AND type = \$2 AND schedule_at >= \$3 AND schedule_at < \$4 ORDER BY schedule_at, id LIMIT 10 OFFSET 0`).
		WithArgs(false, models.OrderTypePickup, from, to).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders WHERE`).
		WithArgs(false, models.OrderTypePickup, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	orders, total, err := repo.List(context.Background(), models.OrderFilter{
		IsAccepted: &accepted, Type: models.OrderTypePickup, ScheduleFrom: &from, ScheduleTo: &to,
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, models.OrderTypePickup, orders[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	mock.ExpectExec("INSERT INTO orders").
		WithArgs(sqlmock.AnyArg(), "p1", models.OrderTypeDelivery, sqlmock.AnyArg(), sqlmock.AnyArg(), "Europe/London", false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	order := &models.Order{ProductID: "p1", Type: models.OrderTypeDelivery, ScheduleAt: time.Now(), Timezone: "Europe/London"}
	require.NoError(t, repo.Create(context.Background(), order))
	assert.NotEmpty(t, order.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var orderRowColumns = []string{"id", "product_id", "type", "schedule_at", "address", "timezone", "is_accepted", "created_at", "updated_at"}

func TestOrderRepositoryListByStore(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	mock.ExpectQuery(`FROM orders WHERE 1=1 AND product_id IN \(SELECT id FROM products WHERE store_id = \$1\) AND type = \$2 ORDER BY schedule_at, id LIMIT 5 OFFSET 5`).
		WithArgs("s1", models.OrderTypeDelivery).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders WHERE 1=1 AND product_id IN`).
		WithArgs("s1", models.OrderTypeDelivery).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	orders, total, err := repo.List(context.Background(), models.OrderFilter{
		StoreID: "s1", Type: models.OrderTypeDelivery, Page: 2, PageSize: 5,
	})
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, 5, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	at := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, product_id, type, schedule_at, address, timezone, is_accepted, created_at, updated_at FROM orders WHERE id = \$1`).
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows(orderRowColumns).AddRow("o1", "p1", "DELIVERY", at, "1 Main St", "UTC", true, at, at))
	mock.ExpectQuery(`FROM orders WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	order, err := repo.FindByID(context.Background(), "o1")
	require.NoError(t, err)
	assert.True(t, order.IsAccepted)
	require.NotNil(t, order.Address)
	assert.Equal(t, "1 Main St", *order.Address)

	_, err = repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	at := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE orders SET schedule_at = \$1, address = \$2, is_accepted = \$3,\s+updated_at = \$4 WHERE id = \$5`).
		WithArgs(at, sqlmock.AnyArg(), true, sqlmock.AnyArg(), "o1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE orders`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	order := &models.Order{ID: "o1", ScheduleAt: at, IsAccepted: true}
	require.NoError(t, repo.Update(context.Background(), order))
	assert.False(t, order.UpdatedAt.IsZero())

	err := repo.Update(context.Background(), &models.Order{ID: "missing"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	mock.ExpectExec(`DELETE FROM orders WHERE id = \$1`).
		WithArgs("o1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM orders WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "o1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
