package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Mykola-art/shopsTestTask/internal/models"
)

const orderColumns = "id, product_id, type, schedule_at, address, timezone, is_accepted, created_at, updated_at"

// OrderRepository manages persistence for orders.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository constructs an OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// List returns a page of orders matching the filter.
func (r *OrderRepository) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.ProductID != "" {
		conditions = append(conditions, fmt.Sprintf("product_id = $%d", len(args)+1))
		args = append(args, filter.ProductID)
	}
	if filter.StoreID != "" {
		conditions = append(conditions, fmt.Sprintf("product_id IN (SELECT id FROM products WHERE store_id = $%d)", len(args)+1))
		args = append(args, filter.StoreID)
	}
	if filter.IsAccepted != nil {
		conditions = append(conditions, fmt.Sprintf("is_accepted = $%d", len(args)+1))
		args = append(args, *filter.IsAccepted)
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)+1))
		args = append(args, filter.Type)
	}
	if filter.Address != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(address) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Address)+"%")
	}
	if filter.ScheduleFrom != nil {
		conditions = append(conditions, fmt.Sprintf("schedule_at >= $%d", len(args)+1))
		args = append(args, filter.ScheduleFrom.UTC())
	}
	if filter.ScheduleTo != nil {
		conditions = append(conditions, fmt.Sprintf("schedule_at < $%d", len(args)+1))
		args = append(args, filter.ScheduleTo.UTC())
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > models.MaxPageSize {
		size = models.DefaultPageSize
	}

	where := strings.Join(conditions, " AND ")
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE %s ORDER BY schedule_at, id LIMIT %d OFFSET %d`,
		orderColumns, where, size, (page-1)*size)

	var orders []models.Order
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM orders WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	return orders, total, nil
}

// Create inserts an order.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	const query = `INSERT INTO orders (id, product_id, type, schedule_at, address, timezone, is_accepted, created_at, updated_at)
        VALUES (:id, :product_id, :type, :schedule_at, :address, :timezone, :is_accepted, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, order); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// FindByID fetches an order. It returns sql.ErrNoRows when absent.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	query := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns)
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		return nil, err
	}
	return &order, nil
}

// Update overwrites the mutable fields of an order.
func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	order.UpdatedAt = time.Now().UTC()
	const query = `UPDATE orders SET schedule_at = :schedule_at, address = :address, is_accepted = :is_accepted,
        updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, order)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an order.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
