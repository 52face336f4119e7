package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Mykola-art/shopsTestTask/internal/models"
)

const storeColumns = "id, slug, name, address, timezone, lat, lng, operating_hours, created_at, updated_at"

// StoreRepository manages persistence for stores.
type StoreRepository struct {
	db *sqlx.DB
}

// NewStoreRepository constructs a StoreRepository.
func NewStoreRepository(db *sqlx.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// List returns stores matching the SQL-expressible part of the filter. A PageSize of
// zero returns every match so callers can post-filter by availability.
func (r *StoreRepository) List(ctx context.Context, filter models.StoreFilter) ([]models.Store, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Address != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(address) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Address)+"%")
	}

	where := strings.Join(conditions, " AND ")
	query := fmt.Sprintf("SELECT %s FROM stores WHERE %s ORDER BY created_at DESC, id", storeColumns, where)
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.PageSize, (page-1)*filter.PageSize)
	}

	var stores []models.Store
	if err := r.db.SelectContext(ctx, &stores, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list stores: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM stores WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count stores: %w", err)
	}
	return stores, total, nil
}

// All returns every store, used for "open now" scans.
func (r *StoreRepository) All(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	query := fmt.Sprintf("SELECT %s FROM stores ORDER BY created_at DESC, id", storeColumns)
	if err := r.db.SelectContext(ctx, &stores, query); err != nil {
		return nil, fmt.Errorf("list all stores: %w", err)
	}
	return stores, nil
}

// FindByID fetches a store. It returns sql.ErrNoRows when absent.
func (r *StoreRepository) FindByID(ctx context.Context, id string) (*models.Store, error) {
	var store models.Store
	query := fmt.Sprintf("SELECT %s FROM stores WHERE id = $1", storeColumns)
	if err := r.db.GetContext(ctx, &store, query, id); err != nil {
		return nil, err
	}
	return &store, nil
}

// ExistsBySlug checks slug uniqueness, optionally excluding a store.
func (r *StoreRepository) ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM stores WHERE slug = $1"
	args := []interface{}{slug}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check store slug: %w", err)
	}
	return true, nil
}

// Create inserts a store.
func (r *StoreRepository) Create(ctx context.Context, store *models.Store) error {
	if store.ID == "" {
		store.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if store.CreatedAt.IsZero() {
		store.CreatedAt = now
	}
	store.UpdatedAt = now
	const query = `INSERT INTO stores (id, slug, name, address, timezone, lat, lng, operating_hours, created_at, updated_at)
        VALUES (:id, :slug, :name, :address, :timezone, :lat, :lng, :operating_hours, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, store); err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	return nil
}

// Update overwrites a store.
func (r *StoreRepository) Update(ctx context.Context, store *models.Store) error {
	store.UpdatedAt = time.Now().UTC()
	const query = `UPDATE stores SET slug = :slug, name = :name, address = :address, timezone = :timezone, lat = :lat, lng = :lng,
        operating_hours = :operating_hours, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, store); err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	return nil
}

// Delete removes a store; products and orders cascade in the schema.
func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM stores WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Stats counts a store's products and its orders split by acceptance and by whether
// schedule_at has passed at now.
func (r *StoreRepository) Stats(ctx context.Context, id string, now time.Time) (*models.StoreStats, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM products WHERE store_id = $1) AS products_count,
        COUNT(o.id) AS orders_count,
        COALESCE(SUM(CASE WHEN o.is_accepted THEN 1 ELSE 0 END), 0) AS accepted_orders,
        COALESCE(SUM(CASE WHEN NOT o.is_accepted THEN 1 ELSE 0 END), 0) AS pending_orders,
        COALESCE(SUM(CASE WHEN o.schedule_at <= $2 THEN 1 ELSE 0 END), 0) AS past_orders,
        COALESCE(SUM(CASE WHEN o.schedule_at > $2 THEN 1 ELSE 0 END), 0) AS upcoming_orders
        FROM orders o JOIN products p ON p.id = o.product_id
        WHERE p.store_id = $1`
	var stats models.StoreStats
	if err := r.db.GetContext(ctx, &stats, query, id, now.UTC()); err != nil {
		return nil, fmt.Errorf("store stats: %w", err)
	}
	stats.StoreID = id
	stats.TakenAt = now.UTC()
	return &stats, nil
}
