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

const productDetailSelect = `SELECT p.id, p.store_id, p.name, p.price, p.description, p.availability, p.cache_ttl, p.created_at, p.updated_at,
        s.timezone AS store_timezone
        FROM products p JOIN stores s ON s.id = p.store_id`

// ProductRepository manages persistence for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository constructs a ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns products joined with their store zone. A PageSize of zero disables SQL
// paging.
func (r *ProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.ProductDetail, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.StoreID != "" {
		conditions = append(conditions, fmt.Sprintf("p.store_id = $%d", len(args)+1))
		args = append(args, filter.StoreID)
	}
	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(p.name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.PriceFrom != nil {
		conditions = append(conditions, fmt.Sprintf("p.price >= $%d", len(args)+1))
		args = append(args, *filter.PriceFrom)
	}
	if filter.PriceTo != nil {
		conditions = append(conditions, fmt.Sprintf("p.price <= $%d", len(args)+1))
		args = append(args, *filter.PriceTo)
	}

	where := strings.Join(conditions, " AND ")
	query := fmt.Sprintf("%s WHERE %s ORDER BY p.created_at DESC, p.id", productDetailSelect, where)
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.PageSize, (page-1)*filter.PageSize)
	}

	var products []models.ProductDetail
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM products p JOIN stores s ON s.id = p.store_id WHERE " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	return products, total, nil
}

// FindByID fetches a product with its store zone. It returns sql.ErrNoRows when absent.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.ProductDetail, error) {
	var product models.ProductDetail
	if err := r.db.GetContext(ctx, &product, productDetailSelect+" WHERE p.id = $1", id); err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a product.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	const query = `INSERT INTO products (id, store_id, name, price, description, availability, cache_ttl, created_at, updated_at)
        VALUES (:id, :store_id, :name, :price, :description, :availability, :cache_ttl, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Update overwrites a product.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now().UTC()
	const query = `UPDATE products SET store_id = :store_id, name = :name, price = :price, description = :description,
        availability = :availability, cache_ttl = :cache_ttl, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, product); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes a product.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
