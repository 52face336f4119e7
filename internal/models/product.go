package models

import (
	"time"

	"github.com/Mykola-art/shopsTestTask/internal/availability"
)

// Product is sold by a store. Its availability windows are read in the owning store's
// timezone.
type Product struct {
	ID           string         `db:"id" json:"id"`
	StoreID      string         `db:"store_id" json:"store_id"`
	Name         string         `db:"name" json:"name"`
	Price        float64        `db:"price" json:"price"`
	Description  *string        `db:"description" json:"description,omitempty"`
	Availability OperatingHours `db:"availability" json:"availability"`
	CacheTTL     int            `db:"cache_ttl" json:"cache_ttl"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// ProductDetail is a product joined with the zone of its store.
type ProductDetail struct {
	Product
	StoreTimezone string `db:"store_timezone" json:"store_timezone"`
}

// Schedule binds the availability windows to the store zone.
func (p ProductDetail) Schedule() availability.ZonedSchedule {
	return p.Availability.Zoned(p.StoreTimezone)
}

// ProductFilter holds list parameters for products.
type ProductFilter struct {
	StoreID      string
	Name         string
	PriceFrom    *float64
	PriceTo      *float64
	Availability availability.Query
	Page         int
	PageSize     int
}
