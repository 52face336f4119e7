package models

import (
	"time"

	"github.com/Mykola-art/shopsTestTask/internal/availability"
)

// Store is a physical shop with opening hours expressed in its own timezone.
type Store struct {
	ID             string         `db:"id" json:"id"`
	Slug           string         `db:"slug" json:"slug"`
	Name           string         `db:"name" json:"name"`
	Address        string         `db:"address" json:"address"`
	Timezone       string         `db:"timezone" json:"timezone"`
	Lat            float64        `db:"lat" json:"lat"`
	Lng            float64        `db:"lng" json:"lng"`
	OperatingHours OperatingHours `db:"operating_hours" json:"operating_hours"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// Schedule binds the operating hours to the store zone.
func (s Store) Schedule() availability.ZonedSchedule {
	return s.OperatingHours.Zoned(s.Timezone)
}

// StoreFilter holds list parameters. Name and Address are matched in SQL, Availability
// is evaluated in-process against each store's zoned hours.
type StoreFilter struct {
	Name         string
	Address      string
	Availability availability.Query
	Page         int
	PageSize     int
}

// StoreStats summarizes a store's catalogue and orders. Past orders are scheduled at or
// before the moment the stats were taken.
type StoreStats struct {
	StoreID        string    `db:"-" json:"store_id"`
	ProductsCount  int       `db:"products_count" json:"products_count"`
	OrdersCount    int       `db:"orders_count" json:"orders_count"`
	AcceptedOrders int       `db:"accepted_orders" json:"accepted_orders"`
	PendingOrders  int       `db:"pending_orders" json:"pending_orders"`
	PastOrders     int       `db:"past_orders" json:"past_orders"`
	UpcomingOrders int       `db:"upcoming_orders" json:"upcoming_orders"`
	TakenAt        time.Time `db:"-" json:"taken_at"`
}
