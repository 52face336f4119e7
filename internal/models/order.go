package models

import "time"

// OrderType distinguishes how an order is fulfilled.
type OrderType string

const (
	OrderTypePickup   OrderType = "PICKUP"
	OrderTypeDelivery OrderType = "DELIVERY"
)

// Order is a scheduled purchase of a single product.
type Order struct {
	ID         string    `db:"id" json:"id"`
	ProductID  string    `db:"product_id" json:"product_id"`
	Type       OrderType `db:"type" json:"type"`
	ScheduleAt time.Time `db:"schedule_at" json:"schedule_at"`
	Address    *string   `db:"address" json:"address,omitempty"`
	Timezone   string    `db:"timezone" json:"timezone"`
	IsAccepted bool      `db:"is_accepted" json:"is_accepted"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// OrderFilter holds list parameters. StoreID matches orders of any product the store sells. ScheduleFrom and ScheduleTo are absolute instants;
// ScheduleTo is exclusive.
type OrderFilter struct {
	ProductID    string
	StoreID      string
	IsAccepted   *bool
	Type         OrderType
	Address      string
	ScheduleFrom *time.Time
	ScheduleTo   *time.Time
	Page         int
	PageSize     int
}
