package dto

import (
	"time"

	"github.com/Mykola-art/shopsTestTask/internal/models"
)

// CreateOrderRequest schedules an order. Delivery orders need an address.
type CreateOrderRequest struct {
	ProductID  string           `json:"product_id" validate:"required,uuid"`
	Type       models.OrderType `json:"type" validate:"required,oneof=PICKUP DELIVERY"`
	ScheduleAt time.Time        `json:"schedule_at" validate:"required"`
	Address    *string          `json:"address" validate:"required_if=Type DELIVERY,omitempty,min=1,max=255"`
	Timezone   string           `json:"timezone" validate:"required,iana_zone"`
}

// UpdateOrderRequest patches an order. A new ScheduleAt is checked against the
// product's availability again; IsAccepted is how a store confirms an order.
type UpdateOrderRequest struct {
	ScheduleAt *time.Time `json:"schedule_at"`
	Address    *string    `json:"address" validate:"omitempty,max=255"`
	IsAccepted *bool      `json:"is_accepted"`
}

// OrderQuery carries raw list parameters. ScheduleFrom and ScheduleTo accept either an
// RFC 3339 instant or an HH:mm wall clock; the latter is read on Day in Timezone.
type OrderQuery struct {
	ProductID    string `validate:"omitempty,uuid"`
	StoreID      string `validate:"omitempty,uuid"`
	IsAccepted   *bool
	Type         string `validate:"omitempty,oneof=PICKUP DELIVERY"`
	Address      string `validate:"omitempty,max=255"`
	Day          string `validate:"omitempty,weekday"`
	Timezone     string `validate:"omitempty,iana_zone"`
	ScheduleFrom string
	ScheduleTo   string
	Page         int `validate:"gte=0"`
	PageSize     int `validate:"gte=0,lte=100"`
}

// OrderList is one page of orders.
type OrderList struct {
	Items      []models.Order     `json:"items"`
	Pagination *models.Pagination `json:"pagination"`
}
