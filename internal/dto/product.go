package dto

import (
	"github.com/Mykola-art/shopsTestTask/internal/availability"
	"github.com/Mykola-art/shopsTestTask/internal/models"
)

// CreateProductRequest is the payload for adding a product to a store. Availability is
// read in the store's timezone.
type CreateProductRequest struct {
	StoreID      string                      `json:"store_id" validate:"required,uuid"`
	Name         string                      `json:"name" validate:"required,max=255"`
	Price        float64                     `json:"price" validate:"gte=0"`
	Description  *string                     `json:"description" validate:"omitempty,max=2000"`
	Availability availability.WeeklySchedule `json:"availability" swaggertype:"object"`
	CacheTTL     *int                        `json:"cache_ttl" validate:"omitempty,gte=0,lte=86400"`
}

// UpdateProductRequest patches a product.
type UpdateProductRequest struct {
	StoreID      *string                      `json:"store_id" validate:"omitempty,uuid"`
	Name         *string                      `json:"name" validate:"omitempty,min=1,max=255"`
	Price        *float64                     `json:"price" validate:"omitempty,gte=0"`
	Description  *string                      `json:"description" validate:"omitempty,max=2000"`
	Availability *availability.WeeklySchedule `json:"availability" swaggertype:"object"`
	CacheTTL     *int                         `json:"cache_ttl" validate:"omitempty,gte=0,lte=86400"`
}

// ProductList is one page of products.
type ProductList struct {
	Items      []models.ProductDetail `json:"items"`
	Pagination *models.Pagination     `json:"pagination"`
}

// ProductAvailabilityResponse tells whether a product can be ordered right now.
type ProductAvailabilityResponse struct {
	ProductID        string             `json:"product_id"`
	StoreTimezone    string             `json:"store_timezone"`
	Available        bool               `json:"available"`
	State            availability.State `json:"state"`
	HoursUntilChange *int               `json:"hours_until_change,omitempty"`
	Narration        string             `json:"narration"`
	LocalTime        string             `json:"local_time"`
}
