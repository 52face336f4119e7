package dto

import (
	"github.com/Mykola-art/shopsTestTask/internal/availability"
	"github.com/Mykola-art/shopsTestTask/internal/models"
)

// CreateStoreRequest is the payload for registering a store. Operating hours are read in
// Timezone.
type CreateStoreRequest struct {
	Slug           string                      `json:"slug" validate:"required,max=255"`
	Name           string                      `json:"name" validate:"required,max=255"`
	Address        string                      `json:"address" validate:"required,max=255"`
	Timezone       string                      `json:"timezone" validate:"required,iana_zone"`
	Lat            float64                     `json:"lat" validate:"gte=-90,lte=90"`
	Lng            float64                     `json:"lng" validate:"gte=-180,lte=180"`
	OperatingHours availability.WeeklySchedule `json:"operating_hours" swaggertype:"object"`
}

// UpdateStoreRequest patches a store. Nil fields are left untouched; a present
// operating_hours object replaces the whole week.
type UpdateStoreRequest struct {
	Slug           *string                      `json:"slug" validate:"omitempty,min=1,max=255"`
	Name           *string                      `json:"name" validate:"omitempty,min=1,max=255"`
	Address        *string                      `json:"address" validate:"omitempty,min=1,max=255"`
	Timezone       *string                      `json:"timezone" validate:"omitempty,iana_zone"`
	Lat            *float64                     `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng            *float64                     `json:"lng" validate:"omitempty,gte=-180,lte=180"`
	OperatingHours *availability.WeeklySchedule `json:"operating_hours" swaggertype:"object"`
}

// StoreList is one page of stores.
type StoreList struct {
	Items      []models.Store     `json:"items"`
	Pagination *models.Pagination `json:"pagination"`
}

// ActiveQuery asks which entities are open. Time is a wall clock in Timezone and
// requires it; without Time the current instant is used.
type ActiveQuery struct {
	StoreID  string `validate:"omitempty,uuid"`
	Timezone string `validate:"required_with=Time,omitempty,iana_zone"`
	Time     string `validate:"omitempty,hhmm"`
}

// StoreStatusResponse describes whether a store is open right now.
type StoreStatusResponse struct {
	StoreID          string             `json:"store_id"`
	Timezone         string             `json:"timezone"`
	State            availability.State `json:"state"`
	HoursUntilChange *int               `json:"hours_until_change,omitempty"`
	Narration        string             `json:"narration"`
	LocalTime        string             `json:"local_time"`
	ViewerTimezone   string             `json:"viewer_timezone,omitempty"`
	ViewerTime       string             `json:"viewer_time,omitempty"`
}

// StoreHoursResponse lists a store's open days in its own zone and in the viewer's.
type StoreHoursResponse struct {
	StoreID        string                  `json:"store_id"`
	Timezone       string                  `json:"timezone"`
	ViewerTimezone string                  `json:"viewer_timezone"`
	Days           []availability.DayHours `json:"days"`
}

// FileExport is a rendered download.
type FileExport struct {
	Filename    string
	ContentType string
	Data        []byte
}
