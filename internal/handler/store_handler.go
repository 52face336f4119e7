package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mykola-art/shopsTestTask/internal/dto"
	"github.com/Mykola-art/shopsTestTask/internal/middleware"
	"github.com/Mykola-art/shopsTestTask/internal/models"
	appErrors "github.com/Mykola-art/shopsTestTask/pkg/errors"
	"github.com/Mykola-art/shopsTestTask/pkg/response"
)

type storeService interface {
	Create(ctx context.Context, req dto.CreateStoreRequest) (*models.Store, error)
	Get(ctx context.Context, id string) (*models.Store, error)
	Update(ctx context.Context, id string, req dto.UpdateStoreRequest) (*models.Store, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.StoreFilter) (*dto.StoreList, bool, error)
	Active(ctx context.Context, query dto.ActiveQuery) ([]models.Store, error)
	Status(ctx context.Context, id, viewerTZ string) (*dto.StoreStatusResponse, error)
	Hours(ctx context.Context, id, viewerTZ string) (*dto.StoreHoursResponse, error)
	ExportHours(ctx context.Context, id, viewerTZ, format string) (*dto.FileExport, error)
	Stats(ctx context.Context, id string) (*models.StoreStats, error)
}

// StoreHandler exposes store endpoints.
type StoreHandler struct {
	service storeService
}

// NewStoreHandler builds a new handler.
func NewStoreHandler(service storeService) *StoreHandler {
	return &StoreHandler{service: service}
}

// Create godoc
// @Summary Register a store
// @Tags Stores
// @Accept json
// @Produce json
// @Param payload body dto.CreateStoreRequest true "Store payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /stores [post]
func (h *StoreHandler) Create(c *gin.Context) {
	var req dto.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid store payload"))
		return
	}
	store, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, store)
}

// List godoc
// @Summary List stores
// @Description Name and address match substrings. day, time, from and to are wall-clock values read in timezone.
// @Tags Stores
// @Produce json
// @Param name query string false "Name contains"
// @Param address query string false "Address contains"
// @Param timezone query string false "Caller IANA timezone (or X-Timezone header)"
// @Param day query string false "Weekday, e.g. Monday or mon"
// @Param time query string false "Open at HH:mm"
// @Param from query string false "Open for the whole window starting HH:mm"
// @Param to query string false "Window end HH:mm, 24:00 allowed"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /stores [get]
func (h *StoreHandler) List(c *gin.Context) {
	query, err := parseAvailabilityQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filter := models.StoreFilter{
		Name:         c.Query("name"),
		Address:      c.Query("address"),
		Availability: query,
		Page:         parseQueryInt(c, "page", 1),
		PageSize:     parseQueryInt(c, "limit", models.DefaultPageSize),
	}
	list, cacheHit, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, list.Items, list.Pagination, middleware.ExtractMeta(c))
}

// Active godoc
// @Summary List stores open now or at a wall-clock time today
// @Tags Stores
// @Produce json
// @Param timezone query string false "Caller IANA timezone, required with time"
// @Param time query string false "HH:mm in timezone"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /stores/active [get]
func (h *StoreHandler) Active(c *gin.Context) {
	stores, err := h.service.Active(c.Request.Context(), dto.ActiveQuery{
		Timezone: timezoneParam(c),
		Time:     c.Query("time"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stores, nil)
}

// Get godoc
// @Summary Get a store
// @Tags Stores
// @Produce json
// @Param id path string true "Store ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /stores/{id} [get]
func (h *StoreHandler) Get(c *gin.Context) {
	store, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, store, nil)
}

// Update godoc
// @Summary Update a store
// @Tags Stores
// @Accept json
// @Produce json
// @Param id path string true "Store ID"
// @Param payload body dto.UpdateStoreRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /stores/{id} [put]
func (h *StoreHandler) Update(c *gin.Context) {
	var req dto.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid store payload"))
		return
	}
	store, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, store, nil)
}

// Delete godoc
// @Summary Delete a store and its products
// @Tags Stores
// @Param id path string true "Store ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /stores/{id} [delete]
func (h *StoreHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats godoc
// @Summary Product and order counts for a store
// @Description Orders scheduled at or before now count as past, the rest as upcoming.
// @Tags Stores
// @Produce json
// @Param id path string true "Store ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /stores/{id}/stats [get]
func (h *StoreHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Status godoc
// @Summary Whether a store is open right now
// @Tags Stores
// @Produce json
// @Param id path string true "Store ID"
// @Param timezone query string false "Viewer timezone for the local clock"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /stores/{id}/status [get]
func (h *StoreHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context(), c.Param("id"), timezoneParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// Hours godoc
// @Summary Opening hours in the store zone and in the viewer zone
// @Tags Stores
// @Produce json
// @Param id path string true "Store ID"
// @Param timezone query string false "Viewer timezone"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /stores/{id}/hours [get]
func (h *StoreHandler) Hours(c *gin.Context) {
	hours, err := h.service.Hours(c.Request.Context(), c.Param("id"), timezoneParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, hours, nil)
}

// ExportHours godoc
// @Summary Download the opening hours sheet
// @Tags Stores
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Store ID"
// @Param timezone query string false "Viewer timezone"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /stores/{id}/hours/export [get]
func (h *StoreHandler) ExportHours(c *gin.Context) {
	file, err := h.service.ExportHours(c.Request.Context(), c.Param("id"), timezoneParam(c), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
