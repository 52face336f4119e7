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

type productService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*models.ProductDetail, error)
	Get(ctx context.Context, id string) (*models.ProductDetail, bool, error)
	Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*models.ProductDetail, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.ProductFilter) (*dto.ProductList, bool, error)
	Active(ctx context.Context, query dto.ActiveQuery) ([]models.ProductDetail, error)
	Availability(ctx context.Context, id string) (*dto.ProductAvailabilityResponse, error)
}

// ProductHandler exposes product endpoints.
type ProductHandler struct {
	service productService
}

// NewProductHandler builds a new handler.
func NewProductHandler(service productService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create godoc
// @Summary Add a product to a store
// @Tags Products
// @Accept json
// @Produce json
// @Param payload body dto.CreateProductRequest true "Product payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid product payload"))
		return
	}
	product, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, product)
}

// List godoc
// @Summary List products
// @Description day, time, from and to are wall-clock values read in timezone and matched against the availability of each product in its store zone.
// @Tags Products
// @Produce json
// @Param store_id query string false "Store ID"
// @Param name query string false "Name contains"
// @Param price_from query number false "Minimum price"
// @Param price_to query number false "Maximum price"
// @Param timezone query string false "Caller IANA timezone (or X-Timezone header)"
// @Param day query string false "Weekday"
// @Param time query string false "Available at HH:mm"
// @Param from query string false "Available for the whole window starting HH:mm"
// @Param to query string false "Window end HH:mm"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	query, err := parseAvailabilityQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	priceFrom, err := parseQueryFloat(c, "price_from")
	if err != nil {
		response.Error(c, err)
		return
	}
	priceTo, err := parseQueryFloat(c, "price_to")
	if err != nil {
		response.Error(c, err)
		return
	}
	filter := models.ProductFilter{
		StoreID:      c.Query("store_id"),
		Name:         c.Query("name"),
		PriceFrom:    priceFrom,
		PriceTo:      priceTo,
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
// @Summary List products available now or at a wall-clock time today
// @Tags Products
// @Produce json
// @Param store_id query string false "Restrict to one store"
// @Param timezone query string false "Caller IANA timezone, required with time"
// @Param time query string false "HH:mm in timezone"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /products/active [get]
func (h *ProductHandler) Active(c *gin.Context) {
	products, err := h.service.Active(c.Request.Context(), dto.ActiveQuery{
		StoreID:  c.Query("store_id"),
		Timezone: timezoneParam(c),
		Time:     c.Query("time"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, products, nil)
}

// Get godoc
// @Summary Get a product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	product, cacheHit, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, product, nil, middleware.ExtractMeta(c))
}

// Update godoc
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param payload body dto.UpdateProductRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid product payload"))
		return
	}
	product, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, product, nil)
}

// Delete godoc
// @Summary Delete a product
// @Tags Products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Availability godoc
// @Summary Whether a product can be ordered right now
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id}/availability [get]
func (h *ProductHandler) Availability(c *gin.Context) {
	status, err := h.service.Availability(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}
