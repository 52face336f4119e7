package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Mykola-art/shopsTestTask/internal/availability"
	"github.com/Mykola-art/shopsTestTask/internal/dto"
	"github.com/Mykola-art/shopsTestTask/internal/models"
	appErrors "github.com/Mykola-art/shopsTestTask/pkg/errors"
)

// defaultProductCacheTTL is applied when a product is created without cache_ttl.
const defaultProductCacheTTL = 3600

type productRepository interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.ProductDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.ProductDetail, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

type storeFinder interface {
	FindByID(ctx context.Context, id string) (*models.Store, error)
}

// ProductService manages products. A product's availability windows are always read in
// the zone of the store selling it.
type ProductService struct {
	repo        productRepository
	stores      storeFinder
	evaluator   *availability.Evaluator
	cache       *CacheService
	invalidator cacheInvalidator
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
	opts        AvailabilityOptions
	now         func() time.Time
}

// NewProductService builds a ProductService.
func NewProductService(
	repo productRepository,
	stores storeFinder,
	evaluator *availability.Evaluator,
	cache *CacheService,
	invalidator cacheInvalidator,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	opts AvailabilityOptions,
) *ProductService {
	if validate == nil {
		validate = NewValidator(evaluator.Converter().Zones())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		repo:        repo,
		stores:      stores,
		evaluator:   evaluator,
		cache:       cache,
		invalidator: invalidator,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		opts:        opts.normalize(),
		now:         time.Now,
	}
}

// Create adds a product to an existing store.
func (s *ProductService) Create(ctx context.Context, req dto.CreateProductRequest) (*models.ProductDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid product payload")
	}
	store, err := s.findStore(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		StoreID:      store.ID,
		Name:         strings.TrimSpace(req.Name),
		Price:        req.Price,
		Description:  req.Description,
		Availability: models.OperatingHours{WeeklySchedule: req.Availability},
		CacheTTL:     defaultProductCacheTTL,
	}
	if req.CacheTTL != nil {
		product.CacheTTL = *req.CacheTTL
	}
	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create product")
	}
	s.invalidate(ctx)
	s.logger.Info("product created", zap.String("product_id", product.ID), zap.String("store_id", store.ID))
	return &models.ProductDetail{Product: product, StoreTimezone: store.Timezone}, nil
}

// Get returns a product with its store zone. Results are cached for the product's own
// cache_ttl; zero disables caching of that product.
func (s *ProductService) Get(ctx context.Context, id string) (*models.ProductDetail, bool, error) {
	key := CacheKey(productCachePrefix, "item", id)
	var cached models.ProductDetail
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, true, nil
	}

	product, err := s.load(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if product.CacheTTL > 0 {
		_ = s.cache.Set(ctx, key, product, time.Duration(product.CacheTTL)*time.Second)
	}
	return product, false, nil
}

// Update applies the non-nil fields of req.
func (s *ProductService) Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*models.ProductDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid product payload")
	}
	detail, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	product := detail.Product
	if req.StoreID != nil && *req.StoreID != product.StoreID {
		store, err := s.findStore(ctx, *req.StoreID)
		if err != nil {
			return nil, err
		}
		product.StoreID = store.ID
		detail.StoreTimezone = store.Timezone
	}
	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Availability != nil {
		product.Availability = models.OperatingHours{WeeklySchedule: *req.Availability}
	}
	if req.CacheTTL != nil {
		product.CacheTTL = *req.CacheTTL
	}

	if err := s.repo.Update(ctx, &product); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update product")
	}
	s.invalidate(ctx)
	return &models.ProductDetail{Product: product, StoreTimezone: detail.StoreTimezone}, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "product not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete product")
	}
	s.invalidate(ctx)
	return nil
}

// List returns one page of products, applying the availability query in-process the
// same way StoreService.List does.
func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) (*dto.ProductList, bool, error) {
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	if filter.PriceFrom != nil && filter.PriceTo != nil && *filter.PriceFrom > *filter.PriceTo {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "price_from must not exceed price_to")
	}
	matcher, err := s.evaluator.Compile(filter.Availability)
	if err != nil {
		return nil, false, availabilityError(err)
	}

	key := CacheKey(productCachePrefix, "list", filter)
	var cached dto.ProductList
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, true, nil
	}

	var result *dto.ProductList
	if filter.Availability.IsZero() {
		start := time.Now()
		products, total, err := s.repo.List(ctx, filter)
		s.metrics.ObserveDBQuery("products.list", time.Since(start))
		if err != nil {
			return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list products")
		}
		result = &dto.ProductList{Items: products, Pagination: models.NewPagination(filter.Page, filter.PageSize, total)}
	} else {
		products, err := s.filtered(ctx, filter, counted(s.metrics, checkKindFilter, matcher.Match))
		if err != nil {
			return nil, false, err
		}
		items, page := paginate(products, filter.Page, filter.PageSize)
		result = &dto.ProductList{Items: items, Pagination: page}
	}
	_ = s.cache.Set(ctx, key, result, 0)
	return result, false, nil
}

// Active lists products available at the requested moment, optionally for one store.
func (s *ProductService) Active(ctx context.Context, query dto.ActiveQuery) ([]models.ProductDetail, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid active query")
	}
	match, err := activePredicate(s.evaluator, query.Timezone, query.Time, s.now())
	if err != nil {
		return nil, err
	}
	return s.filtered(ctx, models.ProductFilter{StoreID: query.StoreID}, counted(s.metrics, checkKindActive, match))
}

// Availability reports whether a product can be ordered right now.
func (s *ProductService) Availability(ctx context.Context, id string) (*dto.ProductAvailabilityResponse, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	status, err := s.evaluator.DescribeStatus(product.Schedule(), now)
	s.metrics.ObserveAvailability(checkKindStatus, status.State == availability.StateOpen, err)
	if err != nil {
		return nil, availabilityError(err)
	}
	local, err := s.evaluator.LocalClock(product.StoreTimezone, now)
	if err != nil {
		return nil, availabilityError(err)
	}
	resp := &dto.ProductAvailabilityResponse{
		ProductID:     product.ID,
		StoreTimezone: product.StoreTimezone,
		Available:     status.State == availability.StateOpen,
		State:         status.State,
		Narration:     status.Narrate(),
		LocalTime:     local,
	}
	if hours := status.Hours(); hours >= 0 {
		resp.HoursUntilChange = &hours
	}
	return resp, nil
}

// filtered loads every product matching the SQL part of filter and keeps those
// accepted by match.
func (s *ProductService) filtered(ctx context.Context, filter models.ProductFilter, match schedulePredicate) ([]models.ProductDetail, error) {
	filter.Page, filter.PageSize = 0, 0
	start := time.Now()
	products, _, err := s.repo.List(ctx, filter)
	s.metrics.ObserveDBQuery("products.list", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list products")
	}

	start = time.Now()
	kept, err := filterBySchedule(ctx, products, models.ProductDetail.Schedule, match, s.opts.Workers)
	s.metrics.ObserveFilter(productCachePrefix, time.Since(start))
	if err != nil {
		s.logger.Error("product availability filter failed", zap.Error(err))
		return nil, availabilityError(err)
	}
	return kept, nil
}

func (s *ProductService) load(ctx context.Context, id string) (*models.ProductDetail, error) {
	start := time.Now()
	product, err := s.repo.FindByID(ctx, id)
	s.metrics.ObserveDBQuery("products.find", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "product not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load product")
	}
	return product, nil
}

func (s *ProductService) findStore(ctx context.Context, id string) (*models.Store, error) {
	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "store not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load store")
	}
	return store, nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	s.invalidator.Invalidate(ctx, pattern(productCachePrefix))
}
