package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Mykola-art/shopsTestTask/internal/availability"
	"github.com/Mykola-art/shopsTestTask/internal/dto"
	"github.com/Mykola-art/shopsTestTask/internal/models"
	appErrors "github.com/Mykola-art/shopsTestTask/pkg/errors"
	"github.com/Mykola-art/shopsTestTask/pkg/export"
)

type storeRepository interface {
	List(ctx context.Context, filter models.StoreFilter) ([]models.Store, int, error)
	All(ctx context.Context) ([]models.Store, error)
	FindByID(ctx context.Context, id string) (*models.Store, error)
	ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error)
	Create(ctx context.Context, store *models.Store) error
	Update(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, id string, now time.Time) (*models.StoreStats, error)
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, patterns ...string)
}

// Export formats accepted by StoreService.ExportHours.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// StoreService manages stores and answers questions about their opening hours.
type StoreService struct {
	repo        storeRepository
	evaluator   *availability.Evaluator
	cache       *CacheService
	invalidator cacheInvalidator
	metrics     *MetricsService
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
	validator   *validator.Validate
	logger      *zap.Logger
	opts        AvailabilityOptions
	now         func() time.Time
}

// NewStoreService builds a StoreService with sane defaults.
func NewStoreService(
	repo storeRepository,
	evaluator *availability.Evaluator,
	cache *CacheService,
	invalidator cacheInvalidator,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	opts AvailabilityOptions,
) *StoreService {
	if validate == nil {
		validate = NewValidator(evaluator.Converter().Zones())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreService{
		repo:        repo,
		evaluator:   evaluator,
		cache:       cache,
		invalidator: invalidator,
		metrics:     metrics,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		validator:   validate,
		logger:      logger,
		opts:        opts.normalize(),
		now:         time.Now,
	}
}

// Create registers a new store. Slugs are unique.
func (s *StoreService) Create(ctx context.Context, req dto.CreateStoreRequest) (*models.Store, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid store payload")
	}
	slug := strings.TrimSpace(req.Slug)
	if err := s.ensureSlugAvailable(ctx, slug, ""); err != nil {
		return nil, err
	}

	store := &models.Store{
		Slug:           slug,
		Name:           strings.TrimSpace(req.Name),
		Address:        strings.TrimSpace(req.Address),
		Timezone:       availability.CanonicalZone(req.Timezone),
		Lat:            req.Lat,
		Lng:            req.Lng,
		OperatingHours: models.OperatingHours{WeeklySchedule: req.OperatingHours},
	}
	if err := s.repo.Create(ctx, store); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create store")
	}
	s.invalidate(ctx)
	s.logger.Info("store created", zap.String("store_id", store.ID), zap.String("timezone", store.Timezone))
	return store, nil
}

// Get returns a store by id.
func (s *StoreService) Get(ctx context.Context, id string) (*models.Store, error) {
	defer s.observeQuery("stores.find", time.Now())
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "store not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load store")
	}
	return store, nil
}

// Update applies the non-nil fields of req. Changing the timezone keeps the wall-clock
// hours, so the store opens at the same local times in its new zone.
func (s *StoreService) Update(ctx context.Context, id string, req dto.UpdateStoreRequest) (*models.Store, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid store payload")
	}
	store, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Slug != nil {
		slug := strings.TrimSpace(*req.Slug)
		if slug != store.Slug {
			if err := s.ensureSlugAvailable(ctx, slug, id); err != nil {
				return nil, err
			}
		}
		store.Slug = slug
	}
	if req.Name != nil {
		store.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		store.Address = strings.TrimSpace(*req.Address)
	}
	if req.Timezone != nil {
		store.Timezone = availability.CanonicalZone(*req.Timezone)
	}
	if req.Lat != nil {
		store.Lat = *req.Lat
	}
	if req.Lng != nil {
		store.Lng = *req.Lng
	}
	if req.OperatingHours != nil {
		store.OperatingHours = models.OperatingHours{WeeklySchedule: *req.OperatingHours}
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update store")
	}
	// Product availability is read in the store zone, so product listings go stale too.
	s.invalidate(ctx, pattern(productCachePrefix))
	return store, nil
}

// Delete removes a store together with its products.
func (s *StoreService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "store not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete store")
	}
	s.invalidate(ctx, pattern(productCachePrefix))
	s.logger.Info("store deleted", zap.String("store_id", id))
	return nil
}

// Stats reports product and order counts for a store. Orders scheduled at or before
// the current instant count as past.
func (s *StoreService) Stats(ctx context.Context, id string) (*models.StoreStats, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	defer s.observeQuery("stores.stats", time.Now())
	stats, err := s.repo.Stats(ctx, id, s.now())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load store stats")
	}
	return stats, nil
}

// List returns one page of stores. Name and address narrow the rows in SQL; an
// availability query is evaluated against every remaining store before paging, so page
// counts reflect the filtered set. The bool reports a cache hit.
func (s *StoreService) List(ctx context.Context, filter models.StoreFilter) (*dto.StoreList, bool, error) {
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	matcher, err := s.evaluator.Compile(filter.Availability)
	if err != nil {
		return nil, false, availabilityError(err)
	}

	key := CacheKey(storeCachePrefix, "list", filter)
	var cached dto.StoreList
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, true, nil
	}

	result, err := s.list(ctx, filter, matcher)
	if err != nil {
		return nil, false, err
	}
	_ = s.cache.Set(ctx, key, result, 0)
	return result, false, nil
}

func (s *StoreService) list(ctx context.Context, filter models.StoreFilter, matcher *availability.Matcher) (*dto.StoreList, error) {
	if filter.Availability.IsZero() {
		start := time.Now()
		stores, total, err := s.repo.List(ctx, filter)
		s.observeQuery("stores.list", start)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list stores")
		}
		return &dto.StoreList{Items: stores, Pagination: models.NewPagination(filter.Page, filter.PageSize, total)}, nil
	}

	unpaged := filter
	unpaged.PageSize = 0
	start := time.Now()
	stores, _, err := s.repo.List(ctx, unpaged)
	s.observeQuery("stores.list", start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list stores")
	}

	start = time.Now()
	matched, err := filterBySchedule(ctx, stores, models.Store.Schedule, counted(s.metrics, checkKindFilter, matcher.Match), s.opts.Workers)
	s.metrics.ObserveFilter(storeCachePrefix, time.Since(start))
	if err != nil {
		s.logger.Error("store availability filter failed", zap.Error(err))
		return nil, availabilityError(err)
	}
	items, page := paginate(matched, filter.Page, filter.PageSize)
	return &dto.StoreList{Items: items, Pagination: page}, nil
}

// Active lists the stores open at the requested moment.
func (s *StoreService) Active(ctx context.Context, query dto.ActiveQuery) ([]models.Store, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid active query")
	}
	match, err := activePredicate(s.evaluator, query.Timezone, query.Time, s.now())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	stores, err := s.repo.All(ctx)
	s.observeQuery("stores.all", start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list stores")
	}
	open, err := filterBySchedule(ctx, stores, models.Store.Schedule, counted(s.metrics, checkKindActive, match), s.opts.Workers)
	if err != nil {
		return nil, availabilityError(err)
	}
	return open, nil
}

// Status reports whether the store is open now and when that changes. viewerTZ is
// optional and only adds the viewer's clock.
func (s *StoreService) Status(ctx context.Context, id, viewerTZ string) (*dto.StoreStatusResponse, error) {
	store, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	status, err := s.evaluator.DescribeStatus(store.Schedule(), now)
	s.metrics.ObserveAvailability(checkKindStatus, status.State == availability.StateOpen, err)
	if err != nil {
		return nil, availabilityError(err)
	}
	local, err := s.evaluator.LocalClock(store.Timezone, now)
	if err != nil {
		return nil, availabilityError(err)
	}

	resp := &dto.StoreStatusResponse{
		StoreID:   store.ID,
		Timezone:  store.Timezone,
		State:     status.State,
		Narration: status.Narrate(),
		LocalTime: local,
	}
	if hours := status.Hours(); hours >= 0 {
		resp.HoursUntilChange = &hours
	}
	if viewerTZ != "" {
		viewer, err := s.evaluator.LocalClock(viewerTZ, now)
		if err != nil {
			return nil, availabilityError(err)
		}
		resp.ViewerTimezone = availability.CanonicalZone(viewerTZ)
		resp.ViewerTime = viewer
	}
	return resp, nil
}

// Hours lists the store's open days in its own zone and in viewerTZ, which defaults to
// the configured zone.
func (s *StoreService) Hours(ctx context.Context, id, viewerTZ string) (*dto.StoreHoursResponse, error) {
	store, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.hoursFor(store, viewerTZ)
}

func (s *StoreService) hoursFor(store *models.Store, viewerTZ string) (*dto.StoreHoursResponse, error) {
	if viewerTZ == "" {
		viewerTZ = s.opts.DefaultTimezone
	}
	days, err := s.evaluator.HoursIn(store.Schedule(), viewerTZ)
	if err != nil {
		return nil, availabilityError(err)
	}
	return &dto.StoreHoursResponse{
		StoreID:        store.ID,
		Timezone:       store.Timezone,
		ViewerTimezone: availability.CanonicalZone(viewerTZ),
		Days:           days,
	}, nil
}

// ExportHours renders the hours sheet as CSV or PDF.
func (s *StoreService) ExportHours(ctx context.Context, id, viewerTZ, format string) (*dto.FileExport, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	store, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	hours, err := s.hoursFor(store, viewerTZ)
	if err != nil {
		return nil, err
	}

	data := hoursDataset(hours)
	filename := fmt.Sprintf("%s-hours.%s", store.Slug, format)
	var (
		body        []byte
		contentType string
	)
	switch format {
	case ExportFormatPDF:
		body, err = s.pdf.Render(data, store.Name+" opening hours")
		contentType = s.pdf.ContentType()
	default:
		body, err = s.csv.Render(data)
		contentType = s.csv.ContentType()
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render hours export")
	}
	return &dto.FileExport{Filename: filename, ContentType: contentType, Data: body}, nil
}

const (
	colDay         = "Day"
	colOpens       = "Opens"
	colCloses      = "Closes"
	colViewerOpens = "Opens (viewer)"
	colViewerClose = "Closes (viewer)"
)

func hoursDataset(hours *dto.StoreHoursResponse) export.Dataset {
	data := export.Dataset{
		Headers: []string{colDay, colOpens, colCloses, colViewerOpens, colViewerClose},
		Rows:    make([]map[string]string, 0, len(hours.Days)),
		Notes: []string{
			"Store hours are in " + hours.Timezone + ".",
			"Viewer hours are in " + hours.ViewerTimezone + " for the current week.",
		},
	}
	for _, d := range hours.Days {
		data.Rows = append(data.Rows, map[string]string{
			colDay:         d.Day.String(),
			colOpens:       fmt.Sprintf("%s %s", d.Interval.From, d.ZoneAbbr),
			colCloses:      fmt.Sprintf("%s %s", d.Interval.To, d.ZoneAbbr),
			colViewerOpens: fmt.Sprintf("%s %s %s", d.ViewerFrom.Day, d.ViewerFrom.Time, d.ViewerAbbr),
			colViewerClose: fmt.Sprintf("%s %s %s", d.ViewerTo.Day, d.ViewerTo.Time, d.ViewerAbbr),
		})
	}
	if len(hours.Days) == 0 {
		data.Notes = append(data.Notes, "The store is closed all week.")
	}
	return data
}

func (s *StoreService) ensureSlugAvailable(ctx context.Context, slug, excludeID string) error {
	exists, err := s.repo.ExistsBySlug(ctx, slug, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check slug")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "slug already in use")
	}
	return nil
}

func (s *StoreService) invalidate(ctx context.Context, extra ...string) {
	if s.invalidator == nil {
		return
	}
	s.invalidator.Invalidate(ctx, append([]string{pattern(storeCachePrefix)}, extra...)...)
}

func (s *StoreService) observeQuery(label string, start time.Time) {
	s.metrics.ObserveDBQuery(label, time.Since(start))
}
