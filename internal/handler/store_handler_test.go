package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mykola-art/shopsTestTask/internal/availability"
	"github.com/Mykola-art/shopsTestTask/internal/dto"
	"github.com/Mykola-art/shopsTestTask/internal/models"
	appErrors "github.com/Mykola-art/shopsTestTask/pkg/errors"
)

type storeServiceMock struct {
	createResp *models.Store
	createErr  error
	getResp    *models.Store
	getErr     error
	listResp   *dto.StoreList
	listHit    bool
	listErr    error
	activeResp []models.Store
	statusResp *dto.StoreStatusResponse
	hoursResp  *dto.StoreHoursResponse
	exportResp *dto.FileExport
	exportErr  error
	statsResp  *models.StoreStats

	lastFilter   models.StoreFilter
	lastActive   dto.ActiveQuery
	lastViewerTZ string
	lastFormat   string
	createCalled bool
	deleteCalled bool
}

func (m *storeServiceMock) Create(ctx context.Context, req dto.CreateStoreRequest) (*models.Store, error) {
	m.createCalled = true
	return m.createResp, m.createErr
}

func (m *storeServiceMock) Get(ctx context.Context, id string) (*models.Store, error) {
	return m.getResp, m.getErr
}

func (m *storeServiceMock) Update(ctx context.Context, id string, req dto.UpdateStoreRequest) (*models.Store, error) {
	return m.getResp, m.getErr
}

func (m *storeServiceMock) Delete(ctx context.Context, id string) error {
	m.deleteCalled = true
	return m.getErr
}

func (m *storeServiceMock) List(ctx context.Context, filter models.StoreFilter) (*dto.StoreList, bool, error) {
	m.lastFilter = filter
	return m.listResp, m.listHit, m.listErr
}

func (m *storeServiceMock) Active(ctx context.Context, query dto.ActiveQuery) ([]models.Store, error) {
	m.lastActive = query
	return m.activeResp, nil
}

func (m *storeServiceMock) Status(ctx context.Context, id, viewerTZ string) (*dto.StoreStatusResponse, error) {
	m.lastViewerTZ = viewerTZ
	return m.statusResp, m.getErr
}

func (m *storeServiceMock) Hours(ctx context.Context, id, viewerTZ string) (*dto.StoreHoursResponse, error) {
	m.lastViewerTZ = viewerTZ
	return m.hoursResp, m.getErr
}

func (m *storeServiceMock) ExportHours(ctx context.Context, id, viewerTZ, format string) (*dto.FileExport, error) {
	m.lastViewerTZ = viewerTZ
	m.lastFormat = format
	return m.exportResp, m.exportErr
}

func (m *storeServiceMock) Stats(ctx context.Context, id string) (*models.StoreStats, error) {
	return m.statsResp, m.getErr
}

func newTestContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestStoreHandlerListParsesAvailabilityQuery(t *testing.T) {
	mockSvc := &storeServiceMock{
		listResp: &dto.StoreList{
			Items:      []models.Store{{ID: "store-1", Name: "Corner"}},
			Pagination: models.NewPagination(2, 5, 6),
		},
		listHit: true,
	}
	handler := NewStoreHandler(mockSvc)

	c, w := newTestContext(http.MethodGet, "/stores?name=corner&day=mon&from=09:00&to=24:00&page=2&limit=5", nil)
	c.Request.Header.Set(TimezoneHeader, "Europe/London")

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	filter := mockSvc.lastFilter
	assert.Equal(t, "corner", filter.Name)
	assert.Equal(t, 2, filter.Page)
	assert.Equal(t, 5, filter.PageSize)
	assert.Equal(t, "Europe/London", filter.Availability.Timezone)
	require.NotNil(t, filter.Availability.Day)
	assert.Equal(t, availability.Monday, *filter.Availability.Day)
	require.NotNil(t, filter.Availability.To)
	assert.Equal(t, availability.EndOfDay, *filter.Availability.To)
	assert.Nil(t, filter.Availability.At)

	payload := decodeEnvelope(t, w)
	meta, ok := payload["meta"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, meta["cache_hit"])
	pagination := payload["pagination"].(map[string]interface{})
	assert.EqualValues(t, 2, pagination["total_pages"])
}

func TestStoreHandlerListRejectsBadClock(t *testing.T) {
	mockSvc := &storeServiceMock{}
	handler := NewStoreHandler(mockSvc)

	c, w := newTestContext(http.MethodGet, "/stores?day=monday&time=25:00&timezone=UTC", nil)
	handler.List(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	payload := decodeEnvelope(t, w)
	assert.Equal(t, appErrors.ErrValidation.Code, payload["error"].(map[string]interface{})["code"])
	assert.Empty(t, mockSvc.lastFilter.Availability.Timezone)
}

func TestStoreHandlerListPassesServiceErrors(t *testing.T) {
	mockSvc := &storeServiceMock{listErr: appErrors.Clone(appErrors.ErrInsufficientFilterContext, "a day is required")}
	handler := NewStoreHandler(mockSvc)

	c, w := newTestContext(http.MethodGet, "/stores?time=10:00&timezone=UTC", nil)
	handler.List(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	payload := decodeEnvelope(t, w)
	assert.Equal(t, "INSUFFICIENT_FILTER_CONTEXT", payload["error"].(map[string]interface{})["code"])
}

func TestStoreHandlerActiveQueryParamWinsOverHeader(t *testing.T) {
	mockSvc := &storeServiceMock{activeResp: []models.Store{{ID: "store-1"}}}
	handler := NewStoreHandler(mockSvc)

	c, w := newTestContext(http.MethodGet, "/stores/active?timezone=Asia/Tokyo&time=08:30", nil)
	c.Request.Header.Set(TimezoneHeader, "Europe/London")

	handler.Active(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ActiveQuery{Timezone: "Asia/Tokyo", Time: "08:30"}, mockSvc.lastActive)
}

func TestStoreHandlerCreateInvalidBody(t *testing.T) {
	mockSvc := &storeServiceMock{}
	handler := NewStoreHandler(mockSvc)

	c, w := newTestContext(http.MethodPost, "/stores", []byte(`{"name":"x"`))
	handler.Create(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mockSvc.createCalled)
}

func TestStoreHandlerCreate(t *testing.T) {
	mockSvc := &storeServiceMock{createResp: &models.Store{ID: "store-1", Timezone: "America/New_York"}}
	handler := NewStoreHandler(mockSvc)

	body := []byte(`{"slug":"ny","name":"NY","address":"5th Ave","timezone":"America/New_York","operating_hours":{"Monday":{"from":"09:00","to":"17:00"}}}`)
	c, w := newTestContext(http.MethodPost, "/stores", body)
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, mockSvc.createCalled)
}

func TestStoreHandlerGetNotFound(t *testing.T) {
	handler := NewStoreHandler(&storeServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "store not found")})

	c, w := newTestContext(http.MethodGet, "/stores/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	handler.Get(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStoreHandlerDelete(t *testing.T) {
	mockSvc := &storeServiceMock{}
	handler := NewStoreHandler(mockSvc)

	c, w := newTestContext(http.MethodDelete, "/stores/store-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "store-1"}}
	handler.Delete(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Empty(t, w.Body.Bytes())
	assert.True(t, mockSvc.deleteCalled)
}

func TestStoreHandlerStatusUsesViewerZone(t *testing.T) {
	mockSvc := &storeServiceMock{statusResp: &dto.StoreStatusResponse{StoreID: "store-1", State: availability.StateOpen}}
	handler := NewStoreHandler(mockSvc)

	c, w := newTestContext(http.MethodGet, "/stores/store-1/status", nil)
	c.Params = gin.Params{{Key: "id", Value: "store-1"}}
	c.Request.Header.Set(TimezoneHeader, "Europe/Kyiv")
	handler.Status(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Europe/Kyiv", mockSvc.lastViewerTZ)
}

func TestStoreHandlerExportHours(t *testing.T) {
	mockSvc := &storeServiceMock{exportResp: &dto.FileExport{
		Filename:    "ny-hours.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte("Day,Opens\nMonday,09:00\n"),
	}}
	handler := NewStoreHandler(mockSvc)

	c, w := newTestContext(http.MethodGet, "/stores/store-1/hours/export?format=csv&timezone=UTC", nil)
	c.Params = gin.Params{{Key: "id", Value: "store-1"}}
	handler.ExportHours(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", mockSvc.lastFormat)
	assert.Equal(t, "UTC", mockSvc.lastViewerTZ)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ny-hours.csv")
	assert.Equal(t, "Day,Opens\nMonday,09:00\n", w.Body.String())
}

func TestStoreHandlerExportHoursRejectsFormat(t *testing.T) {
	handler := NewStoreHandler(&storeServiceMock{exportErr: appErrors.Clone(appErrors.ErrValidation, "unsupported export format")})

	c, w := newTestContext(http.MethodGet, "/stores/store-1/hours/export?format=xlsx", nil)
	c.Params = gin.Params{{Key: "id", Value: "store-1"}}
	handler.ExportHours(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStoreHandlerStats(t *testing.T) {
	handler := NewStoreHandler(&storeServiceMock{statsResp: &models.StoreStats{StoreID: "s-1", ProductsCount: 2, OrdersCount: 5, PastOrders: 3, UpcomingOrders: 2}})

	c, w := newTestContext(http.MethodGet, "/stores/s-1/stats", nil)
	c.Params = gin.Params{{Key: "id", Value: "s-1"}}
	handler.Stats(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(5), data["orders_count"])
	assert.Equal(t, float64(2), data["upcoming_orders"])
}

func TestStoreHandlerStatsNotFound(t *testing.T) {
	handler := NewStoreHandler(&storeServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "store not found")})

	c, w := newTestContext(http.MethodGet, "/stores/missing/stats", nil)
	handler.Stats(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
