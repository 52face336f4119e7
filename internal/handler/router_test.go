package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mykola-art/shopsTestTask/internal/dto"
	"github.com/Mykola-art/shopsTestTask/internal/models"
	"github.com/Mykola-art/shopsTestTask/internal/service"
)

func newTestRouter(stores *storeServiceMock, exports bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), Handlers{
		Stores:         NewStoreHandler(stores),
		Products:       NewProductHandler(&productServiceMock{listResp: &dto.ProductList{}}),
		Orders:         NewOrderHandler(&orderServiceMock{}),
		Metrics:        NewMetricsHandler(service.NewMetricsService()),
		ExportsEnabled: exports,
	})
	return r
}

func TestRegisterRoutesPrefersStaticSegments(t *testing.T) {
	stores := &storeServiceMock{activeResp: []models.Store{}}
	r := newTestRouter(stores, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores/active?timezone=UTC", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "UTC", stores.lastActive.Timezone)
}

func TestRegisterRoutesExportToggle(t *testing.T) {
	file := &dto.FileExport{Filename: "hours.csv", ContentType: "text/csv; charset=utf-8", Data: []byte("Day\n")}

	disabled := newTestRouter(&storeServiceMock{exportResp: file}, false)
	w := httptest.NewRecorder()
	disabled.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stores/s-1/hours/export", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	enabled := newTestRouter(&storeServiceMock{exportResp: file}, true)
	w = httptest.NewRecorder()
	enabled.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stores/s-1/hours/export", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterRoutesMountsEveryResource(t *testing.T) {
	r := newTestRouter(&storeServiceMock{listResp: &dto.StoreList{}}, false)

	for _, path := range []string{"/api/v1/stores", "/api/v1/products", "/api/v1/orders", "/api/v1/metrics/summary"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRegisterRoutesOrderPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	orders := &orderServiceMock{getResp: &models.Order{ID: "o-1"}}
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), Handlers{
		Stores: NewStoreHandler(&storeServiceMock{statsResp: &models.StoreStats{StoreID: "s-1"}}),
		Orders: NewOrderHandler(orders),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/store/s-1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s-1", orders.lastStoreID)
	assert.Empty(t, orders.lastID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/o-1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "o-1", orders.lastID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stores/s-1/stats", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
