package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"upkeep/internal/handler"
	"upkeep/internal/router"
	"upkeep/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSetup_Routes(t *testing.T) {
	repo := new(mocks.MockVendorRepo)
	repo.On("Ping", mock.Anything).Return(nil)
	r := router.Setup(
		handler.NewImportHandler(new(mocks.MockImportService), 1024),
		handler.NewHealthHandler(repo),
		nil,
		1024,
	)

	for _, path := range []string{"/healthz", "/readyz", "/api/v1/vendor-imports/template", "/swagger/doc.json"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/vendors", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
