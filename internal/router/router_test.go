package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/lanhtutoicao123/TSL-CLIENT/internal/handler"
	"github.com/lanhtutoicao123/TSL-CLIENT/internal/service"
	"github.com/lanhtutoicao123/TSL-CLIENT/pkg/logger"
)

func TestRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r, Dependencies{
		ReportHandler: handler.NewReportHandler(service.NewReportService(nil, logger.Nop(), 1)),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true}`, w.Body.String())

	routes := map[string]bool{}
	for _, ri := range r.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"POST /api/v1/reports/encode",
		"POST /api/v1/reports/decode",
		"POST /api/v1/reports/normalize",
	} {
		assert.True(t, routes[want], want)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/normalize",
		strings.NewReader(`{"raw": {"message": "done"}, "sourceFile": {"name": "a.huf", "byteSize": 3}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"done"`)
}
