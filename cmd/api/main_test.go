package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"food-facility-api/internal/handler"
	"food-facility-api/internal/models"
	"food-facility-api/internal/repository"
	"food-facility-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := repository.NewMemoryStore([]*models.Facility{})
	facilityHandler := handler.NewFacilityHandler(service.NewFacilityService(store), 5)
	return newRouter(zerolog.New(buf), facilityHandler)
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var line map[string]interface{}
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		line = nil
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
	}
	require.NotNil(t, line, "expected a log line")
	return line
}

func TestNewRouter_LogsPanickingRequests(t *testing.T) {
	var buf bytes.Buffer
	r := testRouter(&buf)
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	line := lastLogLine(t, &buf)
	assert.Equal(t, "request", line["message"])
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, float64(http.StatusInternalServerError), line["status"])
	assert.Equal(t, "/boom", line["path"])
}

func TestNewRouter_Routes(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		expectedCode int
		expectedBody string
	}{
		{name: "health", path: "/health", expectedCode: http.StatusOK, expectedBody: `{"status":"ok"}`},
		{name: "root lists facilities", path: "/", expectedCode: http.StatusOK, expectedBody: `[]`},
		{name: "facilities", path: "/facilities", expectedCode: http.StatusOK, expectedBody: `[]`},
		{name: "empty street", path: "/search/street?street=", expectedCode: http.StatusOK, expectedBody: `[]`},
		{name: "missing applicant", path: "/search/applicant", expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := testRouter(&buf)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			assert.Equal(t, float64(tt.expectedCode), lastLogLine(t, &buf)["status"])
		})
	}
}
