package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	return lines
}

func newRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(buf)))
	r.GET("/ok", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("handling")
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
	return r
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		requestID     string
		expectedLevel string
		expectedCode  int
	}{
		{name: "generated id", path: "/ok?x=1", expectedLevel: "info", expectedCode: http.StatusOK},
		{name: "caller id", path: "/ok", requestID: "abc-123", expectedLevel: "info", expectedCode: http.StatusOK},
		{name: "server error", path: "/fail", expectedLevel: "error", expectedCode: http.StatusInternalServerError},
		{name: "not found", path: "/missing", expectedLevel: "warn", expectedCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			router := newRouter(&buf)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.requestID != "" {
				req.Header.Set(RequestIDHeader, tt.requestID)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			reqID := w.Header().Get(RequestIDHeader)
			if tt.requestID != "" {
				assert.Equal(t, tt.requestID, reqID)
			} else {
				_, err := uuid.Parse(reqID)
				assert.NoError(t, err)
			}

			lines := logLines(t, &buf)
			require.NotEmpty(t, lines)
			for _, line := range lines {
				assert.Equal(t, reqID, line["request_id"])
			}

			access := lines[len(lines)-1]
			assert.Equal(t, "request", access["message"])
			assert.Equal(t, tt.expectedLevel, access["level"])
			assert.Equal(t, "GET", access["method"])
			assert.Equal(t, tt.path, access["path"])
			assert.Equal(t, float64(tt.expectedCode), access["status"])
		})
	}
}

func TestRequestLogger_HandlerLogsThroughContext(t *testing.T) {
	var buf bytes.Buffer
	router := newRouter(&buf)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

	lines := logLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "handling", lines[0]["message"])
	assert.Equal(t, lines[0]["request_id"], lines[1]["request_id"])
}
