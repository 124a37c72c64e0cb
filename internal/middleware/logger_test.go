package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockseries/internal/domain/models"
	"github.com/guttosm/stockseries/internal/logger"
)

func TestToString(t *testing.T) {
	if s := toString(nil); s != "" {
		t.Fatalf("nil -> %q, want empty", s)
	}
	if s := toString("abc"); s != "abc" {
		t.Fatalf("string -> %q, want 'abc'", s)
	}
	if s := toString(123); s != "" {
		t.Fatalf("non-string -> %q, want empty", s)
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.Configure("debug", false, &buf)
	t.Cleanup(logger.Init)
	return &buf
}

func TestRequestLogger_Fields(t *testing.T) {
	cases := []struct {
		name      string
		handler   gin.HandlerFunc
		wantLevel string
		wantErrs  string
		status    int
	}{
		{
			name:      "ok",
			handler:   func(c *gin.Context) { c.String(http.StatusOK, "pong") },
			wantLevel: "info",
			status:    http.StatusOK,
		},
		{
			name: "client error with attached error",
			handler: func(c *gin.Context) {
				AbortWithError(c, http.StatusBadRequest, "", models.NewValidationError("symbol_list: is required"))
			},
			wantLevel: "warn",
			wantErrs:  "symbol_list: is required",
			status:    http.StatusBadRequest,
		},
		{
			name:      "server error",
			handler:   func(c *gin.Context) { c.Status(http.StatusInternalServerError) },
			wantLevel: "error",
			status:    http.StatusInternalServerError,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := captureLogs(t)
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(RequestID(), RequestLogger())
			router.POST("/stock", tc.handler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/stock", nil))
			if w.Code != tc.status {
				t.Fatalf("status %d, want %d", w.Code, tc.status)
			}

			var line map[string]any
			if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
				t.Fatalf("log line not JSON: %q", buf.String())
			}
			if line["message"] != "http_request" || line["level"] != tc.wantLevel {
				t.Fatalf("unexpected log line %v", line)
			}
			if line["request_id"] != w.Header().Get(RequestIDHeader) {
				t.Fatalf("request id mismatch: log=%v header=%s", line["request_id"], w.Header().Get(RequestIDHeader))
			}
			if line["method"] != "POST" || line["path"] != "/stock" || line["status"] != float64(tc.status) {
				t.Fatalf("unexpected request fields %v", line)
			}
			if tc.wantErrs != "" {
				errs, _ := line["errors"].(string)
				if !bytes.Contains([]byte(errs), []byte(tc.wantErrs)) {
					t.Fatalf("errors field %q does not contain %q", errs, tc.wantErrs)
				}
			}
		})
	}
}
