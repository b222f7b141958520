package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		status        int
		providedReqID string
		wantLogFields []string
	}{
		{
			name:   "logs match request with generated ID",
			method: http.MethodPost,
			path:   "/api/v1/match",
			status: http.StatusOK,
			wantLogFields: []string{
				"level=INFO",
				"method=POST",
				"path=/api/v1/match",
				"status=200",
				"duration_ms=",
				"request_id=",
			},
		},
		{
			name:   "client errors log at warn",
			method: http.MethodPost,
			path:   "/api/v1/match/batch",
			status: http.StatusUnprocessableEntity,
			wantLogFields: []string{
				"level=WARN",
				"status=422",
			},
		},
		{
			name:          "uses provided request ID",
			method:        http.MethodGet,
			path:          "/api/v1/cache/stats",
			status:        http.StatusOK,
			providedReqID: "req-from-proxy-7",
			wantLogFields: []string{
				"request_id=req-from-proxy-7",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.providedReqID != "" {
				req.Header.Set(requestIDHeader, tt.providedReqID)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := RequestLog(logger)(func(c echo.Context) error {
				return c.NoContent(tt.status)
			})

			require.NoError(t, handler(c))

			for _, field := range tt.wantLogFields {
				assert.Contains(t, buf.String(), field)
			}

			respID := rec.Header().Get(requestIDHeader)
			assert.NotEmpty(t, respID)
			if tt.providedReqID != "" {
				assert.Equal(t, tt.providedReqID, respID)
			}
			assert.Equal(t, respID, c.Get("request_id"))
		})
	}
}

func TestRequestLog_ProbeSuccessLoggedOnce(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	handler := RequestLog(logger)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
		require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))
	}

	assert.Equal(t, 1, strings.Count(buf.String(), "path=/healthz"))
}

func TestRequestLog_ProbeFailuresAlwaysLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	calls := 0
	handler := RequestLog(logger)(func(c echo.Context) error {
		calls++
		if calls <= 2 {
			return c.NoContent(http.StatusOK)
		}
		return c.NoContent(http.StatusServiceUnavailable)
	})

	for range 4 {
		req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
		require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))
	}

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "status=200"), "only the first success is logged")
	assert.Equal(t, 2, strings.Count(out, "status=503"), "every failure is logged")
	assert.Contains(t, out, "level=WARN")
}
