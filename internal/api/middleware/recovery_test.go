package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    echo.HandlerFunc
		wantStatus int
		wantLog    []string
		wantBody   string
	}{
		{
			name: "no panic passes through",
			handler: func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			},
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
		{
			name: "string panic",
			handler: func(_ echo.Context) error {
				panic("scorer exploded")
			},
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"panic recovered", "scorer exploded", "path=/api/v1/match"},
			wantBody:   `"status":500`,
		},
		{
			name: "non-string panic",
			handler: func(_ echo.Context) error {
				panic(42)
			},
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"error=42", "method=POST"},
			wantBody:   `"title":"Internal Server Error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/match", http.NoBody)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, Recovery(logger)(tt.handler)(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)

			if len(tt.wantLog) == 0 {
				assert.Empty(t, buf.String())
			}
			for _, s := range tt.wantLog {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestRecovery_ProblemContentType(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/panic", http.NoBody)
	rec := httptest.NewRecorder()

	h := Recovery(slog.New(slog.DiscardHandler))(func(_ echo.Context) error {
		panic("boom")
	})
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.Equal(t, "application/problem+json", rec.Header().Get(echo.HeaderContentType))
}
