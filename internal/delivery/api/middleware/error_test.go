package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guesssays/med-platform/internal/delivery/api/response"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantDetails any
	}{
		{
			name:        "client error keeps details",
			err:         domainerrors.ErrValidationFailed.WithDetails("email: must be a valid email"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_FAILED",
			wantDetails: "email: must be a valid email",
		},
		{
			name:       "wrapped app error",
			err:        errors.Wrap(domainerrors.ErrUserAlreadyExists, "register"),
			wantStatus: http.StatusConflict,
			wantCode:   domainerrors.ErrUserAlreadyExists.ErrorCode(),
		},
		{
			name:       "forbidden drops details",
			err:        domainerrors.ErrForbidden.WithDetails("role doctor"),
			wantStatus: http.StatusForbidden,
			wantCode:   domainerrors.ErrForbidden.ErrorCode(),
		},
		{
			name:       "echo error",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "HTTP_ERROR",
		},
		{
			name:       "unknown error is hidden",
			err:        errors.New("pq: connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	handler := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantDetails, body.Error.Details)
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}
