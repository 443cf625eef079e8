package context

import (
	stdcontext "context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/guesssays/med-platform/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", GetRequestID(c))

	ctx := WithRequestID(stdcontext.Background(), "req-2")
	assert.Equal(t, "req-2", GetRequestIDFromContext(ctx))
	assert.Empty(t, GetRequestIDFromContext(stdcontext.Background()))
}

func TestResolveRequestID(t *testing.T) {
	assert.Equal(t, "abc-123_x.y:z", ResolveRequestID("abc-123_x.y:z"))

	for _, supplied := range []string{"", "has space", "line\nbreak", strings.Repeat("a", 129)} {
		got := ResolveRequestID(supplied)
		assert.NotEqual(t, supplied, got)
		assert.Len(t, got, 36, supplied)
	}
}

func TestGetRequestIDFallsBackToHeader(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	assert.Empty(t, GetRequestID(c))

	c.Response().Header().Set(HeaderXRequestID, "from-header")
	assert.Equal(t, "from-header", GetRequestID(c))
}

func TestGetLoggerOrDefault(t *testing.T) {
	fallback := slog.Default()
	scoped := slog.Default().With(slog.String("request_id", "abc"))

	assert.Same(t, fallback, GetLoggerOrDefault(stdcontext.Background(), fallback))
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(stdcontext.Background(), scoped), fallback))
}

func TestUserAndClientMetadata(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	c := e.NewContext(req, httptest.NewRecorder())

	_, ok := GetUser(c)
	assert.False(t, ok)

	SetUser(c, &entity.User{ID: 7, Email: "a@x.com"})
	user, ok := GetUser(c)
	assert.True(t, ok)
	assert.Equal(t, uint(7), user.ID)

	meta := ClientMetadata(c)
	assert.Equal(t, "test-agent", meta.UserAgent)
	assert.Equal(t, "10.0.0.7", meta.IP)
}
