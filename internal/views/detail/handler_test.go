package detail

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "pixisphere/internal/common/errors"
	"pixisphere/internal/common/logger"
	"pixisphere/internal/models"
	"pixisphere/internal/views"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeFetcher struct {
	record *models.Photographer
	err    error
	gotID  string
}

func (f *fakeFetcher) GetPhotographer(_ context.Context, id string) (*models.Photographer, error) {
	f.gotID = id
	return f.record, f.err
}

func serve(t *testing.T, f Fetcher, id string) *httptest.ResponseRecorder {
	t.Helper()
	return serveWith(t, f, id, logger.NewTestLogger(t))
}

func serveWith(t *testing.T, f Fetcher, id string, log logger.Logger) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Renderer = views.MustRenderer()

	h := NewHandler(LoadConfig(), f, log)

	req := httptest.NewRequest(http.MethodGet, "/photographer/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/photographer/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, h.Handle(c))
	return rec
}

func TestHandler_RendersProfile(t *testing.T) {
	f := &fakeFetcher{record: &models.Photographer{
		ID:        "2",
		Name:      "Vikram Shah",
		Bio:       "Studio portraits",
		Price:     2000,
		Styles:    []string{"Studio", "Candid"},
		Portfolio: []string{"https://img/p1.jpg", "https://img/p2.jpg"},
		Reviews:   []models.Review{{Name: "Kiran", Comment: "Great work", Date: "2024-03-10"}},
	}}

	rec := serve(t, f, "2")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", f.gotID)

	body := rec.Body.String()
	assert.Contains(t, body, "Vikram Shah")
	assert.Contains(t, body, "Price: ₹2000")
	assert.Contains(t, body, "Styles: Studio, Candid")
	assert.Contains(t, body, `alt="Portfolio 1"`)
	assert.Contains(t, body, "Great work")
	assert.NotContains(t, body, "Loading...")
}

func TestHandler_PlaceholderOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *fakeFetcher
	}{
		{"fetch failure", &fakeFetcher{err: apperrors.NewFetchFailedError("http://x", errors.New("refused"))}},
		{"not found", &fakeFetcher{err: apperrors.NewNotFoundError("photographer", "9")}},
		{"empty record", &fakeFetcher{record: &models.Photographer{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.fetcher, "9")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `<p class="loading">Loading...</p>`)
		})
	}
}

func TestHandler_NotFoundIsNotAnError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel zapcore.Level
	}{
		{"not found", apperrors.NewNotFoundError("photographer", "9"), zapcore.DebugLevel},
		{"fetch failure", apperrors.NewFetchFailedError("http://x", errors.New("refused")), zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			rec := serveWith(t, &fakeFetcher{err: tt.err}, "9", logger.NewZapAdapter(zap.New(core)))
			assert.Equal(t, http.StatusOK, rec.Code)

			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tt.wantLevel, logs.All()[0].Level)
		})
	}
}

func TestBuildPage(t *testing.T) {
	assert.Equal(t, LoadingPage(), BuildPage(nil))

	page := BuildPage(&models.Photographer{ID: "1", Name: "Asha"})
	assert.False(t, page.Loading)
	assert.Equal(t, "Asha", page.Title)
}
