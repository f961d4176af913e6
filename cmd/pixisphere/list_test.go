package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pixisphere/internal/common/config"
	"pixisphere/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upstream = `[
  {"id": 1, "name": "Asha Rao", "location": "Delhi", "price": 500, "rating": 4.0, "tags": ["Candid"]},
  {"id": 2, "name": "Vikram Shah", "location": "Mumbai", "price": 2000, "rating": 4.8, "tags": ["Studio"]},
  {"id": 3, "name": "Neha Iyer", "location": "Delhi", "price": 1000, "rating": 3.0, "tags": ["Outdoor"]}
]`

func testConfig(t *testing.T, handler http.HandlerFunc) *config.Config {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &config.Config{
		API:    config.APIConfig{BaseURL: srv.URL, CollectionPath: config.DefaultCollectionPath},
		Search: config.SearchConfig{Engine: "fuse", Threshold: 0.3, FeaturedCount: 3},
	}
}

func okUpstream(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte(upstream))
}

func rows(out string) []string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	var ids []string
	for _, l := range lines {
		fields := strings.Fields(l)
		if len(fields) > 0 && fields[0] != "ID" && !strings.HasPrefix(l, "Showing") && !strings.HasPrefix(l, "No ") {
			ids = append(ids, fields[0])
		}
	}
	return ids
}

func TestRunList(t *testing.T) {
	tests := []struct {
		name string
		opts listOptions
		want []string
	}{
		{"price ceiling and rating sort", listOptions{price: 1500, sort: "ratingDesc"}, []string{"1", "3"}},
		{"substring query", listOptions{price: 100000, query: "mumbai"}, []string{"2"}},
		{"fuzzy search on load", listOptions{price: 100000, search: "delhi", sort: "recentFirst"}, []string{"3", "1"}},
		{"styles and city", listOptions{price: 100000, styles: []string{"Outdoor", "Candid"}, city: "Delhi"}, []string{"1", "3"}},
		{"featured", listOptions{price: 0, featured: true}, []string{"2", "1", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, okUpstream)
			var out bytes.Buffer
			opts := tt.opts
			require.NoError(t, runList(context.Background(), cfg, &opts, &out, logger.NewTestLogger(t)))
			assert.Equal(t, tt.want, rows(out.String()))
		})
	}
}

func TestRunList_Messages(t *testing.T) {
	cfg := testConfig(t, okUpstream)

	var out bytes.Buffer
	require.NoError(t, runList(context.Background(), cfg, &listOptions{price: 100000, query: "zzz"}, &out, logger.NewNoOpLogger()))
	assert.Contains(t, out.String(), `No photographers found for "zzz"`)
	assert.Contains(t, out.String(), "NAME")
}

func TestRunList_UpstreamFailure(t *testing.T) {
	cfg := testConfig(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	var out bytes.Buffer
	err := runList(context.Background(), cfg, &listOptions{price: 100000}, &out, logger.NewNoOpLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load photographers")
}
