package pipeline

import (
	"fmt"
	"testing"

	"pixisphere/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCollection() []models.Photographer {
	return []models.Photographer{
		{ID: "1", Name: "Asha Rao", Price: 500, Rating: 4.0, Tags: []string{"Candid"}, Location: "Delhi"},
		{ID: "2", Name: "Vikram Shah", Price: 2000, Rating: 4.8, Tags: []string{"Studio"}, Location: "Mumbai"},
		{ID: "3", Name: "Neha Iyer", Price: 1000, Rating: 3.0, Tags: []string{"Outdoor"}, Location: "Delhi"},
	}
}

func largerCollection() []models.Photographer {
	return []models.Photographer{
		{ID: "4", Name: "A", Price: 800, Rating: 4.5, Tags: []string{"Candid", "Studio"}, Location: "Pune"},
		{ID: "10", Name: "B", Price: 300, Rating: 4.5, Tags: []string{"Traditional"}, Location: "Delhi"},
		{ID: "2", Name: "C", Price: 800, Rating: 3.5, Tags: []string{"Outdoor"}, Location: "Mumbai"},
		{ID: "x", Name: "D", Price: 50000, Rating: 5.0, Tags: nil, Location: ""},
		{ID: "7", Name: "E", Price: 300, Rating: 2.0, Tags: []string{"Studio"}, Location: "Pune"},
		{ID: "5", Name: "F", Price: 0, Rating: 4.5, Tags: []string{"Candid"}, Location: "Delhi"},
	}
}

func ids(items []models.Photographer) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID.String()
	}
	return out
}

func TestApply_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.FilterConfig
		want []string
	}{
		{
			name: "price ceiling with rating sort",
			cfg:  models.FilterConfig{PriceCeiling: 1500, SortMode: models.SortRatingDesc},
			want: []string{"1", "3"},
		},
		{
			name: "text query matches location",
			cfg:  models.FilterConfig{TextQuery: "mumbai", PriceCeiling: models.DefaultPriceCeiling},
			want: []string{"2"},
		},
		{
			name: "text query is trimmed and case insensitive",
			cfg:  models.FilterConfig{TextQuery: "  CANDID ", PriceCeiling: models.DefaultPriceCeiling},
			want: []string{"1"},
		},
		{
			name: "whitespace query matches everything",
			cfg:  models.FilterConfig{TextQuery: "   ", PriceCeiling: models.DefaultPriceCeiling},
			want: []string{"1", "2", "3"},
		},
		{
			name: "min rating",
			cfg:  models.FilterConfig{PriceCeiling: models.DefaultPriceCeiling, MinRating: 4},
			want: []string{"1", "2"},
		},
		{
			name: "style intersection",
			cfg:  models.FilterConfig{PriceCeiling: models.DefaultPriceCeiling, RequiredStyles: []string{"Studio", "Outdoor"}},
			want: []string{"2", "3"},
		},
		{
			name: "style match is case sensitive",
			cfg:  models.FilterConfig{PriceCeiling: models.DefaultPriceCeiling, RequiredStyles: []string{"studio"}},
			want: []string{},
		},
		{
			name: "city exact",
			cfg:  models.FilterConfig{PriceCeiling: models.DefaultPriceCeiling, City: "Delhi", SortMode: models.SortPriceAsc},
			want: []string{"1", "3"},
		},
		{
			name: "recent first",
			cfg:  models.FilterConfig{PriceCeiling: models.DefaultPriceCeiling, SortMode: models.SortRecentFirst},
			want: []string{"3", "2", "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sampleCollection(), tt.cfg)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_EmptyCollection(t *testing.T) {
	cfg := models.DefaultFilterConfig()
	got := Apply(nil, cfg)
	assert.Empty(t, got)
	assert.Equal(t, "", ResultMessage(cfg, len(got)))

	cfg.TextQuery = "delhi"
	got = Apply([]models.Photographer{}, cfg)
	assert.Empty(t, got)
	assert.Equal(t, `No photographers found for "delhi"`, ResultMessage(cfg, len(got)))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := largerCollection()
	before := ids(in)
	Apply(in, models.FilterConfig{PriceCeiling: models.DefaultPriceCeiling, SortMode: models.SortPriceAsc})
	assert.Equal(t, before, ids(in))
}

func TestApply_SortModeNeverChangesMembership(t *testing.T) {
	modes := []models.SortMode{models.SortDefault, models.SortPriceAsc, models.SortRatingDesc, models.SortRecentFirst}
	ceilings := []float64{0, 300, 800, models.DefaultPriceCeiling}
	ratings := []float64{0, 2, 3, 4, 4.5}

	for _, ceiling := range ceilings {
		for _, minRating := range ratings {
			var expected []string
			for _, p := range largerCollection() {
				if p.Price >= 0 && p.Price <= ceiling && p.Rating >= minRating {
					expected = append(expected, p.ID.String())
				}
			}

			for _, mode := range modes {
				cfg := models.FilterConfig{PriceCeiling: ceiling, MinRating: minRating, SortMode: mode}
				got := ids(Apply(largerCollection(), cfg))
				assert.ElementsMatch(t, expected, got, "ceiling=%v rating=%v mode=%s", ceiling, minRating, mode)
			}
		}
	}
}

func TestApply_StableSort(t *testing.T) {
	tests := []struct {
		mode models.SortMode
		want []string
	}{
		{models.SortPriceAsc, []string{"5", "10", "7", "4", "2", "x"}},
		{models.SortRatingDesc, []string{"x", "4", "10", "5", "2", "7"}},
		{models.SortDefault, []string{"4", "10", "2", "x", "7", "5"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			cfg := models.FilterConfig{PriceCeiling: models.DefaultPriceCeiling, SortMode: tt.mode}
			if diff := cmp.Diff(tt.want, ids(Apply(largerCollection(), cfg))); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_RecentFirstNonNumericIDs(t *testing.T) {
	in := []models.Photographer{
		{ID: "a", Price: 1},
		{ID: "b", Price: 1},
	}
	got := Apply(in, models.FilterConfig{PriceCeiling: 10, SortMode: models.SortRecentFirst})
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestApply_RecentFirstMixedIDs(t *testing.T) {
	in := []models.Photographer{
		{ID: "3", Price: 1},
		{ID: "x", Price: 1},
		{ID: "5", Price: 1},
		{ID: "y", Price: 1},
		{ID: "10", Price: 1},
	}
	got := Apply(in, models.FilterConfig{PriceCeiling: 10, SortMode: models.SortRecentFirst})
	assert.Equal(t, []string{"10", "5", "3", "x", "y"}, ids(got))
}

func TestApply_Idempotent(t *testing.T) {
	configs := []models.FilterConfig{
		models.DefaultFilterConfig(),
		{PriceCeiling: 800, MinRating: 3, SortMode: models.SortPriceAsc},
		{PriceCeiling: models.DefaultPriceCeiling, RequiredStyles: []string{"Candid"}, SortMode: models.SortRatingDesc},
		{PriceCeiling: models.DefaultPriceCeiling, City: "Pune", SortMode: models.SortRecentFirst},
		{TextQuery: "d", PriceCeiling: models.DefaultPriceCeiling},
	}

	for i, cfg := range configs {
		t.Run(fmt.Sprintf("config-%d", i), func(t *testing.T) {
			once := Apply(largerCollection(), cfg)
			twice := Apply(once, cfg)
			assert.Equal(t, ids(once), ids(twice))
		})
	}
}

func TestSplit(t *testing.T) {
	for n := 0; n <= len(largerCollection()); n++ {
		t.Run(fmt.Sprintf("len-%d", n), func(t *testing.T) {
			result := largerCollection()[:n]
			top, rest := Split(result)

			want := n
			if want > TopCount {
				want = TopCount
			}
			require.Len(t, top, want)
			assert.Equal(t, ids(result), append(ids(top), ids(rest)...))
		})
	}
}

func TestTopRated(t *testing.T) {
	got := TopRated(largerCollection(), 3)
	assert.Equal(t, []string{"x", "4", "10"}, ids(got))

	assert.Len(t, TopRated(sampleCollection()[:2], 3), 2)
	assert.Empty(t, TopRated(nil, 3))
}

func TestCityOptions(t *testing.T) {
	assert.Equal(t, []string{"Pune", "Delhi", "Mumbai"}, CityOptions(largerCollection()))
	assert.Nil(t, CityOptions(nil))
}

func TestMatches(t *testing.T) {
	p := sampleCollection()[0]
	assert.True(t, Matches(&p, models.FilterConfig{TextQuery: "ASHA", PriceCeiling: 500}))
	assert.False(t, Matches(&p, models.FilterConfig{PriceCeiling: 499}))

	neg := models.Photographer{Price: -1}
	assert.False(t, Matches(&neg, models.DefaultFilterConfig()))
}

func TestResultMessage(t *testing.T) {
	cfg := models.FilterConfig{TextQuery: "Asha"}
	assert.Equal(t, `Showing results for "Asha"`, ResultMessage(cfg, 2))
	assert.Equal(t, `No photographers found for "Asha"`, ResultMessage(cfg, 0))
}
