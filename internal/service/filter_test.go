package service

import (
	"math"
	"testing"
	"time"

	"hostelhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func fixtureListings() []model.Listing {
	return []model.Listing{
		{ID: "a", Name: "Umoja Hostels", Price: 15000, Location: "Near University of Nairobi",
			University: "University of Nairobi", Amenities: model.Tags{"WiFi", "Laundry"},
			Rating: 4.7, CreatedAt: base},
		{ID: "b", Name: "Kilele Hostels", Price: 12000, Location: "Near Kenyatta University",
			University: "Kenyatta University", Amenities: model.Tags{"wifi", "Gym"},
			Rating: 4.5, CreatedAt: base.Add(24 * time.Hour)},
		{ID: "c", Name: "prestige Hostels", Price: 18000, Location: "Thika Road",
			University: "Mount Kenya University", Amenities: model.Tags{"Wi-Fi", "Swimming Pool"},
			Rating: 4.8, CreatedAt: base.Add(48 * time.Hour)},
		{ID: "d", Name: "Greenview Apartments", Price: 20000, Location: "Near JKUAT",
			University: "JKUAT", Amenities: model.Tags{"Garden", "Parking"},
			Rating: 4.5, CreatedAt: base.Add(72 * time.Hour)},
	}
}

func ids(listings []model.Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func TestFilterAndSort_PriceAndAmenity(t *testing.T) {
	c := model.Criteria{
		PriceMin:  ptr(14000.0),
		PriceMax:  ptr(20000.0),
		Amenities: []string{"WiFi"},
		Sort:      model.SortPriceAsc,
	}

	got := FilterAndSort(fixtureListings(), c)
	assert.Equal(t, []string{"a", "c"}, ids(got))
}

func TestFilterAndSort_Criteria(t *testing.T) {
	tests := []struct {
		name     string
		criteria model.Criteria
		want     []string
	}{
		{
			name:     "no constraints keeps everything newest first",
			criteria: model.Criteria{},
			want:     []string{"d", "c", "b", "a"},
		},
		{
			name:     "query matches name case-insensitively",
			criteria: model.Criteria{Query: "KILELE"},
			want:     []string{"b"},
		},
		{
			name:     "query matches location",
			criteria: model.Criteria{Query: "thika road"},
			want:     []string{"c"},
		},
		{
			name:     "university is an exact match ignoring case",
			criteria: model.Criteria{University: ptr("kenyatta university")},
			want:     []string{"b"},
		},
		{
			name:     "region resolves through the university town",
			criteria: model.Criteria{Region: ptr("Thika")},
			want:     []string{"c"},
		},
		{
			name:     "region falls back to the location text",
			criteria: model.Criteria{Region: ptr("jkuat")},
			want:     []string{"d"},
		},
		{
			name:     "bounds are inclusive",
			criteria: model.Criteria{PriceMin: ptr(12000.0), PriceMax: ptr(15000.0)},
			want:     []string{"b", "a"},
		},
		{
			name:     "amenity aliases are canonicalised",
			criteria: model.Criteria{Amenities: []string{"pool", "wifi"}},
			want:     []string{"c"},
		},
		{
			name:     "blank university is no constraint",
			criteria: model.Criteria{University: ptr("  ")},
			want:     []string{"d", "c", "b", "a"},
		},
		{
			name:     "empty bound window",
			criteria: model.Criteria{PriceMin: ptr(30000.0)},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAndSort(fixtureListings(), tt.criteria)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterAndSort_SortKeys(t *testing.T) {
	tests := []struct {
		sort string
		want []string
	}{
		{"price-low", []string{"b", "a", "c", "d"}},
		{"price-asc", []string{"b", "a", "c", "d"}},
		{"price-high", []string{"d", "c", "a", "b"}},
		{"rating", []string{"c", "a", "b", "d"}},
		{"name", []string{"d", "b", "c", "a"}},
		{"newest", []string{"d", "c", "b", "a"}},
		{"bogus", []string{"d", "c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			got := FilterAndSort(fixtureListings(), model.Criteria{Sort: model.ParseSortKey(tt.sort)})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterAndSort_StableAndIdempotent(t *testing.T) {
	listings := fixtureListings()
	for i := range listings {
		listings[i].Price = 10000
	}

	c := model.Criteria{Sort: model.SortPriceAsc}
	once := FilterAndSort(listings, c)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(once), "equal keys keep input order")

	twice := FilterAndSort(once, c)
	assert.Equal(t, ids(once), ids(twice))
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	listings := fixtureListings()
	before := ids(listings)

	_ = FilterAndSort(listings, model.Criteria{Sort: model.SortPriceDesc})
	assert.Equal(t, before, ids(listings))
}

func TestFilterAndSort_SubsetOfInput(t *testing.T) {
	listings := fixtureListings()
	input := map[string]int{}
	for _, l := range listings {
		input[l.ID]++
	}

	for _, c := range []model.Criteria{
		{},
		{Amenities: []string{"WiFi"}},
		{PriceMax: ptr(16000.0), Sort: model.SortName},
	} {
		seen := map[string]int{}
		for _, l := range FilterAndSort(listings, c) {
			seen[l.ID]++
			assert.LessOrEqual(t, seen[l.ID], input[l.ID])
		}
	}
}

func TestFilterAndSort_Monotonic(t *testing.T) {
	listings := fixtureListings()

	loose := model.Criteria{PriceMax: ptr(20000.0)}
	tighter := []model.Criteria{
		{PriceMax: ptr(16000.0)},
		{PriceMax: ptr(20000.0), PriceMin: ptr(13000.0)},
		{PriceMax: ptr(20000.0), Amenities: []string{"WiFi"}},
		{PriceMax: ptr(20000.0), Query: "hostels"},
		{PriceMax: ptr(20000.0), Region: ptr("Nairobi")},
	}

	n := len(FilterAndSort(listings, loose))
	for _, c := range tighter {
		assert.LessOrEqual(t, len(FilterAndSort(listings, c)), n)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"", nil},
		{"   ", nil},
		{"15000", ptr(15000.0)},
		{"15,000", ptr(15000.0)},
		{" 12.5 ", ptr(12.5)},
		{"abc", nil},
		{"-5", nil},
		{"NaN", nil},
		{"Inf", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParsePrice(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.False(t, math.IsNaN(*got))
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestCriteriaFromRequest(t *testing.T) {
	c := CriteriaFromRequest(model.SearchRequest{
		Query:     "  umoja ",
		Region:    "Nairobi",
		PriceMin:  "abc",
		PriceMax:  "20,000",
		Amenities: []string{"wifi, Gym", "WiFi"},
		Sort:      "price-high",
	})

	assert.Equal(t, "umoja", c.Query)
	assert.Nil(t, c.University)
	require.NotNil(t, c.Region)
	assert.Equal(t, "Nairobi", *c.Region)
	assert.Nil(t, c.PriceMin, "malformed bound is no constraint")
	require.NotNil(t, c.PriceMax)
	assert.Equal(t, 20000.0, *c.PriceMax)
	assert.Equal(t, []string{"WiFi", "Gym"}, c.Amenities)
	assert.Equal(t, model.SortPriceDesc, c.Sort)
	assert.Equal(t, 4, c.ActiveFilters())
}

func TestCollectAmenities(t *testing.T) {
	got := CollectAmenities(fixtureListings())
	assert.Equal(t, []string{"Garden", "Gym", "Laundry", "Parking", "Swimming Pool", "WiFi"}, got)
}
