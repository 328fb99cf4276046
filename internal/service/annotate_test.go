package service

import (
	"testing"

	"hostelhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotator_Annotate(t *testing.T) {
	a := NewAnnotator()

	listings := []model.Listing{
		{ID: "a", University: "Kenyatta University", Rating: 4.8, Verified: true,
			RoomTypes: model.RoomTypes{{Available: 2}, {Available: 1}}},
		{ID: "b", Rating: 3.9},
	}

	tests := []struct {
		name     string
		criteria model.Criteria
		want     [][]string
	}{
		{
			name:     "no criteria",
			criteria: model.Criteria{},
			want: [][]string{
				{ReasonHighlyRated, ReasonVerified, "Rooms available (3)"},
				{ReasonGeneralMatch},
			},
		},
		{
			name: "every criterion",
			criteria: model.Criteria{
				Query:      "hostel",
				University: ptr("Kenyatta University"),
				Region:     ptr(" Nairobi "),
				PriceMax:   ptr(20000.0),
				Amenities:  []string{"wifi"},
			},
			want: [][]string{
				{ReasonQueryMatch, "Near Kenyatta University", "In Nairobi", ReasonPriceMatch, ReasonAmenities,
					ReasonHighlyRated, ReasonVerified, "Rooms available (3)"},
				{ReasonQueryMatch, "In Nairobi", ReasonPriceMatch, ReasonAmenities},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := a.Annotate(listings, tt.criteria)
			require.Len(t, results, len(listings))
			for i, r := range results {
				assert.Equal(t, listings[i].ID, r.ID, "order is kept")
				assert.Equal(t, tt.want[i], r.MatchedReasons)
			}
		})
	}
}
