package service

import (
	"context"
	"errors"
	"testing"

	"hostelhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultIDs(results []model.ListingSearchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.ID)
	}
	return out
}

func TestListingService_Search(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	resp, err := s.listings.Search(ctx, model.SearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "3", "2", "1"}, resultIDs(resp.Results))
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	assert.False(t, resp.HasMore)
	assert.Contains(t, resp.Amenities, "WiFi")

	resp, err = s.listings.Search(ctx, model.SearchRequest{
		PriceMin:  "14000",
		PriceMax:  "20000",
		Amenities: []string{"WiFi"},
		Sort:      "price-low",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "4"}, resultIDs(resp.Results))
	assert.Equal(t, 3, resp.ActiveFilters)
	assert.Contains(t, resp.Results[0].MatchedReasons, ReasonPriceMatch)
}

func TestListingService_SearchPagination(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	tests := []struct {
		name         string
		page, size   int
		wantIDs      []string
		wantPageSize int
		wantMore     bool
	}{
		{"first page", 1, 3, []string{"4", "3", "2"}, 3, true},
		{"second page", 2, 3, []string{"1"}, 3, false},
		{"past the end", 5, 3, []string{}, 3, false},
		{"page size capped", 0, 500, []string{"4", "3", "2", "1"}, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.listings.Search(ctx, model.SearchRequest{Page: tt.page, PageSize: tt.size})
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, resultIDs(resp.Results))
			assert.Equal(t, tt.wantPageSize, resp.PageSize)
			assert.Equal(t, tt.wantMore, resp.HasMore)
			assert.Equal(t, 4, resp.Total)
		})
	}
}

func TestListingService_SearchSkipsUnavailable(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	l, err := s.repo.GetListing(ctx, "2")
	require.NoError(t, err)
	l.Available = false
	require.NoError(t, s.repo.UpdateListing(ctx, l))

	resp, err := s.listings.Search(ctx, model.SearchRequest{})
	require.NoError(t, err)
	assert.NotContains(t, resultIDs(resp.Results), "2")
}

func listingForm() model.ListingForm {
	return model.ListingForm{
		Name:        "Baraka Hostel",
		Description: "Quiet rooms five minutes from the main gate",
		Price:       "9,500",
		Location:    "Near Moi University",
		University:  "Moi University",
		Amenities:   []string{"wifi", "Water"},
		Images:      []string{"https://example.com/baraka.jpg"},
		RoomTypes: []model.RoomForm{
			{Type: "Shared Room", Price: "9500", Total: "6", Features: []string{"Bunk bed"}},
		},
		LandlordID: "2",
	}
}

func TestListingService_CreateAndUpdate(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	created, err := s.listings.CreateListing(ctx, listingForm())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 9500.0, created.Price)
	assert.Equal(t, model.Tags{"WiFi", "Water"}, created.Amenities)
	assert.Equal(t, model.StatusPendingSubmission, created.VerificationStatus)
	assert.False(t, created.Verified)
	require.Len(t, created.RoomTypes, 1)
	assert.Equal(t, 6, created.RoomTypes[0].Available)

	// one room booked
	stored, err := s.repo.GetListing(ctx, created.ID)
	require.NoError(t, err)
	stored.RoomTypes[0].Available = 5
	require.NoError(t, s.repo.UpdateListing(ctx, stored))

	form := listingForm()
	form.Name = "Baraka Hostel II"
	form.RoomTypes[0].ID = created.RoomTypes[0].ID
	form.RoomTypes[0].Total = "10"

	updated, err := s.listings.UpdateListing(ctx, created.ID, form)
	require.NoError(t, err)
	assert.Equal(t, "Baraka Hostel II", updated.Name)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 9, updated.RoomTypes[0].Available, "booked rooms stay booked")

	form.LandlordID = "3"
	_, err = s.listings.UpdateListing(ctx, created.ID, form)
	assert.True(t, errors.Is(err, ErrForbidden))

	form.LandlordID = ""
	_, err = s.listings.UpdateListing(ctx, created.ID, form)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "edits must name the owning landlord")
	assert.Equal(t, []string{"landlord_id"}, keys(verr.Fields))

	form.LandlordID = "2"
	_, err = s.listings.UpdateListing(ctx, "missing", form)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListingService_CreateRejects(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	form := listingForm()
	form.Price = "free"
	form.LandlordID = ""
	_, err := s.listings.CreateListing(ctx, form)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "price")
	assert.Contains(t, verr.Fields, "landlord_id")

	form = listingForm()
	form.LandlordID = "1"
	_, err = s.listings.CreateListing(ctx, form)
	assert.True(t, errors.Is(err, ErrForbidden), "students cannot list hostels")

	_, err = s.listings.GetListing(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListingService_Verification(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	created, err := s.listings.CreateListing(ctx, listingForm())
	require.NoError(t, err)

	_, err = s.listings.SubmitVerification(ctx, created.ID, model.VerificationReport{AgentID: "5", Status: model.StatusVerified})
	assert.True(t, errors.Is(err, ErrInvalidTransition), "no agent assigned yet")

	_, err = s.listings.AssignAgent(ctx, created.ID, "2")
	assert.True(t, errors.Is(err, ErrForbidden), "landlords are not agents")

	assigned, err := s.listings.AssignAgent(ctx, created.ID, "5")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingReview, assigned.VerificationStatus)

	_, err = s.listings.SubmitVerification(ctx, created.ID, model.VerificationReport{AgentID: "6", Status: model.StatusVerified})
	assert.True(t, errors.Is(err, ErrForbidden))

	_, err = s.listings.SubmitVerification(ctx, created.ID, model.VerificationReport{AgentID: "5", Status: "approved"})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	verified, err := s.listings.SubmitVerification(ctx, created.ID, model.VerificationReport{AgentID: "5", Status: model.StatusVerified})
	require.NoError(t, err)
	assert.True(t, verified.Verified)
	assert.Equal(t, model.StatusVerified, verified.VerificationStatus)

	_, err = s.listings.AssignAgent(ctx, created.ID, "5")
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}
