package service

import (
	"context"
	"errors"
	"testing"

	"hostelhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistService(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	require.NoError(t, s.wishlist.Add(ctx, "1", "3"))
	require.NoError(t, s.wishlist.Add(ctx, "1", "1"))
	require.NoError(t, s.wishlist.Add(ctx, "1", "3"))

	listings, err := s.wishlist.List(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1"}, ids(listings))

	ok, err := s.wishlist.Contains(ctx, "1", "1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.wishlist.Remove(ctx, "1", "1"))
	ok, err = s.wishlist.Contains(ctx, "1", "1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, errors.Is(s.wishlist.Add(ctx, "1", "missing"), ErrNotFound))
	assert.True(t, errors.Is(s.wishlist.Add(ctx, "ghost", "1"), ErrNotFound))
}

func TestDashboardService_Stats(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	booking, err := s.bookings.Create(ctx, model.BookingRequest{ListingID: "1", RoomTypeID: "1", StudentID: "1", Months: 4})
	require.NoError(t, err)
	_, err = s.bookings.Create(ctx, model.BookingRequest{ListingID: "2", RoomTypeID: "1", StudentID: "1", Months: 1})
	require.NoError(t, err)
	_, err = s.bookings.UpdateStatus(ctx, booking.ID, model.BookingConfirmed)
	require.NoError(t, err)
	require.NoError(t, s.wishlist.Add(ctx, "1", "4"))

	l, err := s.repo.GetListing(ctx, "4")
	require.NoError(t, err)
	l.Verified = false
	l.VerificationStatus = model.StatusPendingSubmission
	require.NoError(t, s.repo.UpdateListing(ctx, l))
	_, err = s.listings.AssignAgent(ctx, "4", "5")
	require.NoError(t, err)

	tests := []struct {
		userID string
		want   model.DashboardStats
	}{
		{
			userID: "1",
			want: model.DashboardStats{
				"bookings":         2,
				"pending_bookings": 1,
				"wishlist":         1,
			},
		},
		{
			// owns listings 1 and 4: 20+15+10 rooms, 4+8+4 free after the confirmation
			userID: "2",
			want: model.DashboardStats{
				"properties":        2,
				"total_rooms":       45,
				"available_rooms":   16,
				"occupancy_rate":    64.4,
				"bookings_received": 1,
			},
		},
		{
			userID: "5",
			want: model.DashboardStats{
				"assigned":        1,
				"awaiting_review": 1,
				"verified":        0,
			},
		},
		{
			userID: "6",
			want: model.DashboardStats{
				"listings":          4,
				"verified_listings": 3,
				"users": map[string]int{
					"student": 1, "landlord": 3, "agent": 1, "admin": 1,
				},
				"bookings": 2,
				"revenue":  61500.0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.userID, func(t *testing.T) {
			d, err := s.dashboard.ForUser(ctx, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.userID, d.UserID)
			assert.Equal(t, tt.want, d.Stats)
		})
	}
}

func TestDashboardService_UnknownRole(t *testing.T) {
	s := newServices(t)

	stats, err := s.dashboard.Stats(context.Background(), &model.User{ID: "x", Role: "wizard"})
	require.NoError(t, err)
	assert.Empty(t, stats)

	_, err = s.dashboard.ForUser(context.Background(), "ghost")
	assert.True(t, errors.Is(err, ErrNotFound))
}
