package service

import (
	"context"
	"errors"
	"testing"

	"hostelhub/internal/model"
	"hostelhub/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// services bundles the services built over one seeded memory store
type services struct {
	repo      *repository.MemoryRepository
	listings  *ListingService
	signup    *SignupService
	bookings  *BookingService
	reviews   *ReviewService
	wishlist  *WishlistService
	dashboard *DashboardService
}

func newServices(t *testing.T) *services {
	t.Helper()

	seed, err := repository.LoadSeed("")
	require.NoError(t, err)

	repo := repository.NewSeededMemoryRepository(seed)
	logger := zap.NewNop()
	validator := NewValidator(nil)
	wishlist := NewWishlistService(repo, repository.NewMemoryWishlist())

	return &services{
		repo:      repo,
		listings:  NewListingService(repo, NewFilter(nil), validator, logger, 20, 100),
		signup:    NewSignupService(repo, validator, logger),
		bookings:  NewBookingService(repo, validator, logger),
		reviews:   NewReviewService(repo, validator, logger),
		wishlist:  wishlist,
		dashboard: NewDashboardService(repo, wishlist),
	}
}

var errStoreDown = errors.New("store unavailable")

// flakyRepo wraps the memory store and fails the writes that are switched on
type flakyRepo struct {
	*repository.MemoryRepository
	failBookingUpdate bool
	failListingModify bool
}

func (r *flakyRepo) UpdateBooking(ctx context.Context, booking *model.Booking) error {
	if r.failBookingUpdate {
		return errStoreDown
	}
	return r.MemoryRepository.UpdateBooking(ctx, booking)
}

func (r *flakyRepo) ModifyListing(ctx context.Context, id string, fn func(*model.Listing) error) (*model.Listing, error) {
	if r.failListingModify {
		return nil, errStoreDown
	}
	return r.MemoryRepository.ModifyListing(ctx, id, fn)
}
