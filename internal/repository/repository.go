package repository

import (
	"context"
	"errors"

	"hostelhub/internal/model"
)

// ErrDuplicate is returned when an insert collides with an existing key
var ErrDuplicate = errors.New("duplicate record")

// Repository is the persistence boundary of the marketplace.
// Get methods return (nil, nil) when the record does not exist.
type Repository interface {
	ListListings(ctx context.Context) ([]model.Listing, error)
	GetListing(ctx context.Context, id string) (*model.Listing, error)
	CreateListing(ctx context.Context, listing *model.Listing) error
	UpdateListing(ctx context.Context, listing *model.Listing) error
	// ModifyListing loads a listing, applies fn and stores the result as one
	// atomic step. Nothing is written when fn fails. It returns (nil, nil)
	// when the listing does not exist.
	ModifyListing(ctx context.Context, id string, fn func(*model.Listing) error) (*model.Listing, error)

	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)

	CreateBooking(ctx context.Context, booking *model.Booking) error
	GetBooking(ctx context.Context, id string) (*model.Booking, error)
	UpdateBooking(ctx context.Context, booking *model.Booking) error
	ListBookings(ctx context.Context) ([]model.Booking, error)

	// CreateReview returns ErrDuplicate when the user already reviewed the listing
	CreateReview(ctx context.Context, review *model.Review) error
	GetReview(ctx context.Context, id string) (*model.Review, error)
	DeleteReview(ctx context.Context, id string) error
	// ListReviews returns a listing's reviews, newest first
	ListReviews(ctx context.Context, listingID string) ([]model.Review, error)
	// ToggleHelpful flips the user's helpful mark on a review and reports
	// whether the review is now marked
	ToggleHelpful(ctx context.Context, reviewID, userID string) (bool, error)

	Close() error
}

// WishlistStore keeps the set of saved listings per user
type WishlistStore interface {
	Add(ctx context.Context, userID, listingID string) error
	Remove(ctx context.Context, userID, listingID string) error
	List(ctx context.Context, userID string) ([]string, error)
	Close() error
}
