package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"hostelhub/internal/model"
)

// MemoryRepository keeps all records in process memory.
// It is safe for concurrent use and hands out copies, never its own records.
type MemoryRepository struct {
	mu       sync.RWMutex
	listings []model.Listing // insertion order
	users    map[string]model.User
	bookings []model.Booking
	reviews  []model.Review
	helpful  map[string]map[string]bool // review ID -> user IDs
}

// NewMemoryRepository creates an empty repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:   make(map[string]model.User),
		helpful: make(map[string]map[string]bool),
	}
}

// NewSeededMemoryRepository creates a repository preloaded with seed data
func NewSeededMemoryRepository(seed *Seed) *MemoryRepository {
	r := NewMemoryRepository()
	for _, l := range seed.Listings {
		r.listings = append(r.listings, l.Clone())
	}
	for _, u := range seed.Users {
		r.users[u.ID] = u
	}
	return r
}

// Close is a no-op
func (r *MemoryRepository) Close() error {
	return nil
}

// ListListings returns every listing in insertion order
func (r *MemoryRepository) ListListings(ctx context.Context) ([]model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Listing, len(r.listings))
	for i, l := range r.listings {
		out[i] = l.Clone()
	}
	return out, nil
}

// GetListing retrieves a listing by its ID
func (r *MemoryRepository) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.listingIndex(id); i >= 0 {
		l := r.listings[i].Clone()
		return &l, nil
	}
	return nil, nil
}

// CreateListing stores a new listing
func (r *MemoryRepository) CreateListing(ctx context.Context, listing *model.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listingIndex(listing.ID) >= 0 {
		return fmt.Errorf("listing %s: %w", listing.ID, ErrDuplicate)
	}
	r.listings = append(r.listings, listing.Clone())
	return nil
}

// UpdateListing replaces a stored listing
func (r *MemoryRepository) UpdateListing(ctx context.Context, listing *model.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.listingIndex(listing.ID)
	if i < 0 {
		return fmt.Errorf("listing %s does not exist", listing.ID)
	}
	r.listings[i] = listing.Clone()
	return nil
}

// ModifyListing applies fn to a copy of the listing and stores it when fn succeeds
func (r *MemoryRepository) ModifyListing(ctx context.Context, id string, fn func(*model.Listing) error) (*model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.listingIndex(id)
	if i < 0 {
		return nil, nil
	}
	l := r.listings[i].Clone()
	if err := fn(&l); err != nil {
		return nil, err
	}
	r.listings[i] = l.Clone()
	return &l, nil
}

func (r *MemoryRepository) listingIndex(id string) int {
	for i := range r.listings {
		if r.listings[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateUser stores a new user. Emails are unique, ignoring case.
func (r *MemoryRepository) CreateUser(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; ok {
		return fmt.Errorf("user %s: %w", user.ID, ErrDuplicate)
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("email %s: %w", user.Email, ErrDuplicate)
		}
	}
	r.users[user.ID] = *user
	return nil
}

// GetUser retrieves a user by ID
func (r *MemoryRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

// GetUserByEmail retrieves a user by email, ignoring case
func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

// ListUsers returns every user ordered by creation time
func (r *MemoryRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// CreateBooking stores a new booking
func (r *MemoryRepository) CreateBooking(ctx context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bookingIndex(booking.ID) >= 0 {
		return fmt.Errorf("booking %s: %w", booking.ID, ErrDuplicate)
	}
	r.bookings = append(r.bookings, *booking)
	return nil
}

// GetBooking retrieves a booking by ID
func (r *MemoryRepository) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.bookingIndex(id); i >= 0 {
		b := r.bookings[i]
		return &b, nil
	}
	return nil, nil
}

// UpdateBooking replaces a stored booking
func (r *MemoryRepository) UpdateBooking(ctx context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.bookingIndex(booking.ID)
	if i < 0 {
		return fmt.Errorf("booking %s does not exist", booking.ID)
	}
	r.bookings[i] = *booking
	return nil
}

// ListBookings returns every booking in insertion order
func (r *MemoryRepository) ListBookings(ctx context.Context) ([]model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]model.Booking(nil), r.bookings...), nil
}

func (r *MemoryRepository) bookingIndex(id string) int {
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateReview stores a new review, one per user and listing
func (r *MemoryRepository) CreateReview(ctx context.Context, review *model.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rv := range r.reviews {
		if rv.ID == review.ID || (rv.ListingID == review.ListingID && rv.UserID == review.UserID) {
			return fmt.Errorf("review of listing %s by %s: %w", review.ListingID, review.UserID, ErrDuplicate)
		}
	}
	r.reviews = append(r.reviews, *review)
	return nil
}

// GetReview retrieves a review by ID
func (r *MemoryRepository) GetReview(ctx context.Context, id string) (*model.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.reviewIndex(id); i >= 0 {
		rv := r.reviews[i]
		return &rv, nil
	}
	return nil, nil
}

// DeleteReview removes a review and its helpful marks
func (r *MemoryRepository) DeleteReview(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.reviewIndex(id)
	if i < 0 {
		return fmt.Errorf("review %s does not exist", id)
	}
	r.reviews = append(r.reviews[:i:i], r.reviews[i+1:]...)
	delete(r.helpful, id)
	return nil
}

// ListReviews returns a listing's reviews, newest first
func (r *MemoryRepository) ListReviews(ctx context.Context, listingID string) ([]model.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Review{}
	for _, rv := range r.reviews {
		if rv.ListingID == listingID {
			out = append(out, rv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ToggleHelpful flips userID's helpful mark and keeps the review's count in step
func (r *MemoryRepository) ToggleHelpful(ctx context.Context, reviewID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.reviewIndex(reviewID)
	if i < 0 {
		return false, fmt.Errorf("review %s does not exist", reviewID)
	}

	votes := r.helpful[reviewID]
	if votes == nil {
		votes = make(map[string]bool)
		r.helpful[reviewID] = votes
	}
	marked := !votes[userID]
	if marked {
		votes[userID] = true
	} else {
		delete(votes, userID)
	}
	r.reviews[i].HelpfulCount = len(votes)
	return marked, nil
}

func (r *MemoryRepository) reviewIndex(id string) int {
	for i := range r.reviews {
		if r.reviews[i].ID == id {
			return i
		}
	}
	return -1
}

// MemoryWishlist is an in-process WishlistStore
type MemoryWishlist struct {
	mu    sync.RWMutex
	items map[string][]string
}

// NewMemoryWishlist creates an empty wishlist store
func NewMemoryWishlist() *MemoryWishlist {
	return &MemoryWishlist{items: make(map[string][]string)}
}

// Add saves a listing for a user. Adding twice is a no-op.
func (w *MemoryWishlist) Add(ctx context.Context, userID, listingID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, id := range w.items[userID] {
		if id == listingID {
			return nil
		}
	}
	w.items[userID] = append(w.items[userID], listingID)
	return nil
}

// Remove drops a listing from a user's wishlist
func (w *MemoryWishlist) Remove(ctx context.Context, userID, listingID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	ids := w.items[userID]
	for i, id := range ids {
		if id == listingID {
			w.items[userID] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// List returns a user's saved listing IDs in the order they were added
func (w *MemoryWishlist) List(ctx context.Context, userID string) ([]string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return append([]string{}, w.items[userID]...), nil
}

// Close is a no-op
func (w *MemoryWishlist) Close() error {
	return nil
}
