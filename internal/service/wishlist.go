package service

import (
	"context"
	"fmt"

	"hostelhub/internal/model"
	"hostelhub/internal/repository"
)

// WishlistService manages the listings a user has saved
type WishlistService struct {
	repo  repository.Repository
	store repository.WishlistStore
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(repo repository.Repository, store repository.WishlistStore) *WishlistService {
	return &WishlistService{repo: repo, store: store}
}

// Add saves a listing for a user. Saving the same listing twice is a no-op.
func (s *WishlistService) Add(ctx context.Context, userID, listingID string) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return err
	}
	if listing == nil {
		return fmt.Errorf("listing %s: %w", listingID, ErrNotFound)
	}
	return s.store.Add(ctx, userID, listingID)
}

// Remove drops a listing from a user's wishlist
func (s *WishlistService) Remove(ctx context.Context, userID, listingID string) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	return s.store.Remove(ctx, userID, listingID)
}

// List returns the saved listings in the order they were saved.
// Listings that no longer exist are skipped.
func (s *WishlistService) List(ctx context.Context, userID string) ([]model.Listing, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	listings := make([]model.Listing, 0, len(ids))
	for _, id := range ids {
		listing, err := s.repo.GetListing(ctx, id)
		if err != nil {
			return nil, err
		}
		if listing != nil {
			listings = append(listings, *listing)
		}
	}
	return listings, nil
}

// Contains reports whether a user saved a listing
func (s *WishlistService) Contains(ctx context.Context, userID, listingID string) (bool, error) {
	ids, err := s.store.List(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == listingID {
			return true, nil
		}
	}
	return false, nil
}

// Count returns the number of saved listings
func (s *WishlistService) Count(ctx context.Context, userID string) (int, error) {
	ids, err := s.store.List(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (s *WishlistService) requireUser(ctx context.Context, userID string) error {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %q: %w", userID, ErrNotFound)
	}
	return nil
}
