package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"hostelhub/internal/model"
	"hostelhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewService stores student reviews and keeps each listing's rating and
// review count in step with them
type ReviewService struct {
	repo      repository.Repository
	validator *Validator
	logger    *zap.Logger
	now       func() time.Time
}

// NewReviewService creates a new review service
func NewReviewService(repo repository.Repository, validator *Validator, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		repo:      repo,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns the reviews of a listing, newest first
func (s *ReviewService) List(ctx context.Context, listingID string) ([]model.Review, error) {
	if err := s.requireListing(ctx, listingID); err != nil {
		return nil, err
	}
	return s.repo.ListReviews(ctx, listingID)
}

// Create stores a student's review and folds its rating into the listing
func (s *ReviewService) Create(ctx context.Context, listingID string, req model.ReviewRequest) (*model.Review, error) {
	if err := asValidationError(s.validator.Review(req)); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", req.UserID, ErrNotFound)
	}
	if user.Role != model.RoleStudent {
		return nil, fmt.Errorf("user %s is a %s, only students review hostels: %w", user.ID, user.Role, ErrForbidden)
	}
	if err := s.requireListing(ctx, listingID); err != nil {
		return nil, err
	}

	now := s.now()
	review := &model.Review{
		ID:        uuid.NewString(),
		ListingID: listingID,
		UserID:    user.ID,
		UserName:  user.Name,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("user %s on listing %s: %w", user.ID, listingID, ErrAlreadyReviewed)
		}
		return nil, err
	}

	if err := s.addRating(ctx, listingID, review.Rating); err != nil {
		if delErr := s.repo.DeleteReview(ctx, review.ID); delErr != nil {
			s.logger.Error("failed to remove review after rating update failed",
				zap.String("review_id", review.ID),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	s.logger.Info("review created",
		zap.String("review_id", review.ID),
		zap.String("listing_id", listingID),
		zap.String("user_id", user.ID),
		zap.Int("rating", review.Rating),
	)
	return review, nil
}

// addRating moves the listing's average towards rating and counts one more review
func (s *ReviewService) addRating(ctx context.Context, listingID string, rating int) error {
	listing, err := s.repo.ModifyListing(ctx, listingID, func(l *model.Listing) error {
		l.Rating = averageWith(l.Rating, l.Reviews, rating)
		l.Reviews++
		l.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return err
	}
	if listing == nil {
		return fmt.Errorf("listing %s: %w", listingID, ErrNotFound)
	}
	return nil
}

// averageWith returns the mean of count ratings averaging avg plus one more,
// rounded to two decimals
func averageWith(avg float64, count, rating int) float64 {
	if count < 0 {
		count = 0
	}
	total := avg*float64(count) + float64(rating)
	return math.Round(total/float64(count+1)*100) / 100
}

// ToggleHelpful marks a review as helpful for userID, or removes the mark
// when it is already there. It returns the updated review and whether it is
// now marked.
func (s *ReviewService) ToggleHelpful(ctx context.Context, reviewID, userID string) (*model.Review, bool, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, fmt.Errorf("user %q: %w", userID, ErrNotFound)
	}

	review, err := s.repo.GetReview(ctx, reviewID)
	if err != nil {
		return nil, false, err
	}
	if review == nil {
		return nil, false, fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
	}

	marked, err := s.repo.ToggleHelpful(ctx, reviewID, userID)
	if err != nil {
		return nil, false, err
	}

	review, err = s.repo.GetReview(ctx, reviewID)
	if err != nil {
		return nil, false, err
	}
	if review == nil {
		return nil, false, fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
	}
	return review, marked, nil
}

func (s *ReviewService) requireListing(ctx context.Context, listingID string) error {
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return err
	}
	if listing == nil {
		return fmt.Errorf("listing %s: %w", listingID, ErrNotFound)
	}
	return nil
}
