package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"hostelhub/internal/model"
	"hostelhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServiceFeeRate is the platform fee charged on top of the rent
const ServiceFeeRate = 0.025

// bookingTransitions lists the statuses each status may move to
var bookingTransitions = map[model.BookingStatus][]model.BookingStatus{
	model.BookingPending:   {model.BookingConfirmed, model.BookingRejected, model.BookingCancelled},
	model.BookingConfirmed: {model.BookingCancelled},
}

// availabilityDelta is the change in free rooms when a booking moves between statuses
var availabilityDelta = map[[2]model.BookingStatus]int{
	{model.BookingPending, model.BookingConfirmed}:   -1,
	{model.BookingConfirmed, model.BookingCancelled}: 1,
}

// BookingService quotes, creates and moves bookings through their lifecycle
type BookingService struct {
	repo      repository.Repository
	validator *Validator
	logger    *zap.Logger
	now       func() time.Time

	// mu serialises status changes so two requests cannot move the same
	// booking at once. Room counts are guarded by ModifyListing.
	mu sync.Mutex
}

// NewBookingService creates a new booking service
func NewBookingService(repo repository.Repository, validator *Validator, logger *zap.Logger) *BookingService {
	return &BookingService{
		repo:      repo,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// QuoteFor prices months of the given room of a listing
func QuoteFor(listing *model.Listing, room *model.RoomType, months int) model.BookingQuote {
	amount := room.Price * float64(months)
	fee := math.Round(amount * ServiceFeeRate)
	return model.BookingQuote{
		ListingID:   listing.ID,
		RoomTypeID:  room.ID,
		RoomType:    room.Type,
		Months:      months,
		Amount:      amount,
		ServiceFee:  fee,
		TotalAmount: amount + fee,
	}
}

// Quote prices a booking request without storing it. The student is optional.
func (s *BookingService) Quote(ctx context.Context, req model.BookingRequest) (*model.BookingQuote, error) {
	errs := s.validator.Booking(req)
	delete(errs, "student_id")
	if err := asValidationError(errs); err != nil {
		return nil, err
	}

	listing, room, err := s.lookupRoom(ctx, req.ListingID, req.RoomTypeID)
	if err != nil {
		return nil, err
	}

	quote := QuoteFor(listing, room, req.Months)
	return &quote, nil
}

// Create stores a pending booking for a room that still has availability
func (s *BookingService) Create(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	if err := asValidationError(s.validator.Booking(req)); err != nil {
		return nil, err
	}
	if err := requireRole(ctx, s.repo, req.StudentID, model.RoleStudent); err != nil {
		return nil, err
	}

	listing, room, err := s.lookupRoom(ctx, req.ListingID, req.RoomTypeID)
	if err != nil {
		return nil, err
	}
	if !listing.Available || room.Available <= 0 {
		return nil, fmt.Errorf("room %s of listing %s: %w", room.ID, listing.ID, ErrUnavailable)
	}

	quote := QuoteFor(listing, room, req.Months)
	now := s.now()
	booking := &model.Booking{
		ID:          uuid.NewString(),
		ListingID:   listing.ID,
		StudentID:   req.StudentID,
		RoomTypeID:  room.ID,
		RoomType:    room.Type,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Months:      req.Months,
		Amount:      quote.Amount,
		ServiceFee:  quote.ServiceFee,
		TotalAmount: quote.TotalAmount,
		Status:      model.BookingPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("listing_id", booking.ListingID),
		zap.String("student_id", booking.StudentID),
		zap.Float64("total_amount", booking.TotalAmount),
	)
	return booking, nil
}

// UpdateStatus moves a booking to status and adjusts room availability
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	if !canTransition(booking.Status, status) {
		return nil, fmt.Errorf("booking %s cannot move from %s to %s: %w", id, booking.Status, status, ErrInvalidTransition)
	}

	delta := availabilityDelta[[2]model.BookingStatus{booking.Status, status}]
	if delta != 0 {
		if err := s.adjustAvailability(ctx, booking, delta); err != nil {
			return nil, err
		}
	}

	from := booking.Status
	booking.Status = status
	booking.UpdatedAt = s.now()
	if err := s.repo.UpdateBooking(ctx, booking); err != nil {
		if delta != 0 {
			if undoErr := s.adjustAvailability(ctx, booking, -delta); undoErr != nil {
				s.logger.Error("failed to restore room availability",
					zap.String("booking_id", id),
					zap.Int("delta", -delta),
					zap.Error(undoErr),
				)
			}
		}
		return nil, err
	}

	s.logger.Info("booking status changed",
		zap.String("booking_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(status)),
	)
	return booking, nil
}

func canTransition(from, to model.BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// adjustAvailability changes the free rooms of the booking's room type by
// delta, capped at the room's total, in one atomic listing update
func (s *BookingService) adjustAvailability(ctx context.Context, booking *model.Booking, delta int) error {
	listing, err := s.repo.ModifyListing(ctx, booking.ListingID, func(l *model.Listing) error {
		room := l.Room(booking.RoomTypeID)
		if room == nil {
			return fmt.Errorf("room type %s of listing %s: %w", booking.RoomTypeID, l.ID, ErrNotFound)
		}

		next := room.Available + delta
		if next < 0 {
			return fmt.Errorf("room %s of listing %s: %w", room.ID, l.ID, ErrUnavailable)
		}
		if next > room.Total {
			next = room.Total
		}
		room.Available = next
		l.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return err
	}
	if listing == nil {
		return fmt.Errorf("listing %s: %w", booking.ListingID, ErrNotFound)
	}
	return nil
}

// lookupRoom loads a listing and points at one of its room types
func (s *BookingService) lookupRoom(ctx context.Context, listingID, roomID string) (*model.Listing, *model.RoomType, error) {
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, nil, err
	}
	if listing == nil {
		return nil, nil, fmt.Errorf("listing %s: %w", listingID, ErrNotFound)
	}
	room := listing.Room(roomID)
	if room == nil {
		return nil, nil, fmt.Errorf("room type %s of listing %s: %w", roomID, listingID, ErrNotFound)
	}
	return listing, room, nil
}
