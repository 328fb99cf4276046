package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"hostelhub/internal/model"
	"hostelhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestQuoteFor(t *testing.T) {
	listing := &model.Listing{ID: "1"}
	tests := []struct {
		name      string
		price     float64
		months    int
		wantFee   float64
		wantTotal float64
	}{
		{"four months", 15000, 4, 1500, 61500},
		{"fee rounds to nearest", 9999, 1, 250, 10249},
		{"single month", 10000, 1, 250, 10250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuoteFor(listing, &model.RoomType{ID: "r", Price: tt.price}, tt.months)
			assert.Equal(t, tt.price*float64(tt.months), q.Amount)
			assert.Equal(t, tt.wantFee, q.ServiceFee)
			assert.Equal(t, tt.wantTotal, q.TotalAmount)
		})
	}
}

func TestBookingService_Quote(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	q, err := s.bookings.Quote(ctx, model.BookingRequest{ListingID: "1", RoomTypeID: "2", Months: 3})
	require.NoError(t, err)
	assert.Equal(t, "Shared Room", q.RoomType)
	assert.Equal(t, 30000.0, q.Amount)
	assert.Equal(t, 750.0, q.ServiceFee)

	_, err = s.bookings.Quote(ctx, model.BookingRequest{ListingID: "1", RoomTypeID: "9", Months: 3})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.bookings.Quote(ctx, model.BookingRequest{ListingID: "1", RoomTypeID: "1"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"months"}, keys(verr.Fields))
}

func TestBookingService_Lifecycle(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	req := model.BookingRequest{ListingID: "1", RoomTypeID: "1", StudentID: "1", Months: 4}
	booking, err := s.bookings.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, model.BookingPending, booking.Status)
	assert.Equal(t, 61500.0, booking.TotalAmount)

	available := func() int {
		l, err := s.repo.GetListing(ctx, "1")
		require.NoError(t, err)
		return l.Room("1").Available
	}
	assert.Equal(t, 5, available(), "pending bookings hold no room")

	confirmed, err := s.bookings.UpdateStatus(ctx, booking.ID, model.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, confirmed.Status)
	assert.Equal(t, 4, available())

	_, err = s.bookings.UpdateStatus(ctx, booking.ID, model.BookingRejected)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	_, err = s.bookings.UpdateStatus(ctx, booking.ID, model.BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, 5, available())

	_, err = s.bookings.UpdateStatus(ctx, booking.ID, model.BookingConfirmed)
	assert.True(t, errors.Is(err, ErrInvalidTransition), "cancelled is final")

	_, err = s.bookings.UpdateStatus(ctx, "missing", model.BookingConfirmed)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestBookingService_CreateRejects(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	_, err := s.bookings.Create(ctx, model.BookingRequest{ListingID: "1", RoomTypeID: "1", StudentID: "2", Months: 1})
	assert.True(t, errors.Is(err, ErrForbidden), "landlords cannot book")

	l, err := s.repo.GetListing(ctx, "3")
	require.NoError(t, err)
	l.RoomTypes[0].Available = 0
	require.NoError(t, s.repo.UpdateListing(ctx, l))

	_, err = s.bookings.Create(ctx, model.BookingRequest{ListingID: "3", RoomTypeID: "1", StudentID: "1", Months: 1})
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestBookingService_ConfirmNeedsFreeRoom(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	booking, err := s.bookings.Create(ctx, model.BookingRequest{ListingID: "3", RoomTypeID: "1", StudentID: "1", Months: 1})
	require.NoError(t, err)

	l, err := s.repo.GetListing(ctx, "3")
	require.NoError(t, err)
	l.RoomTypes[0].Available = 0
	require.NoError(t, s.repo.UpdateListing(ctx, l))

	_, err = s.bookings.UpdateStatus(ctx, booking.ID, model.BookingConfirmed)
	assert.True(t, errors.Is(err, ErrUnavailable))

	stored, err := s.repo.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingPending, stored.Status)
}

func TestBookingService_FailedStatusWriteRestoresRooms(t *testing.T) {
	seed, err := repository.LoadSeed("")
	require.NoError(t, err)
	repo := &flakyRepo{MemoryRepository: repository.NewSeededMemoryRepository(seed)}
	bookings := NewBookingService(repo, NewValidator(nil), zap.NewNop())
	ctx := context.Background()

	booking, err := bookings.Create(ctx, model.BookingRequest{ListingID: "2", RoomTypeID: "1", StudentID: "1", Months: 1})
	require.NoError(t, err)

	repo.failBookingUpdate = true
	_, err = bookings.UpdateStatus(ctx, booking.ID, model.BookingConfirmed)
	assert.True(t, errors.Is(err, errStoreDown))

	l, err := repo.GetListing(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 3, l.Room("1").Available, "the taken room is handed back")

	stored, err := repo.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingPending, stored.Status)
}

func TestBookingService_ConfirmsSurviveListingEdits(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		b, err := s.bookings.Create(ctx, model.BookingRequest{ListingID: "1", RoomTypeID: "1", StudentID: "1", Months: 1})
		require.NoError(t, err)
		ids = append(ids, b.ID)
	}

	form := listingForm()
	form.RoomTypes = []model.RoomForm{
		{ID: "1", Type: "Single Room", Price: "15000", Total: "20"},
		{ID: "2", Type: "Shared Room", Price: "10000", Total: "15"},
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(ids)*2)
	for _, id := range ids {
		wg.Add(2)
		go func(id string) {
			defer wg.Done()
			_, err := s.bookings.UpdateStatus(ctx, id, model.BookingConfirmed)
			errs <- err
		}(id)
		go func() {
			defer wg.Done()
			_, err := s.listings.UpdateListing(ctx, "1", form)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	l, err := s.repo.GetListing(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 0, l.Room("1").Available, "every confirmed booking holds a room")
	assert.Equal(t, 8, l.Room("2").Available)
}
