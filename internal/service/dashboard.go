package service

import (
	"context"
	"fmt"
	"math"

	"hostelhub/internal/model"
	"hostelhub/internal/repository"
)

type statsFunc func(ctx context.Context, s *DashboardService, user *model.User) (model.DashboardStats, error)

var dashboards = map[model.Role]statsFunc{
	model.RoleStudent:  studentStats,
	model.RoleLandlord: landlordStats,
	model.RoleAgent:    agentStats,
	model.RoleAdmin:    adminStats,
}

// DashboardService computes the figures shown on each role's dashboard
type DashboardService struct {
	repo     repository.Repository
	wishlist *WishlistService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repo repository.Repository, wishlist *WishlistService) *DashboardService {
	return &DashboardService{repo: repo, wishlist: wishlist}
}

// ForUser loads a user and builds their dashboard
func (s *DashboardService) ForUser(ctx context.Context, userID string) (*model.Dashboard, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", userID, ErrNotFound)
	}

	stats, err := s.Stats(ctx, user)
	if err != nil {
		return nil, err
	}
	return &model.Dashboard{UserID: user.ID, Role: user.Role, Stats: stats}, nil
}

// Stats returns the figures for user's role. Unknown roles get empty stats.
func (s *DashboardService) Stats(ctx context.Context, user *model.User) (model.DashboardStats, error) {
	fn, ok := dashboards[user.Role]
	if !ok {
		return model.DashboardStats{}, nil
	}
	return fn(ctx, s, user)
}

func studentStats(ctx context.Context, s *DashboardService, user *model.User) (model.DashboardStats, error) {
	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		return nil, err
	}

	total, pending := 0, 0
	for _, b := range bookings {
		if b.StudentID != user.ID {
			continue
		}
		total++
		if b.Status == model.BookingPending {
			pending++
		}
	}

	saved, err := s.wishlist.Count(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return model.DashboardStats{
		"bookings":         total,
		"pending_bookings": pending,
		"wishlist":         saved,
	}, nil
}

func landlordStats(ctx context.Context, s *DashboardService, user *model.User) (model.DashboardStats, error) {
	listings, err := s.repo.ListListings(ctx)
	if err != nil {
		return nil, err
	}

	owned := map[string]bool{}
	rooms, free := 0, 0
	for _, l := range listings {
		if l.LandlordID != user.ID {
			continue
		}
		owned[l.ID] = true
		for _, r := range l.RoomTypes {
			rooms += r.Total
			free += r.Available
		}
	}

	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	received := 0
	for _, b := range bookings {
		if owned[b.ListingID] {
			received++
		}
	}

	occupancy := 0.0
	if rooms > 0 {
		occupancy = math.Round(float64(rooms-free)/float64(rooms)*1000) / 10
	}

	return model.DashboardStats{
		"properties":        len(owned),
		"total_rooms":       rooms,
		"available_rooms":   free,
		"occupancy_rate":    occupancy,
		"bookings_received": received,
	}, nil
}

func agentStats(ctx context.Context, s *DashboardService, user *model.User) (model.DashboardStats, error) {
	listings, err := s.repo.ListListings(ctx)
	if err != nil {
		return nil, err
	}

	assigned, awaiting, verified := 0, 0, 0
	for _, l := range listings {
		if l.AssignedAgentID == nil || *l.AssignedAgentID != user.ID {
			continue
		}
		assigned++
		switch l.VerificationStatus {
		case model.StatusPendingReview:
			awaiting++
		case model.StatusVerified:
			verified++
		}
	}

	return model.DashboardStats{
		"assigned":        assigned,
		"awaiting_review": awaiting,
		"verified":        verified,
	}, nil
}

func adminStats(ctx context.Context, s *DashboardService, _ *model.User) (model.DashboardStats, error) {
	listings, err := s.repo.ListListings(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		return nil, err
	}

	verified := 0
	for _, l := range listings {
		if l.Verified {
			verified++
		}
	}

	perRole := map[string]int{}
	for _, r := range model.Roles {
		perRole[string(r)] = 0
	}
	for _, u := range users {
		perRole[string(u.Role)]++
	}

	revenue := 0.0
	for _, b := range bookings {
		if b.Status == model.BookingConfirmed {
			revenue += b.TotalAmount
		}
	}

	return model.DashboardStats{
		"listings":          len(listings),
		"verified_listings": verified,
		"users":             perRole,
		"bookings":          len(bookings),
		"revenue":           revenue,
	}, nil
}
