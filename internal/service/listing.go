package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hostelhub/internal/model"
	"hostelhub/internal/repository"
	"hostelhub/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListingService handles hostel search and listing management
type ListingService struct {
	repo         repository.Repository
	filter       *Filter
	validator    *Validator
	annotator    *Annotator
	logger       *zap.Logger
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

// NewListingService creates a new listing service
func NewListingService(
	repo repository.Repository,
	filter *Filter,
	validator *Validator,
	logger *zap.Logger,
	defaultLimit, maxLimit int,
) *ListingService {
	return &ListingService{
		repo:         repo,
		filter:       filter,
		validator:    validator,
		annotator:    NewAnnotator(),
		logger:       logger,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		now:          time.Now,
	}
}

// Search filters, sorts and paginates the available listings
func (s *ListingService) Search(ctx context.Context, req model.SearchRequest) (*model.SearchResponse, error) {
	startTime := time.Now()

	all, err := s.repo.ListListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}

	searchable := make([]model.Listing, 0, len(all))
	for _, l := range all {
		if l.Available {
			searchable = append(searchable, l)
		}
	}

	criteria := CriteriaFromRequest(req)
	matched := s.filter.Apply(searchable, criteria)

	page, pageSize := s.pagination(req.Page, req.PageSize)
	start := (page - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	totalPages := (len(matched) + pageSize - 1) / pageSize

	response := &model.SearchResponse{
		Results:       s.annotator.Annotate(matched[start:end], criteria),
		Total:         len(matched),
		Page:          page,
		PageSize:      pageSize,
		TotalPages:    totalPages,
		HasMore:       end < len(matched),
		Criteria:      criteria,
		ActiveFilters: criteria.ActiveFilters(),
		Amenities:     CollectAmenities(searchable),
		Took:          time.Since(startTime).Milliseconds(),
	}

	s.logger.Debug("listing search",
		zap.String("query", criteria.Query),
		zap.String("sort", string(criteria.Sort)),
		zap.Int("active_filters", response.ActiveFilters),
		zap.Int("total", response.Total),
		zap.Int64("took_ms", response.Took),
	)

	return response, nil
}

// pagination validates and caps page parameters
func (s *ListingService) pagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.defaultLimit
	}
	if pageSize > s.maxLimit {
		pageSize = s.maxLimit
	}
	return page, pageSize
}

// GetListing retrieves a single listing by ID
func (s *ListingService) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	listing, err := s.repo.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}
	return listing, nil
}

// CreateListing validates the form and stores a new, unverified listing
func (s *ListingService) CreateListing(ctx context.Context, form model.ListingForm) (*model.Listing, error) {
	errs := s.validator.ListingForm(form)
	if strings.TrimSpace(form.LandlordID) == "" {
		errs["landlord_id"] = "Landlord is required"
	}
	if err := asValidationError(errs); err != nil {
		return nil, err
	}
	if err := requireRole(ctx, s.repo, form.LandlordID, model.RoleLandlord); err != nil {
		return nil, err
	}

	now := s.now()
	listing := model.Listing{
		ID:                 uuid.NewString(),
		LandlordID:         form.LandlordID,
		Available:          true,
		VerificationStatus: model.StatusPendingSubmission,
		CreatedAt:          now,
	}
	applyForm(&listing, form, nil)
	listing.UpdatedAt = now

	if err := s.repo.CreateListing(ctx, &listing); err != nil {
		return nil, err
	}

	s.logger.Info("listing created",
		zap.String("listing_id", listing.ID),
		zap.String("landlord_id", listing.LandlordID),
	)
	return &listing, nil
}

// UpdateListing applies an edited form to an existing listing.
// Identity, owner, rating and creation time are preserved.
func (s *ListingService) UpdateListing(ctx context.Context, id string, form model.ListingForm) (*model.Listing, error) {
	errs := s.validator.ListingForm(form)
	if strings.TrimSpace(form.LandlordID) == "" {
		errs["landlord_id"] = "Landlord is required"
	}
	if err := asValidationError(errs); err != nil {
		return nil, err
	}

	return s.modifyListing(ctx, id, func(l *model.Listing) error {
		if form.LandlordID != l.LandlordID {
			return fmt.Errorf("listing %s belongs to another landlord: %w", id, ErrForbidden)
		}
		applyForm(l, form, l.RoomTypes)
		l.UpdatedAt = s.now()
		return nil
	})
}

// applyForm copies validated form values onto a listing. Rooms that existed
// before keep their booked count; new rooms start fully available.
func applyForm(l *model.Listing, form model.ListingForm, previous model.RoomTypes) {
	l.Name = strings.TrimSpace(form.Name)
	l.Description = strings.TrimSpace(form.Description)
	l.Price = *ParsePrice(string(form.Price))
	l.Location = strings.TrimSpace(form.Location)
	l.University = strings.TrimSpace(form.University)
	l.Amenities = utils.NormalizeAmenities(form.Amenities)
	l.Images = model.Tags(nonBlank(form.Images))

	rooms := make(model.RoomTypes, 0, len(form.RoomTypes))
	for _, rf := range form.RoomTypes {
		total, _ := strconv.Atoi(strings.TrimSpace(string(rf.Total)))
		room := model.RoomType{
			ID:        rf.ID,
			Type:      strings.TrimSpace(rf.Type),
			Price:     *ParsePrice(string(rf.Price)),
			Total:     total,
			Available: total,
			Features:  nonBlank(rf.Features),
		}
		if room.ID == "" {
			room.ID = uuid.NewString()
		}
		for _, old := range previous {
			if old.ID == room.ID {
				booked := old.Total - old.Available
				room.Available = total - booked
				if room.Available < 0 {
					room.Available = 0
				}
			}
		}
		rooms = append(rooms, room)
	}
	l.RoomTypes = rooms
}

// AssignAgent hands a listing to an agent for verification
func (s *ListingService) AssignAgent(ctx context.Context, listingID, agentID string) (*model.Listing, error) {
	if err := requireRole(ctx, s.repo, agentID, model.RoleAgent); err != nil {
		return nil, err
	}

	return s.modifyListing(ctx, listingID, func(l *model.Listing) error {
		if l.VerificationStatus == model.StatusVerified {
			return fmt.Errorf("listing %s is already verified: %w", listingID, ErrInvalidTransition)
		}
		l.AssignedAgentID = &agentID
		l.VerificationStatus = model.StatusPendingReview
		l.UpdatedAt = s.now()
		return nil
	})
}

var reportOutcomes = map[model.VerificationStatus]bool{
	model.StatusVerified:      true,
	model.StatusRejected:      true,
	model.StatusNeedsMoreInfo: true,
}

// SubmitVerification records the assigned agent's verdict on a listing
func (s *ListingService) SubmitVerification(ctx context.Context, listingID string, report model.VerificationReport) (*model.Listing, error) {
	if !reportOutcomes[report.Status] {
		return nil, asValidationError(model.ValidationErrors{
			"status": "Status must be one of: verified, rejected, needs_more_info",
		})
	}

	listing, err := s.modifyListing(ctx, listingID, func(l *model.Listing) error {
		if l.VerificationStatus != model.StatusPendingReview {
			return fmt.Errorf("listing %s is %s: %w", listingID, l.VerificationStatus, ErrInvalidTransition)
		}
		if l.AssignedAgentID == nil || *l.AssignedAgentID != report.AgentID {
			return fmt.Errorf("agent %s is not assigned to listing %s: %w", report.AgentID, listingID, ErrForbidden)
		}
		l.VerificationStatus = report.Status
		l.Verified = report.Status == model.StatusVerified
		l.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("listing verification submitted",
		zap.String("listing_id", listingID),
		zap.String("agent_id", report.AgentID),
		zap.String("status", string(report.Status)),
	)
	return listing, nil
}

// modifyListing runs fn as one atomic read-modify-write of the stored listing
func (s *ListingService) modifyListing(ctx context.Context, id string, fn func(*model.Listing) error) (*model.Listing, error) {
	listing, err := s.repo.ModifyListing(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}
	return listing, nil
}

// requireRole checks that userID exists and has role
func requireRole(ctx context.Context, repo repository.Repository, userID string, role model.Role) error {
	user, err := repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %q: %w", userID, ErrNotFound)
	}
	if user.Role != role {
		return fmt.Errorf("user %s is a %s, not a %s: %w", userID, user.Role, role, ErrForbidden)
	}
	return nil
}
