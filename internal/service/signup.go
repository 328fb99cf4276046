package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hostelhub/internal/model"
	"hostelhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// publicRoles can sign up without the privileged access link
var publicRoles = []model.Role{model.RoleStudent, model.RoleLandlord}

// SignupService registers new accounts
type SignupService struct {
	repo      repository.Repository
	validator *Validator
	logger    *zap.Logger
	now       func() time.Time
}

// NewSignupService creates a new signup service
func NewSignupService(repo repository.Repository, validator *Validator, logger *zap.Logger) *SignupService {
	return &SignupService{
		repo:      repo,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// AllowedRoles returns the roles offered on the signup form
func (s *SignupService) AllowedRoles(privileged bool) []model.Role {
	if privileged {
		return append([]model.Role(nil), model.Roles...)
	}
	return append([]model.Role(nil), publicRoles...)
}

func (s *SignupService) roleAllowed(role model.Role, privileged bool) bool {
	for _, r := range s.AllowedRoles(privileged) {
		if r == role {
			return true
		}
	}
	return false
}

// ValidateStep checks one step of the signup form without storing anything
func (s *SignupService) ValidateStep(rec model.SignupRecord, step int) model.ValidationErrors {
	return s.validator.Step(rec, step)
}

// Register validates a complete signup record and stores the new user
func (s *SignupService) Register(ctx context.Context, rec model.SignupRecord, privileged bool) (*model.User, error) {
	errs := s.validator.Signup(rec)
	if !s.roleAllowed(rec.Role, privileged) {
		errs["role"] = "Please choose an available account type"
	}
	if err := asValidationError(errs); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(rec.Email))
	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, asValidationError(model.ValidationErrors{"email": "An account with this email already exists"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rec.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(rec.FirstName) + " " + strings.TrimSpace(rec.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(rec.Phone),
		Role:         rec.Role,
		PasswordHash: string(hash),
		Profile:      profileFor(rec),
		CreatedAt:    s.now(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, asValidationError(model.ValidationErrors{"email": "An account with this email already exists"})
		}
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

// profileFor keeps the role-specific fields of the record
func profileFor(rec model.SignupRecord) model.JSONMap {
	fields := map[model.Role]map[string]string{
		model.RoleStudent: {
			"university":  rec.University,
			"studentId":   rec.StudentID,
			"course":      rec.Course,
			"yearOfStudy": rec.YearOfStudy,
		},
		model.RoleLandlord: {
			"businessName":         rec.BusinessName,
			"businessRegistration": rec.BusinessRegistration,
			"taxPin":               rec.TaxPin,
			"bankAccount":          rec.BankAccount,
		},
		model.RoleAgent: {
			"town":           rec.Town,
			"licenseNumber":  rec.LicenseNumber,
			"experience":     rec.Experience,
			"specialization": rec.Specialization,
		},
		model.RoleAdmin: {
			"department": rec.Department,
		},
	}[rec.Role]

	profile := model.JSONMap{}
	for k, v := range fields {
		if v = strings.TrimSpace(v); v != "" {
			profile[k] = v
		}
	}
	return profile
}

// Authenticate returns the user whose email and password match.
// An unknown email and a wrong password fail the same way.
func (s *SignupService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !CheckPassword(user, password) {
		s.logger.Debug("login rejected", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CheckPassword reports whether password matches the user's stored hash
func CheckPassword(user *model.User, password string) bool {
	if user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
