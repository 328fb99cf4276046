package service

import (
	"fmt"
	"strconv"
	"strings"

	"hostelhub/internal/campus"
	"hostelhub/internal/model"

	"github.com/go-playground/validator/v10"
)

const (
	minPasswordLength = 6
	// maxPasswordLength is the most bcrypt will hash, counted in bytes
	maxPasswordLength = 72
)

// formats checks single-value formats such as email addresses
var formats = validator.New()

// fieldRule is one independent check on a signup record.
// check returns an empty string when the field is valid.
type fieldRule struct {
	field string
	check func(r model.SignupRecord, dir *campus.Directory) string
}

func required(field, message string, value func(model.SignupRecord) string) fieldRule {
	return fieldRule{
		field: field,
		check: func(r model.SignupRecord, _ *campus.Directory) string {
			if strings.TrimSpace(value(r)) == "" {
				return message
			}
			return ""
		},
	}
}

var accountRules = []fieldRule{
	required("firstName", "First name is required", func(r model.SignupRecord) string { return r.FirstName }),
	required("lastName", "Last name is required", func(r model.SignupRecord) string { return r.LastName }),
	{field: "email", check: func(r model.SignupRecord, _ *campus.Directory) string {
		email := strings.TrimSpace(r.Email)
		if email == "" {
			return "Email is required"
		}
		if formats.Var(email, "email") != nil {
			return "Email address is invalid"
		}
		return ""
	}},
	required("phone", "Phone number is required", func(r model.SignupRecord) string { return r.Phone }),
	{field: "password", check: func(r model.SignupRecord, _ *campus.Directory) string {
		if len(r.Password) < minPasswordLength {
			return fmt.Sprintf("Password must be at least %d characters", minPasswordLength)
		}
		if len(r.Password) > maxPasswordLength {
			return fmt.Sprintf("Password must be at most %d characters", maxPasswordLength)
		}
		return ""
	}},
	{field: "confirmPassword", check: func(r model.SignupRecord, _ *campus.Directory) string {
		if r.Password != r.ConfirmPassword {
			return "Passwords do not match"
		}
		return ""
	}},
}

var roleRules = map[model.Role][]fieldRule{
	model.RoleStudent: {
		{field: "university", check: func(r model.SignupRecord, dir *campus.Directory) string {
			switch {
			case strings.TrimSpace(r.University) == "":
				return "University is required"
			case !dir.IsUniversity(r.University):
				return "University is not recognised"
			}
			return ""
		}},
		required("studentId", "Student ID is required", func(r model.SignupRecord) string { return r.StudentID }),
		required("course", "Course is required", func(r model.SignupRecord) string { return r.Course }),
		required("yearOfStudy", "Year of study is required", func(r model.SignupRecord) string { return r.YearOfStudy }),
	},
	model.RoleLandlord: {
		required("businessName", "Business name is required", func(r model.SignupRecord) string { return r.BusinessName }),
		required("taxPin", "Tax PIN is required", func(r model.SignupRecord) string { return r.TaxPin }),
		required("bankAccount", "Bank account is required", func(r model.SignupRecord) string { return r.BankAccount }),
	},
	model.RoleAgent: {
		{field: "town", check: func(r model.SignupRecord, dir *campus.Directory) string {
			switch {
			case strings.TrimSpace(r.Town) == "":
				return "Town is required"
			case !dir.IsTown(r.Town):
				return "Town is not recognised"
			}
			return ""
		}},
		required("licenseNumber", "License number is required", func(r model.SignupRecord) string { return r.LicenseNumber }),
		required("experience", "Experience is required", func(r model.SignupRecord) string { return r.Experience }),
		required("specialization", "Specialization is required", func(r model.SignupRecord) string { return r.Specialization }),
	},
	model.RoleAdmin: {
		required("adminCode", "Admin code is required", func(r model.SignupRecord) string { return r.AdminCode }),
		required("department", "Department is required", func(r model.SignupRecord) string { return r.Department }),
	},
}

// Validator checks form records. Every rule runs; failures never short-circuit.
type Validator struct {
	dir *campus.Directory
}

// NewValidator creates a validator that checks universities and towns against dir
func NewValidator(dir *campus.Directory) *Validator {
	if dir == nil {
		dir = campus.Default()
	}
	return &Validator{dir: dir}
}

// Validate checks the role-specific fields of rec using the built-in campus directory
func Validate(rec model.SignupRecord, role model.Role) model.ValidationErrors {
	return NewValidator(nil).Role(rec, role)
}

func (v *Validator) run(rules []fieldRule, rec model.SignupRecord) model.ValidationErrors {
	errs := model.ValidationErrors{}
	for _, rule := range rules {
		if msg := rule.check(rec, v.dir); msg != "" {
			errs[rule.field] = msg
		}
	}
	return errs
}

// Role checks the fields required for role. Unknown roles have no rules.
func (v *Validator) Role(rec model.SignupRecord, role model.Role) model.ValidationErrors {
	return v.run(roleRules[role], rec)
}

// Account checks the fields every role fills in on the first step
func (v *Validator) Account(rec model.SignupRecord) model.ValidationErrors {
	return v.run(accountRules, rec)
}

// Step checks one step of the signup flow: 1 is the account, 2 the role profile
func (v *Validator) Step(rec model.SignupRecord, step int) model.ValidationErrors {
	switch step {
	case 1:
		return v.Account(rec)
	case 2:
		return v.Role(rec, rec.Role)
	default:
		return model.ValidationErrors{}
	}
}

// Signup checks both steps at once
func (v *Validator) Signup(rec model.SignupRecord) model.ValidationErrors {
	return v.Account(rec).Merge(v.Role(rec, rec.Role))
}

// RequiredFields lists the fields checked for role, in form order
func RequiredFields(role model.Role) []string {
	rules := roleRules[role]
	fields := make([]string, 0, len(rules))
	for _, r := range rules {
		fields = append(fields, r.field)
	}
	return fields
}

// ListingForm checks the landlord's add/edit hostel form
func (v *Validator) ListingForm(form model.ListingForm) model.ValidationErrors {
	errs := model.ValidationErrors{}

	if strings.TrimSpace(form.Name) == "" {
		errs["name"] = "Hostel name is required"
	}
	if strings.TrimSpace(form.Description) == "" {
		errs["description"] = "Description is required"
	}
	if !positive(string(form.Price)) {
		errs["price"] = "Valid price is required"
	}
	if strings.TrimSpace(form.Location) == "" {
		errs["location"] = "Location is required"
	}
	if strings.TrimSpace(form.University) == "" {
		errs["university"] = "University is required"
	}
	if len(nonBlank(form.Amenities)) == 0 {
		errs["amenities"] = "At least one amenity is required"
	}
	if len(form.RoomTypes) == 0 {
		errs["roomTypes"] = "At least one room type is required"
	}
	if len(nonBlank(form.Images)) == 0 {
		errs["images"] = "At least one image is required"
	}

	for i, room := range form.RoomTypes {
		if strings.TrimSpace(room.Type) == "" {
			errs[fmt.Sprintf("room_%d_type", i)] = "Room type is required"
		}
		if !positive(string(room.Price)) {
			errs[fmt.Sprintf("room_%d_price", i)] = "Valid price is required"
		}
		if n, err := strconv.Atoi(strings.TrimSpace(string(room.Total))); err != nil || n <= 0 {
			errs[fmt.Sprintf("room_%d_total", i)] = "Total rooms must be greater than 0"
		}
	}

	return errs
}

// Booking checks a booking or quote request
func (v *Validator) Booking(req model.BookingRequest) model.ValidationErrors {
	errs := model.ValidationErrors{}

	if strings.TrimSpace(req.ListingID) == "" {
		errs["listing_id"] = "Hostel is required"
	}
	if strings.TrimSpace(req.RoomTypeID) == "" {
		errs["room_type_id"] = "Room type is required"
	}
	if strings.TrimSpace(req.StudentID) == "" {
		errs["student_id"] = "Student is required"
	}
	if req.Months <= 0 {
		errs["months"] = "Duration must be at least one month"
	}
	if req.CheckIn != nil && req.CheckOut != nil && req.CheckIn.After(*req.CheckOut) {
		errs["check_out"] = "Check-out must be after check-in"
	}

	return errs
}

const (
	minRating = 1
	maxRating = 5
)

// Review checks a new review
func (v *Validator) Review(req model.ReviewRequest) model.ValidationErrors {
	errs := model.ValidationErrors{}

	if strings.TrimSpace(req.UserID) == "" {
		errs["user_id"] = "User is required"
	}
	if req.Rating < minRating || req.Rating > maxRating {
		errs["rating"] = fmt.Sprintf("Rating must be between %d and %d", minRating, maxRating)
	}
	if strings.TrimSpace(req.Comment) == "" {
		errs["comment"] = "Comment is required"
	}

	return errs
}

func positive(s string) bool {
	p := ParsePrice(s)
	return p != nil && *p > 0
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
