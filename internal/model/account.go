package model

import "time"

// Role is one of the fixed user categories
type Role string

const (
	RoleStudent  Role = "student"
	RoleLandlord Role = "landlord"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

// Roles lists every role in display order
var Roles = []Role{RoleStudent, RoleLandlord, RoleAgent, RoleAdmin}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User is a registered account
type User struct {
	ID           string    `json:"id" db:"id" yaml:"id"`
	Name         string    `json:"name" db:"name" yaml:"name"`
	Email        string    `json:"email" db:"email" yaml:"email"`
	Phone        string    `json:"phone" db:"phone" yaml:"phone"`
	Role         Role      `json:"role" db:"role" yaml:"role"`
	PasswordHash string    `json:"-" db:"password_hash" yaml:"-"`
	Profile      JSONMap   `json:"profile,omitempty" db:"profile" yaml:"profile"`
	Verified     bool      `json:"verified" db:"verified" yaml:"verified"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" yaml:"created_at"`
}

// SignupRecord carries every field of the multi-step signup form.
// Only the fields of the selected role are checked.
type SignupRecord struct {
	Role            Role   `json:"role"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`

	University  string `json:"university"`
	StudentID   string `json:"studentId"`
	Course      string `json:"course"`
	YearOfStudy string `json:"yearOfStudy"`

	BusinessName         string `json:"businessName"`
	BusinessRegistration string `json:"businessRegistration"`
	TaxPin               string `json:"taxPin"`
	BankAccount          string `json:"bankAccount"`

	Town           string `json:"town"`
	LicenseNumber  string `json:"licenseNumber"`
	Experience     string `json:"experience"`
	Specialization string `json:"specialization"`

	AdminCode  string `json:"adminCode"`
	Department string `json:"department"`
}

// ValidationErrors maps a field name to a human-readable message.
// An empty map means the record is valid.
type ValidationErrors map[string]string

// Merge copies every entry of other into e
func (e ValidationErrors) Merge(other ValidationErrors) ValidationErrors {
	for k, v := range other {
		e[k] = v
	}
	return e
}

// ListingForm is the landlord's add/edit hostel form
type ListingForm struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       FlexNumber `json:"price"`
	Location    string     `json:"location"`
	University  string     `json:"university"`
	Amenities   []string   `json:"amenities"`
	Images      []string   `json:"images"`
	RoomTypes   []RoomForm `json:"room_types"`
	LandlordID  string     `json:"landlord_id"`
}

// RoomForm is one room type row of ListingForm
type RoomForm struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Price    FlexNumber `json:"price"`
	Total    FlexNumber `json:"total"`
	Features []string   `json:"features"`
}
