package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// VerificationStatus tracks a listing through agent verification
type VerificationStatus string

const (
	StatusPendingSubmission VerificationStatus = "pending_submission"
	StatusPendingReview     VerificationStatus = "pending_review"
	StatusVerified          VerificationStatus = "verified"
	StatusRejected          VerificationStatus = "rejected"
	StatusNeedsMoreInfo     VerificationStatus = "needs_more_info"
)

// Listing represents a bookable hostel
type Listing struct {
	ID                 string             `json:"id" db:"id" yaml:"id"`
	Name               string             `json:"name" db:"name" yaml:"name"`
	Description        string             `json:"description" db:"description" yaml:"description"`
	Price              float64            `json:"price" db:"price" yaml:"price"`
	Location           string             `json:"location" db:"location" yaml:"location"`
	University         string             `json:"university" db:"university" yaml:"university"`
	Images             Tags               `json:"images" db:"images" yaml:"images"`
	Amenities          Tags               `json:"amenities" db:"amenities" yaml:"amenities"`
	Rating             float64            `json:"rating" db:"rating" yaml:"rating"`
	Reviews            int                `json:"reviews" db:"reviews" yaml:"reviews"`
	RoomTypes          RoomTypes          `json:"room_types" db:"room_types" yaml:"room_types"`
	LandlordID         string             `json:"landlord_id" db:"landlord_id" yaml:"landlord_id"`
	Verified           bool               `json:"verified" db:"verified" yaml:"verified"`
	Available          bool               `json:"available" db:"available" yaml:"available"`
	VerificationStatus VerificationStatus `json:"verification_status" db:"verification_status" yaml:"verification_status"`
	AssignedAgentID    *string            `json:"assigned_agent_id,omitempty" db:"assigned_agent_id" yaml:"assigned_agent_id"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at" yaml:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" db:"updated_at" yaml:"updated_at"`
}

// RoomType is a sub-offering of a listing with its own price and capacity
type RoomType struct {
	ID        string   `json:"id" yaml:"id"`
	Type      string   `json:"type" yaml:"type"`
	Price     float64  `json:"price" yaml:"price"`
	Available int      `json:"available" yaml:"available"`
	Total     int      `json:"total" yaml:"total"`
	Features  []string `json:"features" yaml:"features"`
}

// Room returns the room type with the given id, or nil
func (l *Listing) Room(id string) *RoomType {
	for i := range l.RoomTypes {
		if l.RoomTypes[i].ID == id {
			return &l.RoomTypes[i]
		}
	}
	return nil
}

// Clone returns a deep copy so callers can mutate it without touching the store
func (l Listing) Clone() Listing {
	out := l
	out.Images = append(Tags(nil), l.Images...)
	out.Amenities = append(Tags(nil), l.Amenities...)
	if l.RoomTypes != nil {
		out.RoomTypes = make(RoomTypes, len(l.RoomTypes))
		for i, rt := range l.RoomTypes {
			rt.Features = append([]string(nil), rt.Features...)
			out.RoomTypes[i] = rt
		}
	}
	if l.AssignedAgentID != nil {
		id := *l.AssignedAgentID
		out.AssignedAgentID = &id
	}
	return out
}

// Tags represents a JSON array of strings
type Tags []string

// Value implements driver.Valuer interface
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner interface
func (t *Tags) Scan(value interface{}) error {
	return scanJSON(value, t)
}

// RoomTypes is stored as a JSONB column
type RoomTypes []RoomType

// Value implements driver.Valuer interface
func (r RoomTypes) Value() (driver.Value, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner interface
func (r *RoomTypes) Scan(value interface{}) error {
	return scanJSON(value, r)
}

// JSONMap represents a JSON object field
type JSONMap map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONMap) Scan(value interface{}) error {
	return scanJSON(value, j)
}

// String returns the value under key when it is a string
func (j JSONMap) String(key string) string {
	if v, ok := j[key].(string); ok {
		return v
	}
	return ""
}

func scanJSON(value interface{}, dst interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("cannot scan %T into JSON column", value)
	}
}
