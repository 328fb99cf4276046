package model

import "time"

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a student's reservation of a room type
type Booking struct {
	ID          string        `json:"id" db:"id"`
	ListingID   string        `json:"listing_id" db:"listing_id"`
	StudentID   string        `json:"student_id" db:"student_id"`
	RoomTypeID  string        `json:"room_type_id" db:"room_type_id"`
	RoomType    string        `json:"room_type" db:"room_type"`
	CheckIn     *time.Time    `json:"check_in,omitempty" db:"check_in"`
	CheckOut    *time.Time    `json:"check_out,omitempty" db:"check_out"`
	Months      int           `json:"months" db:"months"`
	Amount      float64       `json:"amount" db:"amount"`
	ServiceFee  float64       `json:"service_fee" db:"service_fee"`
	TotalAmount float64       `json:"total_amount" db:"total_amount"`
	Status      BookingStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// BookingRequest represents a booking or quote request
type BookingRequest struct {
	ListingID  string     `json:"listing_id"`
	RoomTypeID string     `json:"room_type_id"`
	StudentID  string     `json:"student_id"`
	CheckIn    *time.Time `json:"check_in,omitempty"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
	Months     int        `json:"months"`
}

// BookingQuote is the price breakdown shown at checkout
type BookingQuote struct {
	ListingID   string  `json:"listing_id"`
	RoomTypeID  string  `json:"room_type_id"`
	RoomType    string  `json:"room_type"`
	Months      int     `json:"months"`
	Amount      float64 `json:"amount"`
	ServiceFee  float64 `json:"service_fee"`
	TotalAmount float64 `json:"total_amount"`
}

// BookingStatusRequest represents a booking status change
type BookingStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}

// VerificationReport is an agent's verdict on a listing
type VerificationReport struct {
	AgentID  string             `json:"agent_id" binding:"required"`
	Status   VerificationStatus `json:"status" binding:"required"`
	Comments string             `json:"comments"`
	Photos   []string           `json:"photos,omitempty"`
}

// AssignAgentRequest assigns an agent to verify a listing
type AssignAgentRequest struct {
	AgentID string `json:"agent_id" binding:"required"`
}

// DashboardStats holds the role-specific figures of a dashboard
type DashboardStats map[string]any

// Dashboard is the response of the dashboard endpoint
type Dashboard struct {
	UserID string         `json:"user_id"`
	Role   Role           `json:"role"`
	Stats  DashboardStats `json:"stats"`
}
