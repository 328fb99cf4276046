package model

import "time"

// Review is a student's 1 to 5 star rating of a listing.
// A user reviews a listing at most once.
type Review struct {
	ID           string    `json:"id" db:"id"`
	ListingID    string    `json:"listing_id" db:"listing_id"`
	UserID       string    `json:"user_id" db:"user_id"`
	UserName     string    `json:"user_name" db:"user_name"`
	Rating       int       `json:"rating" db:"rating"`
	Comment      string    `json:"comment" db:"comment"`
	HelpfulCount int       `json:"helpful_count" db:"helpful_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ReviewRequest is the body of a new review
type ReviewRequest struct {
	UserID  string `json:"user_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// HelpfulRequest marks or unmarks a review as helpful
type HelpfulRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// LoginRequest carries the credentials of a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
