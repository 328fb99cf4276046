package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"hostelhub/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

const listingColumns = `
	id, name, description, price, location, university, images, amenities,
	rating, reviews, room_types, landlord_id, verified, available,
	verification_status, assigned_agent_id, created_at, updated_at`

const userColumns = `id, name, email, phone, role, password_hash, profile, verified, created_at`

const reviewColumns = `
	id, listing_id, user_id, user_name, rating, comment, helpful_count, created_at, updated_at`

const bookingColumns = `
	id, listing_id, student_id, room_type_id, room_type, check_in, check_out,
	months, amount, service_fee, total_amount, status, created_at, updated_at`

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// EnsureSchema creates the tables when they do not exist yet
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Seed inserts seed records that are not stored yet
func (r *PostgresRepository) Seed(ctx context.Context, seed *Seed) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range seed.Users {
		if _, err := tx.NamedExecContext(ctx, insertUserSQL+` ON CONFLICT DO NOTHING`, &seed.Users[i]); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", seed.Users[i].ID, err)
		}
	}
	for i := range seed.Listings {
		if _, err := tx.NamedExecContext(ctx, insertListingSQL+` ON CONFLICT (id) DO NOTHING`, &seed.Listings[i]); err != nil {
			return fmt.Errorf("failed to seed listing %s: %w", seed.Listings[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// ListListings returns every listing in creation order
func (r *PostgresRepository) ListListings(ctx context.Context) ([]model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings ORDER BY created_at, id`

	var listings []model.Listing
	if err := r.db.SelectContext(ctx, &listings, query); err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}
	return listings, nil
}

// GetListing retrieves a single listing by its ID
func (r *PostgresRepository) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	var listing model.Listing
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	err := r.db.GetContext(ctx, &listing, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

const insertListingSQL = `
	INSERT INTO listings (` + listingColumns + `)
	VALUES (
		:id, :name, :description, :price, :location, :university, :images, :amenities,
		:rating, :reviews, :room_types, :landlord_id, :verified, :available,
		:verification_status, :assigned_agent_id, :created_at, :updated_at
	)`

// CreateListing inserts a new listing
func (r *PostgresRepository) CreateListing(ctx context.Context, listing *model.Listing) error {
	if _, err := r.db.NamedExecContext(ctx, insertListingSQL, listing); err != nil {
		return fmt.Errorf("failed to create listing: %w", mapPQError(err))
	}
	return nil
}

const updateListingSQL = `
	UPDATE listings SET
		name = :name, description = :description, price = :price,
		location = :location, university = :university, images = :images,
		amenities = :amenities, rating = :rating, reviews = :reviews,
		room_types = :room_types, verified = :verified, available = :available,
		verification_status = :verification_status,
		assigned_agent_id = :assigned_agent_id, updated_at = :updated_at
	WHERE id = :id`

// UpdateListing overwrites the mutable columns of a listing
func (r *PostgresRepository) UpdateListing(ctx context.Context, listing *model.Listing) error {
	res, err := r.db.NamedExecContext(ctx, updateListingSQL, listing)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	return expectOneRow(res, "listing", listing.ID)
}

// ModifyListing locks the listing row for the length of a transaction,
// applies fn and writes the result back
func (r *PostgresRepository) ModifyListing(ctx context.Context, id string, fn func(*model.Listing) error) (*model.Listing, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var listing model.Listing
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &listing, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	if err := fn(&listing); err != nil {
		return nil, err
	}

	if _, err := tx.NamedExecContext(ctx, updateListingSQL, &listing); err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit listing update: %w", err)
	}
	return &listing, nil
}

const insertUserSQL = `
	INSERT INTO users (` + userColumns + `)
	VALUES (:id, :name, :email, :phone, :role, :password_hash, :profile, :verified, :created_at)`

// CreateUser inserts a new user
func (r *PostgresRepository) CreateUser(ctx context.Context, user *model.User) error {
	if _, err := r.db.NamedExecContext(ctx, insertUserSQL, user); err != nil {
		return fmt.Errorf("failed to create user: %w", mapPQError(err))
	}
	return nil
}

// GetUser retrieves a user by ID
func (r *PostgresRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetUserByEmail retrieves a user by email, ignoring case
func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *PostgresRepository) getUser(ctx context.Context, query string, arg string) (*model.User, error) {
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ListUsers returns every user ordered by creation time
func (r *PostgresRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`); err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

// CreateBooking inserts a new booking
func (r *PostgresRepository) CreateBooking(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES (
			:id, :listing_id, :student_id, :room_type_id, :room_type, :check_in, :check_out,
			:months, :amount, :service_fee, :total_amount, :status, :created_at, :updated_at
		)`
	if _, err := r.db.NamedExecContext(ctx, query, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", mapPQError(err))
	}
	return nil
}

// GetBooking retrieves a booking by ID
func (r *PostgresRepository) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// UpdateBooking stores a booking's new status
func (r *PostgresRepository) UpdateBooking(ctx context.Context, booking *model.Booking) error {
	res, err := r.db.NamedExecContext(ctx,
		`UPDATE bookings SET status = :status, updated_at = :updated_at WHERE id = :id`, booking)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	return expectOneRow(res, "booking", booking.ID)
}

// ListBookings returns every booking in creation order
func (r *PostgresRepository) ListBookings(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.SelectContext(ctx, &bookings, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at, id`); err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return bookings, nil
}

// CreateReview inserts a review. The (listing_id, user_id) unique key maps to ErrDuplicate.
func (r *PostgresRepository) CreateReview(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES (
			:id, :listing_id, :user_id, :user_name, :rating, :comment,
			:helpful_count, :created_at, :updated_at
		)`
	if _, err := r.db.NamedExecContext(ctx, query, review); err != nil {
		return fmt.Errorf("failed to create review: %w", mapPQError(err))
	}
	return nil
}

// GetReview retrieves a review by ID
func (r *PostgresRepository) GetReview(ctx context.Context, id string) (*model.Review, error) {
	var review model.Review
	err := r.db.GetContext(ctx, &review, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

// DeleteReview removes a review; its helpful marks cascade
func (r *PostgresRepository) DeleteReview(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return expectOneRow(res, "review", id)
}

// ListReviews returns a listing's reviews, newest first
func (r *PostgresRepository) ListReviews(ctx context.Context, listingID string) ([]model.Review, error) {
	reviews := []model.Review{}
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE listing_id = $1 ORDER BY created_at DESC, id`
	if err := r.db.SelectContext(ctx, &reviews, query, listingID); err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}

// ToggleHelpful removes the user's mark if present, otherwise adds it, and
// recounts the review's marks in the same transaction
func (r *PostgresRepository) ToggleHelpful(ctx context.Context, reviewID, userID string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM review_helpful WHERE review_id = $1 AND user_id = $2`, reviewID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to remove helpful mark: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if removed == 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO review_helpful (review_id, user_id) VALUES ($1, $2)`, reviewID, userID); err != nil {
			return false, fmt.Errorf("failed to add helpful mark: %w", err)
		}
	}

	res, err = tx.ExecContext(ctx, `
		UPDATE reviews SET
			helpful_count = (SELECT COUNT(*) FROM review_helpful WHERE review_id = $1),
			updated_at = NOW()
		WHERE id = $1`, reviewID)
	if err != nil {
		return false, fmt.Errorf("failed to update helpful count: %w", err)
	}
	if err := expectOneRow(res, "review", reviewID); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit helpful mark: %w", err)
	}
	return removed == 0, nil
}

func expectOneRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s does not exist", kind, id)
	}
	return nil
}

// mapPQError turns unique violations into ErrDuplicate
func mapPQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%s: %w", pqErr.Constraint, ErrDuplicate)
	}
	return err
}
