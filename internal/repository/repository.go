package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/finpass/backend/internal/models"
)

// ErrNotFound is returned when no user matches the given email.
var ErrNotFound = errors.New("user not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user together with their initial financial record
func (r *Repository) CreateUser(user *models.User, rec models.UserRecord) error {
	record, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	query := `
		INSERT INTO finpass.users (name, email, password_hash, age, employment_status, record, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err = r.db.QueryRow(query, user.Name, user.Email, user.PasswordHash, user.Age, user.Employment, record).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, password_hash, age, employment_status, created_at, updated_at
		FROM finpass.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Age, &user.Employment, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// EmailExists reports whether a user is already registered under email
func (r *Repository) EmailExists(email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM finpass.users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// GetUserRecord retrieves the raw financial record for a user
func (r *Repository) GetUserRecord(email string) (models.UserRecord, error) {
	var raw []byte
	err := r.db.QueryRow(`SELECT record FROM finpass.users WHERE email = $1`, email).Scan(&raw)
	if err == sql.ErrNoRows {
		return models.UserRecord{}, ErrNotFound
	}
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("failed to get record: %w", err)
	}

	var rec models.UserRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return models.UserRecord{}, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}

// UpdateUserRecord replaces the raw financial record for a user
func (r *Repository) UpdateUserRecord(email string, rec models.UserRecord) error {
	record, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	res, err := r.db.Exec(`
		UPDATE finpass.users
		SET record = $2, updated_at = CURRENT_TIMESTAMP
		WHERE email = $1`, email, record)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUserEmails returns the emails of all registered users, for the
// scheduled goal review
func (r *Repository) ListUserEmails() ([]string, error) {
	rows, err := r.db.Query(`SELECT email FROM finpass.users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan email: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return emails, nil
}
