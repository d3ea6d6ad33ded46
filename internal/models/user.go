package models

// User represents a registered user in the system
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"Name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Not serialized
	Age          string `json:"Age,omitempty"`
	Employment   string `json:"employment-status,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
