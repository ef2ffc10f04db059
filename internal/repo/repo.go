package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrUserExists = errors.New("user already exists")
)

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	// GetByLogin returns id 0 and an empty hash for an unknown login.
	GetByLogin(ctx context.Context, login string) (int, string, error)

	SaveCalculation(ctx context.Context, c Calculation) error
	ListCalculations(ctx context.Context, userID, limit int) ([]Calculation, error)
	GetCalculation(ctx context.Context, userID int, id string) (Calculation, error)
}

// Calculation is one stored glass calculation. Exactly one of the result
// (Sigma, Delta) or Error is set.
type Calculation struct {
	ID        string          `json:"id"`
	UserID    int             `json:"-"`
	Case      string          `json:"case"`
	Input     json.RawMessage `json:"input"`
	Sigma     *float64        `json:"sigma,omitempty"`
	Delta     *float64        `json:"delta,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
