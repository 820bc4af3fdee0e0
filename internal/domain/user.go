package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered account holder. MonthlyBudget is an optional
// spending target used by the dashboard summary; zero means no budget set.
type User struct {
	ID             string
	Email          string
	DisplayName    string
	HashedPassword string
	MonthlyBudget  decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Active         bool
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
