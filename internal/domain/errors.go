package domain

import "errors"

var (
	// Notebook errors
	ErrEntryNotFound    = errors.New("notebook entry not found")
	ErrInvalidDirection = errors.New("direction must be lend or borrow")

	// Transaction errors
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidCategory = errors.New("unknown expense category")
	ErrIncomeNotFound  = errors.New("income record not found")
	ErrExpenseNotFound = errors.New("expense record not found")

	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
)
