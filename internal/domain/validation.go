package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidCounterpartyName = errors.New("invalid counterparty name")
	ErrInvalidDescription      = errors.New("invalid description")
	ErrAmountTooLarge          = errors.New("amount exceeds maximum allowed")
	ErrInvalidEmail            = errors.New("invalid email format")
	ErrPasswordTooWeak         = errors.New("password does not meet requirements")
	ErrInvalidBudget           = errors.New("monthly budget must not be negative")
)

// Validation constants
const (
	MaxCounterpartyNameLength = 255
	MaxDescriptionLength      = 1024
	MaxRecordAmount           = "100000000" // 100 million
	MinPasswordLength         = 8
	MaxPasswordLength         = 128
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateCounterpartyName validates the person name on a notebook entry.
func ValidateCounterpartyName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidCounterpartyName)
	}

	if len(name) > MaxCounterpartyNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidCounterpartyName, MaxCounterpartyNameLength)
	}

	return nil
}

// ValidateDescription validates the free-text note on a record.
func ValidateDescription(desc string) error {
	if len(desc) > MaxDescriptionLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}

	return nil
}

// ValidateAmount validates a record amount. Amounts are strictly positive;
// the aggregation engine never sees a non-positive value.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxRecordAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxRecordAmount)
	}

	return nil
}

// ValidateCategory validates an expense category against the closed set.
func ValidateCategory(category Category) error {
	if !category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, string(category))
	}

	return nil
}

// ValidateDirection validates a notebook entry direction.
func ValidateDirection(direction Direction) error {
	if !direction.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, string(direction))
	}

	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password strength.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasUpper || !hasLower || !hasNumber {
		return fmt.Errorf("%w: must contain uppercase, lowercase, and numbers", ErrPasswordTooWeak)
	}

	return nil
}

// ValidateBudget validates a monthly budget value.
func ValidateBudget(budget decimal.Decimal) error {
	if budget.IsNegative() {
		return ErrInvalidBudget
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
