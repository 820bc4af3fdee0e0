package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies an expense. The set is closed; anything else is
// rejected at input validation.
type Category string

const (
	CategoryFood     Category = "Food"
	CategoryTravel   Category = "Travel"
	CategoryStudy    Category = "Study"
	CategoryPersonal Category = "Personal"
	CategoryOther    Category = "Other"
)

// Categories lists all valid expense categories in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTravel,
	CategoryStudy,
	CategoryPersonal,
	CategoryOther,
}

var validCategories = map[Category]bool{
	CategoryFood:     true,
	CategoryTravel:   true,
	CategoryStudy:    true,
	CategoryPersonal: true,
	CategoryOther:    true,
}

// IsValid checks if the category is part of the closed set.
func (c Category) IsValid() bool {
	return validCategories[c]
}

// DefaultIncomeSource is used when an income record is created without an
// explicit source.
const DefaultIncomeSource = "Parents"

// Income represents a single income record owned by a user.
type Income struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	Description string
	Source      string
	Date        time.Time
	CreatedAt   time.Time
}

// Expense represents a single expense record owned by a user.
type Expense struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	Category    Category
	Description string
	Date        time.Time
	CreatedAt   time.Time
}
