package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/paisavault/paisavault/internal/domain"
	"github.com/paisavault/paisavault/internal/usecase"
)

// AddNotebookEntryRequest represents a request to add a lend/borrow entry.
// Field names mirror the persisted collection format.
type AddNotebookEntryRequest struct {
	Type       string          `json:"type"`
	PersonName string          `json:"personName"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
	Date       *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddNotebookEntryRequest) ToUseCaseInput() usecase.AddEntryInput {
	return usecase.AddEntryInput{
		Direction:        domain.Direction(r.Type),
		CounterpartyName: r.PersonName,
		Amount:           r.Amount,
		Note:             r.Note,
		OpenedDate:       r.Date,
	}
}

// CreateIncomeRequest represents a request to record income.
type CreateIncomeRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Source      string          `json:"source,omitempty"`
	Date        time.Time       `json:"date"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateIncomeRequest) ToUseCaseInput(userID string) usecase.CreateIncomeInput {
	return usecase.CreateIncomeInput{
		UserID:      userID,
		Amount:      r.Amount,
		Description: r.Description,
		Source:      r.Source,
		Date:        r.Date,
	}
}

// UpdateIncomeRequest represents a partial income update. Absent fields are
// left unchanged.
type UpdateIncomeRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Source      *string          `json:"source,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateIncomeRequest) ToUseCaseInput(userID, id string) usecase.UpdateIncomeInput {
	return usecase.UpdateIncomeInput{
		ID:          id,
		UserID:      userID,
		Amount:      r.Amount,
		Description: r.Description,
		Source:      r.Source,
		Date:        r.Date,
	}
}

// CreateExpenseRequest represents a request to record an expense.
type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput(userID string) usecase.CreateExpenseInput {
	return usecase.CreateExpenseInput{
		UserID:      userID,
		Amount:      r.Amount,
		Category:    domain.Category(r.Category),
		Description: r.Description,
		Date:        r.Date,
	}
}

// UpdateExpenseRequest represents a partial expense update. Absent fields
// are left unchanged.
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateExpenseRequest) ToUseCaseInput(userID, id string) usecase.UpdateExpenseInput {
	input := usecase.UpdateExpenseInput{
		ID:          id,
		UserID:      userID,
		Amount:      r.Amount,
		Description: r.Description,
		Date:        r.Date,
	}
	if r.Category != nil {
		category := domain.Category(*r.Category)
		input.Category = &category
	}
	return input
}

// RegisterRequest represents a request to create a user account.
type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:       r.Email,
		DisplayName: r.DisplayName,
		Password:    r.Password,
	}
}

// LoginRequest represents a login attempt.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// UpdateProfileRequest represents a partial profile update.
type UpdateProfileRequest struct {
	DisplayName   *string          `json:"display_name,omitempty"`
	MonthlyBudget *decimal.Decimal `json:"monthly_budget,omitempty"`
	Password      *string          `json:"password,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateProfileRequest) ToUseCaseInput(userID string) usecase.UpdateProfileInput {
	return usecase.UpdateProfileInput{
		ID:            userID,
		DisplayName:   r.DisplayName,
		MonthlyBudget: r.MonthlyBudget,
		Password:      r.Password,
	}
}
