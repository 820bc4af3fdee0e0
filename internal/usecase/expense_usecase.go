package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/paisavault/paisavault/internal/domain"
)

// ExpenseUseCase handles expense record business logic.
type ExpenseUseCase struct {
	expenseRepo ExpenseRepository
	auditRepo   AuditRepository
	cache       Cache
	idGen       IDGenerator
	retrier     Retrier
	logger      zerolog.Logger
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(expenseRepo ExpenseRepository, auditRepo AuditRepository, cache Cache, idGen IDGenerator, retrier Retrier, logger zerolog.Logger) *ExpenseUseCase {
	return &ExpenseUseCase{
		expenseRepo: expenseRepo,
		auditRepo:   auditRepo,
		cache:       cache,
		idGen:       idGen,
		retrier:     retrier,
		logger:      logger,
	}
}

// CreateExpenseInput represents input for creating an expense record.
type CreateExpenseInput struct {
	UserID      string
	Amount      decimal.Decimal
	Category    domain.Category
	Description string
	Date        time.Time
}

// CreateExpense validates and stores a new expense record.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, input CreateExpenseInput) (*domain.Expense, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateCategory(input.Category); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		ID:          uc.idGen.Generate(),
		UserID:      input.UserID,
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		Date:        input.Date,
		CreatedAt:   time.Now().UTC(),
	}

	err := uc.retrier.Retry(ctx, func() error {
		return uc.expenseRepo.Create(ctx, expense)
	})
	if err != nil {
		return nil, err
	}

	uc.afterMutation(ctx, input.UserID, domain.AuditActionExpenseCreate, expense.ID, nil, domain.MarshalState(expense))

	return expense, nil
}

// ListExpensesInput represents input for listing expense records.
type ListExpensesInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListExpenses lists a user's expense records, most recent first.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, input ListExpensesInput) ([]*domain.Expense, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.expenseRepo.ListByUser(ctx, input.UserID, limit, offset)
}

// UpdateExpenseInput represents input for updating an expense record. Nil
// fields are left unchanged.
type UpdateExpenseInput struct {
	ID          string
	UserID      string
	Amount      *decimal.Decimal
	Category    *domain.Category
	Description *string
	Date        *time.Time
}

// UpdateExpense updates an expense record owned by the user.
func (uc *ExpenseUseCase) UpdateExpense(ctx context.Context, input UpdateExpenseInput) (*domain.Expense, error) {
	expense, err := uc.expenseRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if expense.UserID != input.UserID {
		return nil, domain.ErrExpenseNotFound
	}

	before := domain.MarshalState(expense)

	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
		expense.Amount = *input.Amount
	}
	if input.Category != nil {
		if err := domain.ValidateCategory(*input.Category); err != nil {
			return nil, err
		}
		expense.Category = *input.Category
	}
	if input.Description != nil {
		if err := domain.ValidateDescription(*input.Description); err != nil {
			return nil, err
		}
		expense.Description = *input.Description
	}
	if input.Date != nil {
		expense.Date = *input.Date
	}

	err = uc.retrier.Retry(ctx, func() error {
		return uc.expenseRepo.Update(ctx, expense)
	})
	if err != nil {
		return nil, err
	}

	uc.afterMutation(ctx, input.UserID, domain.AuditActionExpenseUpdate, expense.ID, before, domain.MarshalState(expense))

	return expense, nil
}

// DeleteExpense deletes an expense record owned by the user.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, userID, id string) error {
	expense, err := uc.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense.UserID != userID {
		return domain.ErrExpenseNotFound
	}

	err = uc.retrier.Retry(ctx, func() error {
		return uc.expenseRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.afterMutation(ctx, userID, domain.AuditActionExpenseDelete, id, domain.MarshalState(expense), nil)

	return nil
}

func (uc *ExpenseUseCase) afterMutation(ctx context.Context, userID string, action domain.AuditAction, resourceID string, before, after domain.JSON) {
	if uc.cache != nil {
		if err := uc.cache.Delete(ctx, summaryCacheKey(userID)); err != nil {
			uc.logger.Debug().Err(err).Str("user_id", userID).Msg("summary cache invalidation failed")
		}
	}

	if uc.auditRepo == nil {
		return
	}

	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		UserID:       userID,
		Action:       string(action),
		ResourceType: domain.ResourceTypeExpense,
		ResourceID:   resourceID,
		BeforeState:  before,
		AfterState:   after,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.auditRepo.Create(ctx, log); err != nil {
		uc.logger.Warn().Err(err).Str("action", string(action)).Msg("audit write failed")
	}
}
