package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/paisavault/paisavault/internal/domain"
)

// IncomeUseCase handles income record business logic.
type IncomeUseCase struct {
	incomeRepo IncomeRepository
	auditRepo  AuditRepository
	cache      Cache
	idGen      IDGenerator
	retrier    Retrier
	logger     zerolog.Logger
}

// NewIncomeUseCase creates a new IncomeUseCase.
func NewIncomeUseCase(incomeRepo IncomeRepository, auditRepo AuditRepository, cache Cache, idGen IDGenerator, retrier Retrier, logger zerolog.Logger) *IncomeUseCase {
	return &IncomeUseCase{
		incomeRepo: incomeRepo,
		auditRepo:  auditRepo,
		cache:      cache,
		idGen:      idGen,
		retrier:    retrier,
		logger:     logger,
	}
}

// CreateIncomeInput represents input for creating an income record.
type CreateIncomeInput struct {
	UserID      string
	Amount      decimal.Decimal
	Description string
	Source      string
	Date        time.Time
}

// CreateIncome validates and stores a new income record. An empty source
// falls back to the default label.
func (uc *IncomeUseCase) CreateIncome(ctx context.Context, input CreateIncomeInput) (*domain.Income, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	source := input.Source
	if source == "" {
		source = domain.DefaultIncomeSource
	}

	income := &domain.Income{
		ID:          uc.idGen.Generate(),
		UserID:      input.UserID,
		Amount:      input.Amount,
		Description: input.Description,
		Source:      source,
		Date:        input.Date,
		CreatedAt:   time.Now().UTC(),
	}

	err := uc.retrier.Retry(ctx, func() error {
		return uc.incomeRepo.Create(ctx, income)
	})
	if err != nil {
		return nil, err
	}

	uc.afterMutation(ctx, input.UserID, domain.AuditActionIncomeCreate, income.ID, nil, domain.MarshalState(income))

	return income, nil
}

// ListIncomeInput represents input for listing income records.
type ListIncomeInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListIncome lists a user's income records, most recent first.
func (uc *IncomeUseCase) ListIncome(ctx context.Context, input ListIncomeInput) ([]*domain.Income, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.incomeRepo.ListByUser(ctx, input.UserID, limit, offset)
}

// UpdateIncomeInput represents input for updating an income record. Nil
// fields are left unchanged.
type UpdateIncomeInput struct {
	ID          string
	UserID      string
	Amount      *decimal.Decimal
	Description *string
	Source      *string
	Date        *time.Time
}

// UpdateIncome updates an income record owned by the user.
func (uc *IncomeUseCase) UpdateIncome(ctx context.Context, input UpdateIncomeInput) (*domain.Income, error) {
	income, err := uc.incomeRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	// Records are scoped to their owner; someone else's id reads as absent.
	if income.UserID != input.UserID {
		return nil, domain.ErrIncomeNotFound
	}

	before := domain.MarshalState(income)

	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
		income.Amount = *input.Amount
	}
	if input.Description != nil {
		if err := domain.ValidateDescription(*input.Description); err != nil {
			return nil, err
		}
		income.Description = *input.Description
	}
	if input.Source != nil {
		income.Source = *input.Source
		if income.Source == "" {
			income.Source = domain.DefaultIncomeSource
		}
	}
	if input.Date != nil {
		income.Date = *input.Date
	}

	err = uc.retrier.Retry(ctx, func() error {
		return uc.incomeRepo.Update(ctx, income)
	})
	if err != nil {
		return nil, err
	}

	uc.afterMutation(ctx, input.UserID, domain.AuditActionIncomeUpdate, income.ID, before, domain.MarshalState(income))

	return income, nil
}

// DeleteIncome deletes an income record owned by the user.
func (uc *IncomeUseCase) DeleteIncome(ctx context.Context, userID, id string) error {
	income, err := uc.incomeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if income.UserID != userID {
		return domain.ErrIncomeNotFound
	}

	err = uc.retrier.Retry(ctx, func() error {
		return uc.incomeRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.afterMutation(ctx, userID, domain.AuditActionIncomeDelete, id, domain.MarshalState(income), nil)

	return nil
}

func (uc *IncomeUseCase) afterMutation(ctx context.Context, userID string, action domain.AuditAction, resourceID string, before, after domain.JSON) {
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
		ResourceType: domain.ResourceTypeIncome,
		ResourceID:   resourceID,
		BeforeState:  before,
		AfterState:   after,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.auditRepo.Create(ctx, log); err != nil {
		uc.logger.Warn().Err(err).Str("action", string(action)).Msg("audit write failed")
	}
}
