package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/paisavault/paisavault/internal/domain"
	"github.com/paisavault/paisavault/internal/usecase"
	"github.com/paisavault/paisavault/internal/usecase/mocks"
)

type incomeFixture struct {
	repo    *mocks.MockIncomeRepository
	audit   *mocks.MockAuditRepository
	cache   *mocks.MockCache
	idGen   *mocks.MockIDGenerator
	retrier *mocks.MockRetrier
	uc      *usecase.IncomeUseCase
}

func newIncomeFixture(ctrl *gomock.Controller) *incomeFixture {
	f := &incomeFixture{
		repo:    mocks.NewMockIncomeRepository(ctrl),
		audit:   mocks.NewMockAuditRepository(ctrl),
		cache:   mocks.NewMockCache(ctrl),
		idGen:   mocks.NewMockIDGenerator(ctrl),
		retrier: mocks.NewMockRetrier(ctrl),
	}
	f.uc = usecase.NewIncomeUseCase(f.repo, f.audit, f.cache, f.idGen, f.retrier, zerolog.Nop())
	return f
}

func (f *incomeFixture) passThroughRetry() {
	f.retrier.EXPECT().Retry(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, operation func() error) error {
			return operation()
		},
	).AnyTimes()
}

func (f *incomeFixture) expectAfterMutation() {
	f.cache.EXPECT().Delete(gomock.Any(), "summary:user-1").Return(nil)
	f.audit.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
}

func TestIncomeUseCase_CreateIncome(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newIncomeFixture(ctrl)
	f.passThroughRetry()
	f.idGen.EXPECT().Generate().Return("inc-1")
	f.idGen.EXPECT().Generate().Return("audit-1")
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.expectAfterMutation()

	income, err := f.uc.CreateIncome(context.Background(), usecase.CreateIncomeInput{
		UserID:      "user-1",
		Amount:      decimal.NewFromInt(15000),
		Description: "Monthly allowance",
		Source:      "Parents",
		Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if income.ID != "inc-1" {
		t.Errorf("expected id inc-1, got %s", income.ID)
	}
	if income.Source != "Parents" {
		t.Errorf("expected source Parents, got %s", income.Source)
	}
}

func TestIncomeUseCase_CreateIncomeDefaultsSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newIncomeFixture(ctrl)
	f.passThroughRetry()
	f.idGen.EXPECT().Generate().Return("inc-1")
	f.idGen.EXPECT().Generate().Return("audit-1")
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.expectAfterMutation()

	income, err := f.uc.CreateIncome(context.Background(), usecase.CreateIncomeInput{
		UserID: "user-1",
		Amount: decimal.NewFromInt(2000),
		Date:   time.Now(),
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if income.Source != domain.DefaultIncomeSource {
		t.Errorf("expected default source, got %s", income.Source)
	}
}

func TestIncomeUseCase_CreateIncomeInvalidAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newIncomeFixture(ctrl)

	_, err := f.uc.CreateIncome(context.Background(), usecase.CreateIncomeInput{
		UserID: "user-1",
		Amount: decimal.NewFromInt(-100),
	})

	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestIncomeUseCase_UpdateIncomeOwnershipCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newIncomeFixture(ctrl)
	f.repo.EXPECT().GetByID(gomock.Any(), "inc-1").Return(&domain.Income{
		ID:     "inc-1",
		UserID: "someone-else",
		Amount: decimal.NewFromInt(100),
	}, nil)

	newAmount := decimal.NewFromInt(200)
	_, err := f.uc.UpdateIncome(context.Background(), usecase.UpdateIncomeInput{
		ID:     "inc-1",
		UserID: "user-1",
		Amount: &newAmount,
	})

	if !errors.Is(err, domain.ErrIncomeNotFound) {
		t.Fatalf("expected ErrIncomeNotFound for foreign record, got %v", err)
	}
}

func TestIncomeUseCase_UpdateIncomePartial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newIncomeFixture(ctrl)
	f.passThroughRetry()
	f.repo.EXPECT().GetByID(gomock.Any(), "inc-1").Return(&domain.Income{
		ID:          "inc-1",
		UserID:      "user-1",
		Amount:      decimal.NewFromInt(100),
		Description: "old",
		Source:      "Parents",
	}, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	f.idGen.EXPECT().Generate().Return("audit-1")
	f.expectAfterMutation()

	newAmount := decimal.NewFromInt(250)
	income, err := f.uc.UpdateIncome(context.Background(), usecase.UpdateIncomeInput{
		ID:     "inc-1",
		UserID: "user-1",
		Amount: &newAmount,
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !income.Amount.Equal(newAmount) {
		t.Errorf("expected amount 250, got %s", income.Amount)
	}
	if income.Description != "old" {
		t.Errorf("untouched fields must survive, got description %q", income.Description)
	}
}

func TestIncomeUseCase_DeleteIncome(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newIncomeFixture(ctrl)
	f.passThroughRetry()
	f.repo.EXPECT().GetByID(gomock.Any(), "inc-1").Return(&domain.Income{
		ID:     "inc-1",
		UserID: "user-1",
		Amount: decimal.NewFromInt(100),
	}, nil)
	f.repo.EXPECT().Delete(gomock.Any(), "inc-1").Return(nil)
	f.idGen.EXPECT().Generate().Return("audit-1")
	f.expectAfterMutation()

	if err := f.uc.DeleteIncome(context.Background(), "user-1", "inc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIncomeUseCase_ListIncomeClampsPagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newIncomeFixture(ctrl)
	f.repo.EXPECT().ListByUser(gomock.Any(), "user-1", 50, 0).Return([]*domain.Income{}, nil)

	if _, err := f.uc.ListIncome(context.Background(), usecase.ListIncomeInput{
		UserID: "user-1",
		Limit:  0,
		Offset: -3,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
