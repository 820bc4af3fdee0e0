package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/paisavault/paisavault/internal/domain"
	"github.com/paisavault/paisavault/internal/infrastructure/metrics"
)

// SummaryUseCase assembles the dashboard summary. All derived values are
// recomputed from full collection snapshots through the pure aggregation
// functions in domain; the cache only memoizes the finished summary and is
// invalidated by every mutation.
type SummaryUseCase struct {
	incomeRepo  IncomeRepository
	expenseRepo ExpenseRepository
	userRepo    UserRepository
	notebook    *NotebookUseCase
	cache       Cache
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewSummaryUseCase creates a new SummaryUseCase. metrics may be nil.
func NewSummaryUseCase(incomeRepo IncomeRepository, expenseRepo ExpenseRepository, userRepo UserRepository, notebook *NotebookUseCase, cache Cache, logger zerolog.Logger, m *metrics.Metrics) *SummaryUseCase {
	return &SummaryUseCase{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		notebook:    notebook,
		cache:       cache,
		logger:      logger,
		metrics:     m,
	}
}

// DashboardSummary is the full derived view for one user.
type DashboardSummary struct {
	TotalIncome     decimal.Decimal        `json:"total_income"`
	TotalExpenses   decimal.Decimal        `json:"total_expenses"`
	Balance         decimal.Decimal        `json:"balance"`
	Categories      []domain.CategorySlice `json:"categories"`
	MonthToDate     decimal.Decimal        `json:"month_to_date"`
	TotalLent       decimal.Decimal        `json:"total_lent"`
	TotalBorrowed   decimal.Decimal        `json:"total_borrowed"`
	PendingCount    int                    `json:"pending_count"`
	SettledCount    int                    `json:"settled_count"`
	MonthlyBudget   decimal.Decimal        `json:"monthly_budget"`
	BudgetRemaining decimal.Decimal        `json:"budget_remaining"`
	GeneratedAt     time.Time              `json:"generated_at"`
}

// GetDashboard returns the dashboard summary for a user, computed against
// the reference date's calendar month.
func (uc *SummaryUseCase) GetDashboard(ctx context.Context, userID string, ref time.Time) (*DashboardSummary, error) {
	if cached := uc.fromCache(ctx, userID); cached != nil {
		uc.countLookup("hit")
		return cached, nil
	}
	uc.countLookup("miss")

	start := time.Now()

	income, err := uc.incomeRepo.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.expenseRepo.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	incomeVals := make([]domain.Income, len(income))
	for i, r := range income {
		incomeVals[i] = *r
	}
	expenseVals := make([]domain.Expense, len(expenses))
	for i, r := range expenses {
		expenseVals[i] = *r
	}

	totals := domain.ComputeAccountTotals(incomeVals, expenseVals)
	monthToDate := domain.MonthToDateTotal(expenseVals, ref)

	split := domain.SplitByStatus(uc.notebook.Load(ctx, userID))
	outstanding := domain.ComputeOutstandingTotals(split.Pending)

	summary := &DashboardSummary{
		TotalIncome:   totals.TotalIncome,
		TotalExpenses: totals.TotalExpenses,
		Balance:       totals.Balance,
		Categories:    domain.CategoryBreakdown(expenseVals),
		MonthToDate:   monthToDate,
		TotalLent:     outstanding.TotalLent,
		TotalBorrowed: outstanding.TotalBorrowed,
		PendingCount:  len(split.Pending),
		SettledCount:  len(split.Settled),
		GeneratedAt:   time.Now().UTC(),
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		// Budget is decoration on the summary; a failed profile read does
		// not block the totals.
		uc.logger.Warn().Err(err).Str("user_id", userID).Msg("profile read failed, omitting budget")
	} else if user.MonthlyBudget.IsPositive() {
		summary.MonthlyBudget = user.MonthlyBudget
		summary.BudgetRemaining = user.MonthlyBudget.Sub(monthToDate)
	}

	uc.toCache(ctx, userID, summary)

	if uc.metrics != nil {
		uc.metrics.SummaryBuildDuration.Observe(time.Since(start).Seconds())
	}

	return summary, nil
}

func (uc *SummaryUseCase) countLookup(result string) {
	if uc.metrics != nil {
		uc.metrics.SummaryLookups.WithLabelValues(result).Inc()
	}
}

func (uc *SummaryUseCase) fromCache(ctx context.Context, userID string) *DashboardSummary {
	if uc.cache == nil {
		return nil
	}

	data, err := uc.cache.Get(ctx, summaryCacheKey(userID))
	if err != nil || data == nil {
		return nil
	}

	var summary DashboardSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		uc.logger.Debug().Err(err).Msg("cached summary unreadable, recomputing")
		return nil
	}

	return &summary
}

func (uc *SummaryUseCase) toCache(ctx context.Context, userID string, summary *DashboardSummary) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, summaryCacheKey(userID), data, SummaryCacheTTL); err != nil {
		uc.logger.Debug().Err(err).Str("user_id", userID).Msg("summary cache write failed")
	}
}
