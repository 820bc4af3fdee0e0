package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/paisavault/paisavault/internal/domain"
	"github.com/paisavault/paisavault/internal/usecase"
)

// NotebookEntryResponse represents a lend/borrow entry in API responses.
// Field names mirror the persisted collection format.
type NotebookEntryResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	PersonName  string          `json:"personName"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note,omitempty"`
	Date        time.Time       `json:"date"`
	Settled     bool            `json:"settled"`
	SettledDate *time.Time      `json:"settledDate,omitempty"`
}

// NotebookEntryFromDomain converts a domain entry to a response.
func NotebookEntryFromDomain(e domain.NotebookEntry) *NotebookEntryResponse {
	return &NotebookEntryResponse{
		ID:          e.ID,
		Type:        string(e.Direction),
		PersonName:  e.CounterpartyName,
		Amount:      e.Amount,
		Note:        e.Note,
		Date:        e.OpenedDate,
		Settled:     e.Settled,
		SettledDate: e.SettledDate,
	}
}

// NotebookEntriesFromDomain converts domain entries to responses.
func NotebookEntriesFromDomain(entries []domain.NotebookEntry) []*NotebookEntryResponse {
	result := make([]*NotebookEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = NotebookEntryFromDomain(e)
	}
	return result
}

// NotebookResponse is the full notebook view: the collection split by
// settlement state plus the outstanding totals over pending entries.
type NotebookResponse struct {
	Pending       []*NotebookEntryResponse `json:"pending"`
	Settled       []*NotebookEntryResponse `json:"settled"`
	TotalLent     decimal.Decimal          `json:"total_lent"`
	TotalBorrowed decimal.Decimal          `json:"total_borrowed"`
}

// NotebookFromDomain assembles the notebook view from a collection snapshot.
func NotebookFromDomain(entries []domain.NotebookEntry) *NotebookResponse {
	split := domain.SplitByStatus(entries)
	totals := domain.ComputeOutstandingTotals(split.Pending)

	return &NotebookResponse{
		Pending:       NotebookEntriesFromDomain(split.Pending),
		Settled:       NotebookEntriesFromDomain(split.Settled),
		TotalLent:     totals.TotalLent,
		TotalBorrowed: totals.TotalBorrowed,
	}
}

// IncomeResponse represents an income record in API responses.
type IncomeResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Source      string          `json:"source"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// IncomeFromDomain converts a domain income record to a response.
func IncomeFromDomain(i *domain.Income) *IncomeResponse {
	return &IncomeResponse{
		ID:          i.ID,
		Amount:      i.Amount,
		Description: i.Description,
		Source:      i.Source,
		Date:        i.Date,
		CreatedAt:   i.CreatedAt,
	}
}

// IncomeListFromDomain converts domain income records to responses.
func IncomeListFromDomain(records []*domain.Income) []*IncomeResponse {
	result := make([]*IncomeResponse, len(records))
	for i, r := range records {
		result[i] = IncomeFromDomain(r)
	}
	return result
}

// ExpenseResponse represents an expense record in API responses.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseFromDomain converts a domain expense record to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Category:    string(e.Category),
		Description: e.Description,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}

// ExpensesFromDomain converts domain expense records to responses.
func ExpensesFromDomain(records []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(records))
	for i, e := range records {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// CategorySliceResponse is one category's share of total expenses.
type CategorySliceResponse struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage int64           `json:"percentage"`
}

// SummaryResponse represents the dashboard summary in API responses.
type SummaryResponse struct {
	TotalIncome     decimal.Decimal          `json:"total_income"`
	TotalExpenses   decimal.Decimal          `json:"total_expenses"`
	Balance         decimal.Decimal          `json:"balance"`
	Categories      []*CategorySliceResponse `json:"categories"`
	MonthToDate     decimal.Decimal          `json:"month_to_date"`
	TotalLent       decimal.Decimal          `json:"total_lent"`
	TotalBorrowed   decimal.Decimal          `json:"total_borrowed"`
	PendingCount    int                      `json:"pending_count"`
	SettledCount    int                      `json:"settled_count"`
	MonthlyBudget   decimal.Decimal          `json:"monthly_budget"`
	BudgetRemaining decimal.Decimal          `json:"budget_remaining"`
	GeneratedAt     time.Time                `json:"generated_at"`
}

// SummaryFromUseCase converts a dashboard summary to a response.
func SummaryFromUseCase(s *usecase.DashboardSummary) *SummaryResponse {
	categories := make([]*CategorySliceResponse, len(s.Categories))
	for i, c := range s.Categories {
		categories[i] = &CategorySliceResponse{
			Category:   string(c.Category),
			Amount:     c.Amount,
			Percentage: c.Percentage,
		}
	}

	return &SummaryResponse{
		TotalIncome:     s.TotalIncome,
		TotalExpenses:   s.TotalExpenses,
		Balance:         s.Balance,
		Categories:      categories,
		MonthToDate:     s.MonthToDate,
		TotalLent:       s.TotalLent,
		TotalBorrowed:   s.TotalBorrowed,
		PendingCount:    s.PendingCount,
		SettledCount:    s.SettledCount,
		MonthlyBudget:   s.MonthlyBudget,
		BudgetRemaining: s.BudgetRemaining,
		GeneratedAt:     s.GeneratedAt,
	}
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	DisplayName   string          `json:"display_name"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	CreatedAt     time.Time       `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		MonthlyBudget: u.MonthlyBudget,
		CreatedAt:     u.CreatedAt,
	}
}

// AuthResponse carries a signed token and the authenticated user.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// AuditLogResponse represents one audit trail record in API responses.
type AuditLogResponse struct {
	ID          string      `json:"id"`
	Action      string      `json:"action"`
	ResourceID  string      `json:"resource_id"`
	BeforeState domain.JSON `json:"before_state,omitempty"`
	AfterState  domain.JSON `json:"after_state,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:          l.ID,
			Action:      l.Action,
			ResourceID:  l.ResourceID,
			BeforeState: l.BeforeState,
			AfterState:  l.AfterState,
			CreatedAt:   l.CreatedAt,
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
