package domain

import (
	"encoding/json"
	"time"
)

// AuditLog records a single data mutation for history and debugging. The
// notebook keeps only the latest settlement state on each entry; past
// settlement toggles are reconstructable from this trail.
type AuditLog struct {
	ID           string
	UserID       string // Who performed the action
	Action       string // What action (notebook.add, expense.create, etc.)
	ResourceType string // Type of resource (notebook_entry, income, expense)
	ResourceID   string // ID of the resource
	RequestID    string // Request ID for tracing
	BeforeState  JSON   // State before the action
	AfterState   JSON   // State after the action
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	// Notebook actions
	AuditActionNotebookAdd    AuditAction = "notebook.add"
	AuditActionNotebookToggle AuditAction = "notebook.toggle"
	AuditActionNotebookRemove AuditAction = "notebook.remove"

	// Transaction actions
	AuditActionIncomeCreate  AuditAction = "income.create"
	AuditActionIncomeUpdate  AuditAction = "income.update"
	AuditActionIncomeDelete  AuditAction = "income.delete"
	AuditActionExpenseCreate AuditAction = "expense.create"
	AuditActionExpenseUpdate AuditAction = "expense.update"
	AuditActionExpenseDelete AuditAction = "expense.delete"
)

// Resource types
const (
	ResourceTypeNotebookEntry = "notebook_entry"
	ResourceTypeIncome        = "income"
	ResourceTypeExpense       = "expense"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs
type AuditFilter struct {
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}
