package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// The functions in this file are the aggregation engine: stateless
// derivations over collection snapshots, recomputed on every read. They hold
// no shared state and produce identical output for identical input.

// StatusSplit partitions notebook entries by settlement state.
type StatusSplit struct {
	Pending []NotebookEntry
	Settled []NotebookEntry
}

// SplitByStatus partitions entries by the settled flag, preserving the input
// order within each partition.
func SplitByStatus(entries []NotebookEntry) StatusSplit {
	split := StatusSplit{
		Pending: []NotebookEntry{},
		Settled: []NotebookEntry{},
	}

	for _, e := range entries {
		if e.Settled {
			split.Settled = append(split.Settled, e)
		} else {
			split.Pending = append(split.Pending, e)
		}
	}

	return split
}

// OutstandingTotals holds the pending lend/borrow sums.
type OutstandingTotals struct {
	TotalLent     decimal.Decimal
	TotalBorrowed decimal.Decimal
}

// ComputeOutstandingTotals sums pending entry amounts per direction. Settled
// entries must not be passed in; callers split first.
func ComputeOutstandingTotals(pending []NotebookEntry) OutstandingTotals {
	totals := OutstandingTotals{
		TotalLent:     decimal.Zero,
		TotalBorrowed: decimal.Zero,
	}

	for _, e := range pending {
		switch e.Direction {
		case DirectionLend:
			totals.TotalLent = totals.TotalLent.Add(e.Amount)
		case DirectionBorrow:
			totals.TotalBorrowed = totals.TotalBorrowed.Add(e.Amount)
		}
	}

	return totals
}

// CategorySlice is one category's share of total expenses.
type CategorySlice struct {
	Category   Category
	Amount     decimal.Decimal
	Percentage int64
}

// CategoryBreakdown groups expenses by category in first-occurrence order
// and computes each category's rounded percentage of the total. A zero total
// yields zero percentages.
func CategoryBreakdown(expenses []Expense) []CategorySlice {
	slices := []CategorySlice{}
	index := map[Category]int{}
	total := decimal.Zero

	for _, e := range expenses {
		if i, ok := index[e.Category]; ok {
			slices[i].Amount = slices[i].Amount.Add(e.Amount)
		} else {
			index[e.Category] = len(slices)
			slices = append(slices, CategorySlice{
				Category: e.Category,
				Amount:   e.Amount,
			})
		}
		total = total.Add(e.Amount)
	}

	if total.IsZero() {
		return slices
	}

	hundred := decimal.NewFromInt(100)
	for i := range slices {
		slices[i].Percentage = slices[i].Amount.Mul(hundred).Div(total).Round(0).IntPart()
	}

	return slices
}

// MonthToDateTotal sums expenses whose date falls in the same calendar month
// and year as the reference date, evaluated in the reference date's location.
func MonthToDateTotal(expenses []Expense, ref time.Time) decimal.Decimal {
	total := decimal.Zero

	for _, e := range expenses {
		d := e.Date.In(ref.Location())
		if d.Year() == ref.Year() && d.Month() == ref.Month() {
			total = total.Add(e.Amount)
		}
	}

	return total
}

// AccountTotals holds overall income/expense sums and their balance.
type AccountTotals struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
}

// ComputeAccountTotals sums income and expenses. The balance is not floored
// at zero and may go negative.
func ComputeAccountTotals(income []Income, expenses []Expense) AccountTotals {
	totals := AccountTotals{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, i := range income {
		totals.TotalIncome = totals.TotalIncome.Add(i.Amount)
	}
	for _, e := range expenses {
		totals.TotalExpenses = totals.TotalExpenses.Add(e.Amount)
	}

	totals.Balance = totals.TotalIncome.Sub(totals.TotalExpenses)

	return totals
}
