package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/paisavault/paisavault/internal/domain"
)

func newNotebookForTest(store NotebookStore) *NotebookUseCase {
	return NewNotebookUseCase(store, nil, nil, &seqIDGenerator{}, zerolog.Nop(), nil)
}

func TestNotebookUseCase_AddAndLoad(t *testing.T) {
	store := newFakeNotebookStore()
	uc := newNotebookForTest(store)
	ctx := context.Background()

	entry, err := uc.Add(ctx, "user-1", AddEntryInput{
		Direction:        domain.DirectionLend,
		CounterpartyName: "Asha",
		Amount:           decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry == nil {
		t.Fatal("expected entry, got nil")
	}
	if entry.Settled {
		t.Error("new entry should start pending")
	}
	if entry.ID == "" {
		t.Error("expected generated id")
	}

	entries := uc.Load(ctx, "user-1")
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].CounterpartyName != "Asha" {
		t.Errorf("expected counterparty Asha, got %q", entries[0].CounterpartyName)
	}
}

func TestNotebookUseCase_AddPrepends(t *testing.T) {
	store := newFakeNotebookStore()
	uc := newNotebookForTest(store)
	ctx := context.Background()

	first, _ := uc.Add(ctx, "user-1", AddEntryInput{
		Direction:        domain.DirectionLend,
		CounterpartyName: "Asha",
		Amount:           decimal.NewFromInt(500),
	})
	second, _ := uc.Add(ctx, "user-1", AddEntryInput{
		Direction:        domain.DirectionBorrow,
		CounterpartyName: "Raj",
		Amount:           decimal.NewFromInt(200),
	})

	entries := uc.Load(ctx, "user-1")
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != second.ID || entries[1].ID != first.ID {
		t.Error("expected newest entry first")
	}
}

func TestNotebookUseCase_OutstandingScenario(t *testing.T) {
	store := newFakeNotebookStore()
	uc := newNotebookForTest(store)
	ctx := context.Background()

	lend, err := uc.Add(ctx, "user-1", AddEntryInput{
		Direction:        domain.DirectionLend,
		CounterpartyName: "Asha",
		Amount:           decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	totals := outstanding(uc.Load(ctx, "user-1"))
	if !totals.TotalLent.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected lent 500, got %s", totals.TotalLent)
	}

	if _, err := uc.ToggleSettled(ctx, "user-1", lend.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	totals = outstanding(uc.Load(ctx, "user-1"))
	if !totals.TotalLent.IsZero() {
		t.Errorf("expected lent 0 after settlement, got %s", totals.TotalLent)
	}

	borrow, err := uc.Add(ctx, "user-1", AddEntryInput{
		Direction:        domain.DirectionBorrow,
		CounterpartyName: "Raj",
		Amount:           decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	totals = outstanding(uc.Load(ctx, "user-1"))
	if !totals.TotalBorrowed.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected borrowed 200, got %s", totals.TotalBorrowed)
	}

	removed, err := uc.Remove(ctx, "user-1", borrow.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !removed {
		t.Fatal("expected removal")
	}
	totals = outstanding(uc.Load(ctx, "user-1"))
	if !totals.TotalBorrowed.IsZero() {
		t.Errorf("expected borrowed 0 after removal, got %s", totals.TotalBorrowed)
	}
}

func TestNotebookUseCase_ToggleSetsAndClearsSettledDate(t *testing.T) {
	store := newFakeNotebookStore()
	uc := newNotebookForTest(store)
	ctx := context.Background()

	entry, _ := uc.Add(ctx, "user-1", AddEntryInput{
		Direction:        domain.DirectionLend,
		CounterpartyName: "Asha",
		Amount:           decimal.NewFromInt(500),
	})

	settled, err := uc.ToggleSettled(ctx, "user-1", entry.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !settled.Settled || settled.SettledDate == nil {
		t.Fatal("expected settled entry with settlement date")
	}

	pending, err := uc.ToggleSettled(ctx, "user-1", entry.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pending.Settled || pending.SettledDate != nil {
		t.Fatal("expected pending entry without settlement date after second toggle")
	}
}

func TestNotebookUseCase_AddValidation(t *testing.T) {
	tests := []struct {
		name  string
		input AddEntryInput
	}{
		{
			name: "invalid direction",
			input: AddEntryInput{
				Direction:        "gift",
				CounterpartyName: "Asha",
				Amount:           decimal.NewFromInt(500),
			},
		},
		{
			name: "empty counterparty",
			input: AddEntryInput{
				Direction: domain.DirectionLend,
				Amount:    decimal.NewFromInt(500),
			},
		},
		{
			name: "zero amount",
			input: AddEntryInput{
				Direction:        domain.DirectionLend,
				CounterpartyName: "Asha",
				Amount:           decimal.Zero,
			},
		},
		{
			name: "negative amount",
			input: AddEntryInput{
				Direction:        domain.DirectionBorrow,
				CounterpartyName: "Raj",
				Amount:           decimal.NewFromInt(-5),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeNotebookStore()
			uc := newNotebookForTest(store)

			if _, err := uc.Add(context.Background(), "user-1", tt.input); err == nil {
				t.Fatal("expected validation error")
			}
			if store.setCalls != 0 {
				t.Error("invalid input must not be persisted")
			}
		})
	}
}

func TestNotebookUseCase_EmptyUserIDIsNoOp(t *testing.T) {
	store := newFakeNotebookStore()
	uc := newNotebookForTest(store)
	ctx := context.Background()

	entry, err := uc.Add(ctx, "", AddEntryInput{
		Direction:        domain.DirectionLend,
		CounterpartyName: "Asha",
		Amount:           decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry != nil {
		t.Error("expected nil entry for anonymous add")
	}

	if toggled, err := uc.ToggleSettled(ctx, "", "some-id"); err != nil || toggled != nil {
		t.Errorf("expected silent no-op, got (%v, %v)", toggled, err)
	}
	if removed, err := uc.Remove(ctx, "", "some-id"); err != nil || removed {
		t.Errorf("expected silent no-op, got (%v, %v)", removed, err)
	}
	if got := uc.Load(ctx, ""); len(got) != 0 {
		t.Errorf("expected empty collection, got %d entries", len(got))
	}
	if store.setCalls != 0 {
		t.Error("anonymous operations must not touch the store")
	}
}

func TestNotebookUseCase_AbsentIDIsNoOp(t *testing.T) {
	store := newFakeNotebookStore()
	uc := newNotebookForTest(store)
	ctx := context.Background()

	uc.Add(ctx, "user-1", AddEntryInput{
		Direction:        domain.DirectionLend,
		CounterpartyName: "Asha",
		Amount:           decimal.NewFromInt(500),
	})

	toggled, err := uc.ToggleSettled(ctx, "user-1", "no-such-id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toggled != nil {
		t.Error("expected nil for absent id")
	}

	removed, err := uc.Remove(ctx, "user-1", "no-such-id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Error("expected no removal for absent id")
	}

	if got := uc.Load(ctx, "user-1"); len(got) != 1 {
		t.Errorf("collection should be untouched, got %d entries", len(got))
	}
}

func TestNotebookUseCase_CorruptDataLoadsEmpty(t *testing.T) {
	store := newFakeNotebookStore()
	store.data["user-1"] = []byte("{not json")
	uc := newNotebookForTest(store)

	entries := uc.Load(context.Background(), "user-1")
	if len(entries) != 0 {
		t.Fatalf("expected empty collection for corrupt data, got %d", len(entries))
	}
}

func TestNotebookUseCase_ReadFailureLoadsEmpty(t *testing.T) {
	store := newFakeNotebookStore()
	store.getErr = errors.New("store down")
	uc := newNotebookForTest(store)

	entries := uc.Load(context.Background(), "user-1")
	if len(entries) != 0 {
		t.Fatalf("expected empty collection on read failure, got %d", len(entries))
	}
}

func TestNotebookUseCase_WriteFailureDoesNotError(t *testing.T) {
	store := newFakeNotebookStore()
	store.setErr = errors.New("store down")
	uc := newNotebookForTest(store)

	entry, err := uc.Add(context.Background(), "user-1", AddEntryInput{
		Direction:        domain.DirectionLend,
		CounterpartyName: "Asha",
		Amount:           decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("write failures must degrade gracefully, got %v", err)
	}
	if entry == nil {
		t.Fatal("expected the constructed entry back even when persistence failed")
	}
}

func TestNotebookUseCase_CollectionsAreIsolatedPerUser(t *testing.T) {
	store := newFakeNotebookStore()
	uc := newNotebookForTest(store)
	ctx := context.Background()

	uc.Add(ctx, "user-1", AddEntryInput{
		Direction:        domain.DirectionLend,
		CounterpartyName: "Asha",
		Amount:           decimal.NewFromInt(500),
	})

	if got := uc.Load(ctx, "user-2"); len(got) != 0 {
		t.Errorf("expected user-2 collection empty, got %d entries", len(got))
	}
}

func outstanding(entries []domain.NotebookEntry) domain.OutstandingTotals {
	split := domain.SplitByStatus(entries)
	return domain.ComputeOutstandingTotals(split.Pending)
}

type fakeNotebookStore struct {
	data     map[string][]byte
	getErr   error
	setErr   error
	setCalls int
}

func newFakeNotebookStore() *fakeNotebookStore {
	return &fakeNotebookStore{data: make(map[string][]byte)}
}

func (s *fakeNotebookStore) Get(ctx context.Context, userID string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.data[userID], nil
}

func (s *fakeNotebookStore) Set(ctx context.Context, userID string, value []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.setCalls++
	s.data[userID] = value
	return nil
}

func (s *fakeNotebookStore) Delete(ctx context.Context, userID string) error {
	delete(s.data, userID)
	return nil
}

type seqIDGenerator struct {
	n int
}

func (g *seqIDGenerator) Generate() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}
