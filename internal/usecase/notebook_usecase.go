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

// NotebookUseCase owns a user's lend/borrow collection. Every mutation
// rewrites the whole persisted collection for that user; concurrent sessions
// are not coordinated beyond last write wins.
type NotebookUseCase struct {
	store     NotebookStore
	auditRepo AuditRepository
	cache     Cache
	idGen     IDGenerator
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewNotebookUseCase creates a new NotebookUseCase. metrics may be nil.
func NewNotebookUseCase(store NotebookStore, auditRepo AuditRepository, cache Cache, idGen IDGenerator, logger zerolog.Logger, m *metrics.Metrics) *NotebookUseCase {
	return &NotebookUseCase{
		store:     store,
		auditRepo: auditRepo,
		cache:     cache,
		idGen:     idGen,
		logger:    logger,
		metrics:   m,
	}
}

// Load returns the user's notebook collection, most recent first. A missing,
// unreadable, or corrupt persisted value is treated as "no data" and yields
// an empty collection, never an error. An empty user id likewise yields an
// empty collection.
func (uc *NotebookUseCase) Load(ctx context.Context, userID string) []domain.NotebookEntry {
	if userID == "" {
		return []domain.NotebookEntry{}
	}

	data, err := uc.store.Get(ctx, userID)
	if err != nil {
		uc.logger.Warn().Err(err).Str("user_id", userID).Msg("notebook read failed, treating as empty")
		return []domain.NotebookEntry{}
	}
	if data == nil {
		return []domain.NotebookEntry{}
	}

	var entries []domain.NotebookEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		uc.logger.Warn().Err(err).Str("user_id", userID).Msg("notebook data corrupt, treating as empty")
		return []domain.NotebookEntry{}
	}

	return entries
}

// AddEntryInput represents input for adding a notebook entry.
type AddEntryInput struct {
	Direction        domain.Direction
	CounterpartyName string
	Amount           decimal.Decimal
	Note             string
	OpenedDate       *time.Time
}

// Add validates the input, constructs a new pending entry and prepends it to
// the collection. Without a signed-in user the operation is a no-op.
func (uc *NotebookUseCase) Add(ctx context.Context, userID string, input AddEntryInput) (*domain.NotebookEntry, error) {
	if err := domain.ValidateDirection(input.Direction); err != nil {
		return nil, err
	}
	if err := domain.ValidateCounterpartyName(input.CounterpartyName); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(input.Note); err != nil {
		return nil, err
	}

	if userID == "" {
		return nil, nil
	}

	openedDate := time.Now().UTC().Truncate(24 * time.Hour)
	if input.OpenedDate != nil {
		openedDate = *input.OpenedDate
	}

	entry := domain.NotebookEntry{
		ID:               uc.idGen.Generate(),
		Direction:        input.Direction,
		CounterpartyName: input.CounterpartyName,
		Amount:           input.Amount,
		Note:             input.Note,
		OpenedDate:       openedDate,
		Settled:          false,
	}

	entries := append([]domain.NotebookEntry{entry}, uc.Load(ctx, userID)...)
	uc.persist(ctx, userID, entries)

	uc.audit(ctx, userID, domain.AuditActionNotebookAdd, entry.ID, nil, domain.MarshalState(entry))

	if uc.metrics != nil {
		uc.metrics.NotebookEntriesAdded.Inc()
	}

	return &entry, nil
}

// ToggleSettled flips the settlement state of the entry matching id. When
// the id matches nothing the call is a silent no-op and returns nil; the id
// can only be absent because another session already removed the entry.
func (uc *NotebookUseCase) ToggleSettled(ctx context.Context, userID, id string) (*domain.NotebookEntry, error) {
	if userID == "" {
		return nil, nil
	}

	entries := uc.Load(ctx, userID)

	for i := range entries {
		if entries[i].ID != id {
			continue
		}

		before := domain.MarshalState(entries[i])
		entries[i].ToggleSettled(time.Now().UTC())
		uc.persist(ctx, userID, entries)

		uc.audit(ctx, userID, domain.AuditActionNotebookToggle, id, before, domain.MarshalState(entries[i]))

		if uc.metrics != nil {
			uc.metrics.NotebookToggles.Inc()
		}

		toggled := entries[i]
		return &toggled, nil
	}

	uc.logger.Debug().Str("user_id", userID).Str("entry_id", id).Msg("toggle on absent entry, no-op")

	return nil, nil
}

// Remove deletes the entry matching id. Absent ids are a silent no-op.
// Returns whether an entry was removed.
func (uc *NotebookUseCase) Remove(ctx context.Context, userID, id string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	entries := uc.Load(ctx, userID)

	for i := range entries {
		if entries[i].ID != id {
			continue
		}

		removed := entries[i]
		entries = append(entries[:i], entries[i+1:]...)
		uc.persist(ctx, userID, entries)

		uc.audit(ctx, userID, domain.AuditActionNotebookRemove, id, domain.MarshalState(removed), nil)

		if uc.metrics != nil {
			uc.metrics.NotebookRemovals.Inc()
		}

		return true, nil
	}

	uc.logger.Debug().Str("user_id", userID).Str("entry_id", id).Msg("remove on absent entry, no-op")

	return false, nil
}

// History returns the audit trail for one notebook entry, newest first.
// Every past settlement toggle shows up here even though the entry itself
// only keeps its latest state.
func (uc *NotebookUseCase) History(ctx context.Context, userID, id string) ([]*domain.AuditLog, error) {
	if uc.auditRepo == nil || userID == "" {
		return []*domain.AuditLog{}, nil
	}

	logs, err := uc.auditRepo.GetByResourceID(ctx, domain.ResourceTypeNotebookEntry, id)
	if err != nil {
		return nil, err
	}

	owned := []*domain.AuditLog{}
	for _, log := range logs {
		if log.UserID == userID {
			owned = append(owned, log)
		}
	}

	return owned, nil
}

// persist rewrites the whole collection for the user. Write failures degrade
// gracefully: the caller's view of this request is already updated, but
// nothing is guaranteed to survive until the next successful write. No retry.
func (uc *NotebookUseCase) persist(ctx context.Context, userID string, entries []domain.NotebookEntry) {
	data, err := json.Marshal(entries)
	if err != nil {
		uc.logger.Error().Err(err).Str("user_id", userID).Msg("notebook marshal failed, changes not durable")
		return
	}

	if err := uc.store.Set(ctx, userID, data); err != nil {
		uc.logger.Warn().Err(err).Str("user_id", userID).Msg("notebook write failed, changes not durable")
		return
	}

	uc.invalidateSummary(ctx, userID)
}

func (uc *NotebookUseCase) invalidateSummary(ctx context.Context, userID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, summaryCacheKey(userID)); err != nil {
		uc.logger.Debug().Err(err).Str("user_id", userID).Msg("summary cache invalidation failed")
	}
}

// audit records the mutation in the audit trail. Best effort: the notebook
// mutation itself is never rolled back for a failed audit write.
func (uc *NotebookUseCase) audit(ctx context.Context, userID string, action domain.AuditAction, resourceID string, before, after domain.JSON) {
	if uc.auditRepo == nil {
		return
	}

	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		UserID:       userID,
		Action:       string(action),
		ResourceType: domain.ResourceTypeNotebookEntry,
		ResourceID:   resourceID,
		BeforeState:  before,
		AfterState:   after,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.auditRepo.Create(ctx, log); err != nil {
		uc.logger.Warn().Err(err).Str("action", string(action)).Msg("audit write failed")
	}
}
