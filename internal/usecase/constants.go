package usecase

import "time"

const (
	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// SummaryCacheTTL bounds how stale a cached dashboard summary can get
	// even if an invalidation is lost
	SummaryCacheTTL = 30 * time.Second
)

// summaryCacheKey builds the per-user cache key for the dashboard summary.
func summaryCacheKey(userID string) string {
	return "summary:" + userID
}
