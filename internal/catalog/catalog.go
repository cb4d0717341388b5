// Package catalog provides access to the remote content catalog: the duas
// and journeys curated server-side, plus the completion-sync write path.
package catalog

import (
	"context"

	"github.com/rizqapp/rizq/internal/models"
)

// Fetcher supplies canonical catalog records. Implementations must leave
// previously returned data untouched on failure so callers can keep serving
// stale content.
type Fetcher interface {
	FetchAllDuas(ctx context.Context) ([]models.Dua, error)
	FetchJourneyWithDuas(ctx context.Context, id string) (models.JourneyWithDuas, error)
	FetchJourneysWithDuas(ctx context.Context, ids []string) ([]models.JourneyWithDuas, error)
	FetchCatalog(ctx context.Context) (models.Catalog, error)
}

// Recorder is the remote completion-write interface: an atomic upsert
// across the activity log and the per-user XP/streak aggregate, returning
// the updated profile.
type Recorder interface {
	RecordCompletion(ctx context.Context, userID string, duaID, xpAwarded int, day string) (models.Profile, error)
}
