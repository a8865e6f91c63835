package ports

import (
	"context"

	"github.com/laughline/booking-api/internal/core/domain"
)

// ProfileRepository persists performer profiles, at most one per user.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	// Upsert writes the full profile keyed by UserID. CreatedAt is only set on
	// insert.
	Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, domain.SaveOutcome, error)
	ListSummaries(ctx context.Context) ([]domain.ComedianSummary, error)
}
