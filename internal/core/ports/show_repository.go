package ports

import (
	"context"

	"github.com/laughline/booking-api/internal/core/domain"
)

// ShowRepository persists shows. There is no update or delete.
type ShowRepository interface {
	Create(ctx context.Context, s *domain.Show) (*domain.Show, error)
	FindByID(ctx context.Context, id string) (*domain.Show, error)
	// List returns every show, newest first.
	List(ctx context.Context) ([]*domain.Show, error)
}

// SubmissionDedup guards show publishing against double submits.
type SubmissionDedup interface {
	// Claim reserves key for ownerID. When the key was already completed the
	// stored show ID is returned with claimed=false.
	Claim(ctx context.Context, ownerID, key string) (showID string, claimed bool, err error)
	Complete(ctx context.Context, ownerID, key, showID string) error
	Release(ctx context.Context, ownerID, key string) error
}
