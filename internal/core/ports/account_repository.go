package ports

import (
	"context"

	"github.com/laughline/booking-api/internal/core/domain"
)

// AccountRepository persists accounts. Emails are stored normalised and are
// unique.
type AccountRepository interface {
	// Create inserts the account and returns it with its generated ID.
	// A duplicate email yields domain.ErrEmailTaken.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// FindByIDs returns the accounts that exist, keyed by ID. Unknown IDs are
	// skipped.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Account, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Account, error)
}
