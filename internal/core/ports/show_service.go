package ports

import (
	"context"

	"github.com/laughline/booking-api/internal/core/domain"
)

// ShowInput carries a show submission. Deadline is RFC 3339 or YYYY-MM-DD.
type ShowInput struct {
	Title             string
	Type              string
	Location          string
	IsPriceNegotiable *bool
	Price             *float64
	Description       string
	Deadline          string
	Contact           string
	IdempotencyKey    string
}

type ShowService interface {
	// Create returns replayed=true when an Idempotency-Key matched an earlier
	// submission and no new show was stored.
	Create(ctx context.Context, sess *domain.Session, in ShowInput) (show *domain.Show, replayed bool, err error)
	List(ctx context.Context) ([]*domain.ShowView, error)
	Get(ctx context.Context, id string) (*domain.ShowView, error)
}
