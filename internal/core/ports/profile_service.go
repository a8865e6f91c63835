package ports

import (
	"context"

	"github.com/laughline/booking-api/internal/core/domain"
)

// ProfileInput is a partial profile. Nil fields keep their stored value.
type ProfileInput struct {
	StageName  *string
	Experience *int
	Location   *domain.Location
	HasClub    *bool
	ClubName   *string
	Bio        *string
	Contact    *string

	HasCommercialExp    *bool
	HasScriptwritingExp *bool
	HasPersonalShow     *bool
	PersonalShows       []string
	HasVarietyExp       *bool
	VarietyShows        []string

	IsPriceNegotiable *bool
	CommercialFee     *float64
	JointShowFee      *float64
	PersonalShowFee   *float64
	ScriptwritingFee  *float64

	Avatar *string
	Photos []string
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Save(ctx context.Context, sess *domain.Session, in ProfileInput) (*domain.Profile, domain.SaveOutcome, error)
	ListDirectory(ctx context.Context) ([]domain.ComedianSummary, error)
	CanEdit(sess *domain.Session, p *domain.Profile) bool
}
