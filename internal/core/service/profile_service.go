package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/laughline/booking-api/internal/core/domain"
	"github.com/laughline/booking-api/internal/core/ports"
)

type ProfileService struct {
	repo     ports.ProfileRepository
	sanitize *textSanitizer
	log      zerolog.Logger
	now      func() time.Time
}

func NewProfileService(repo ports.ProfileRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		repo:     repo,
		sanitize: newTextSanitizer(),
		log:      log,
		now:      time.Now,
	}
}

// Get returns the profile owned by userID.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindByUserID(ctx, userID)
}

// GetByID returns a profile by its own ID for the public detail page.
func (s *ProfileService) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrProfileNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// Save merges in over the caller's stored profile (or an empty one) and
// upserts the result. Validation runs on the merged record.
func (s *ProfileService) Save(ctx context.Context, sess *domain.Session, in ports.ProfileInput) (*domain.Profile, domain.SaveOutcome, error) {
	if sess == nil || sess.AccountID == "" {
		return nil, "", domain.ErrUnauthorized
	}

	current, err := s.repo.FindByUserID(ctx, sess.AccountID)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		current = &domain.Profile{Photos: []string{}}
	case err != nil:
		return nil, "", err
	}

	merged := *current
	merged.UserID = sess.AccountID
	if err := s.apply(&merged, in); err != nil {
		return nil, "", err
	}

	if merged.IsPriceNegotiable {
		merged.ClearFees()
	}
	if !merged.HasClub {
		merged.ClubName = ""
	}
	if merged.Photos == nil {
		merged.Photos = []string{}
	}

	if err := merged.Validate(); err != nil {
		return nil, "", err
	}
	merged.UpdatedAt = s.now().UTC()

	saved, outcome, err := s.repo.Upsert(ctx, &merged)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().
		Str("account_id", sess.AccountID).
		Str("profile_id", saved.ID).
		Str("outcome", string(outcome)).
		Msg("profile saved")
	return saved, outcome, nil
}

// ListDirectory lists every profile as a public summary.
func (s *ProfileService) ListDirectory(ctx context.Context) ([]domain.ComedianSummary, error) {
	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []domain.ComedianSummary{}
	}
	return summaries, nil
}

// CanEdit reports whether sess may modify p.
func (s *ProfileService) CanEdit(sess *domain.Session, p *domain.Profile) bool {
	return p != nil && sess.Owns(p.UserID)
}

func (s *ProfileService) apply(p *domain.Profile, in ports.ProfileInput) error {
	var err error
	if in.StageName != nil {
		if p.StageName, err = s.sanitize.clean("stageName", *in.StageName); err != nil {
			return err
		}
	}
	if in.Experience != nil {
		p.Experience = *in.Experience
	}
	if in.Location != nil {
		var loc domain.Location
		if loc.Province, err = s.sanitize.clean("location.province", in.Location.Province); err != nil {
			return err
		}
		if loc.City, err = s.sanitize.clean("location.city", in.Location.City); err != nil {
			return err
		}
		p.Location = loc
	}
	if in.HasClub != nil {
		p.HasClub = *in.HasClub
	}
	if in.ClubName != nil {
		if p.ClubName, err = s.sanitize.clean("clubName", *in.ClubName); err != nil {
			return err
		}
	}
	if in.Bio != nil {
		if p.Bio, err = s.sanitize.clean("bio", *in.Bio); err != nil {
			return err
		}
	}
	if in.Contact != nil {
		if p.Contact, err = s.sanitize.clean("contact", *in.Contact); err != nil {
			return err
		}
	}

	if in.HasCommercialExp != nil {
		p.HasCommercialExp = *in.HasCommercialExp
	}
	if in.HasScriptwritingExp != nil {
		p.HasScriptwritingExp = *in.HasScriptwritingExp
	}
	if in.HasPersonalShow != nil {
		p.HasPersonalShow = *in.HasPersonalShow
	}
	if in.PersonalShows != nil {
		if p.PersonalShows, err = s.sanitize.cleanList("personalShows", in.PersonalShows); err != nil {
			return err
		}
	}
	if in.HasVarietyExp != nil {
		p.HasVarietyExp = *in.HasVarietyExp
	}
	if in.VarietyShows != nil {
		if p.VarietyShows, err = s.sanitize.cleanList("varietyShows", in.VarietyShows); err != nil {
			return err
		}
	}

	if in.IsPriceNegotiable != nil {
		p.IsPriceNegotiable = *in.IsPriceNegotiable
	}
	if in.CommercialFee != nil {
		p.CommercialFee = in.CommercialFee
	}
	if in.JointShowFee != nil {
		p.JointShowFee = in.JointShowFee
	}
	if in.PersonalShowFee != nil {
		p.PersonalShowFee = in.PersonalShowFee
	}
	if in.ScriptwritingFee != nil {
		p.ScriptwritingFee = in.ScriptwritingFee
	}

	if in.Avatar != nil {
		p.Avatar = strings.TrimSpace(*in.Avatar)
	}
	if in.Photos != nil {
		photos := make([]string, 0, len(in.Photos))
		for _, ph := range in.Photos {
			photos = append(photos, strings.TrimSpace(ph))
		}
		p.Photos = photos
	}
	return nil
}
