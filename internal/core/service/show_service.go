package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/laughline/booking-api/internal/core/domain"
	"github.com/laughline/booking-api/internal/core/ports"
)

const deadlineDateLayout = "2006-01-02"

type ShowService struct {
	shows    ports.ShowRepository
	accounts ports.AccountRepository
	dedup    ports.SubmissionDedup
	sanitize *textSanitizer
	log      zerolog.Logger
	now      func() time.Time
}

// NewShowService builds the service. dedup may be nil, in which case
// Idempotency-Key headers are ignored.
func NewShowService(shows ports.ShowRepository, accounts ports.AccountRepository, dedup ports.SubmissionDedup, log zerolog.Logger) *ShowService {
	return &ShowService{
		shows:    shows,
		accounts: accounts,
		dedup:    dedup,
		sanitize: newTextSanitizer(),
		log:      log,
		now:      time.Now,
	}
}

// Create validates and stores a show owned by the session's account.
func (s *ShowService) Create(ctx context.Context, sess *domain.Session, in ports.ShowInput) (*domain.Show, bool, error) {
	if sess == nil || sess.AccountID == "" {
		return nil, false, domain.ErrUnauthorized
	}

	show, err := s.build(sess.AccountID, in)
	if err != nil {
		return nil, false, err
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" || s.dedup == nil {
		created, err := s.store(ctx, show)
		return created, false, err
	}

	existingID, claimed, err := s.dedup.Claim(ctx, sess.AccountID, key)
	if err != nil {
		// Redis is optional; publish without dedup.
		s.log.Warn().Err(err).Str("account_id", sess.AccountID).Msg("idempotency claim failed")
		created, err := s.store(ctx, show)
		return created, false, err
	}
	if !claimed {
		if existingID == "" {
			return nil, false, domain.ErrSubmissionInFlight
		}
		existing, err := s.shows.FindByID(ctx, existingID)
		if err != nil {
			return nil, false, err
		}
		s.log.Info().Str("show_id", existing.ID).Msg("show submission replayed")
		return existing, true, nil
	}

	created, err := s.store(ctx, show)
	if err != nil {
		if rerr := s.dedup.Release(ctx, sess.AccountID, key); rerr != nil {
			s.log.Warn().Err(rerr).Msg("idempotency release failed")
		}
		return nil, false, err
	}
	if err := s.dedup.Complete(ctx, sess.AccountID, key, created.ID); err != nil {
		s.log.Warn().Err(err).Str("show_id", created.ID).Msg("idempotency complete failed")
	}
	return created, false, nil
}

// List returns every show newest first with owner name attached.
func (s *ShowService) List(ctx context.Context) ([]*domain.ShowView, error) {
	shows, err := s.shows.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(shows, func(a, b *domain.Show) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	ids := make([]string, 0, len(shows))
	for _, sh := range shows {
		ids = append(ids, sh.OwnerID)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	owners := map[string]*domain.Account{}
	if len(ids) > 0 {
		owners, err = s.accounts.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	views := make([]*domain.ShowView, 0, len(shows))
	for _, sh := range shows {
		owner := domain.Owner{ID: sh.OwnerID}
		if a, ok := owners[sh.OwnerID]; ok {
			owner.Name = a.Name
		}
		views = append(views, &domain.ShowView{Show: *sh, Owner: owner})
	}
	return views, nil
}

// Get returns one show with owner name and email.
func (s *ShowService) Get(ctx context.Context, id string) (*domain.ShowView, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrShowNotFound
	}
	show, err := s.shows.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner := domain.Owner{ID: show.OwnerID}
	account, err := s.accounts.FindByID(ctx, show.OwnerID)
	switch {
	case err == nil:
		owner.Name = account.Name
		owner.Email = account.Email
	case domain.KindOf(err) == domain.KindNotFound:
		s.log.Warn().Str("show_id", show.ID).Str("owner_id", show.OwnerID).Msg("show owner missing")
	default:
		return nil, err
	}
	return &domain.ShowView{Show: *show, Owner: owner}, nil
}

func (s *ShowService) build(ownerID string, in ports.ShowInput) (*domain.Show, error) {
	show := &domain.Show{
		OwnerID: ownerID,
		Type:    domain.ShowType(strings.ToLower(strings.TrimSpace(in.Type))),
	}
	for _, f := range []struct {
		name string
		raw  string
		dst  *string
	}{
		{"title", in.Title, &show.Title},
		{"location", in.Location, &show.Location},
		{"description", in.Description, &show.Description},
		{"contact", in.Contact, &show.Contact},
	} {
		v, err := s.sanitize.clean(f.name, f.raw)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	switch {
	case show.Title == "":
		return nil, domain.Validation("title is required")
	case !show.Type.Valid():
		return nil, domain.Validation("type must be one of: commercial business variety film scriptwriting other")
	case show.Location == "":
		return nil, domain.Validation("location is required")
	case show.Description == "":
		return nil, domain.Validation("description is required")
	case show.Contact == "":
		return nil, domain.Validation("contact is required")
	}

	deadline, err := parseDeadline(in.Deadline)
	if err != nil {
		return nil, err
	}
	show.Deadline = deadline

	show.IsPriceNegotiable = true
	if in.IsPriceNegotiable != nil {
		show.IsPriceNegotiable = *in.IsPriceNegotiable
	}
	if !show.IsPriceNegotiable {
		if in.Price == nil {
			return nil, domain.Validation("price is required when the price is fixed")
		}
		if *in.Price < 0 {
			return nil, domain.Validation("price must not be negative")
		}
		price := *in.Price
		show.Price = &price
	}

	now := s.now().UTC()
	show.CreatedAt = now
	show.UpdatedAt = now
	return show, nil
}

func (s *ShowService) store(ctx context.Context, show *domain.Show) (*domain.Show, error) {
	created, err := s.shows.Create(ctx, show)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("show_id", created.ID).
		Str("owner_id", created.OwnerID).
		Str("type", string(created.Type)).
		Msg("show published")
	return created, nil
}

func parseDeadline(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domain.Validation("deadline is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(deadlineDateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, domain.Validation("deadline must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
}
