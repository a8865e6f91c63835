package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/laughline/booking-api/internal/core/domain"
)

const collectionProfiles = "comedians"

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

// profileFields is everything an upsert overwrites. Fees are stored as null
// rather than omitted so switching to negotiable clears them.
type profileFields struct {
	UserID     string          `bson:"user_id"`
	StageName  string          `bson:"stage_name"`
	Experience int             `bson:"experience"`
	Location   domain.Location `bson:"location"`
	HasClub    bool            `bson:"has_club"`
	ClubName   string          `bson:"club_name"`
	Bio        string          `bson:"bio"`
	Contact    string          `bson:"contact"`

	HasCommercialExp    bool     `bson:"has_commercial_exp"`
	HasScriptwritingExp bool     `bson:"has_scriptwriting_exp"`
	HasPersonalShow     bool     `bson:"has_personal_show"`
	PersonalShows       []string `bson:"personal_shows"`
	HasVarietyExp       bool     `bson:"has_variety_exp"`
	VarietyShows        []string `bson:"variety_shows"`

	IsPriceNegotiable bool     `bson:"is_price_negotiable"`
	CommercialFee     *float64 `bson:"commercial_fee"`
	JointShowFee      *float64 `bson:"joint_show_fee"`
	PersonalShowFee   *float64 `bson:"personal_show_fee"`
	ScriptwritingFee  *float64 `bson:"scriptwriting_fee"`

	Avatar string   `bson:"avatar"`
	Photos []string `bson:"photos"`

	UpdatedAt time.Time `bson:"updated_at"`
}

type profileDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Fields    profileFields      `bson:",inline"`
	CreatedAt time.Time          `bson:"created_at"`
}

func fieldsFromDomain(p *domain.Profile) profileFields {
	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}
	return profileFields{
		UserID:              p.UserID,
		StageName:           p.StageName,
		Experience:          p.Experience,
		Location:            p.Location,
		HasClub:             p.HasClub,
		ClubName:            p.ClubName,
		Bio:                 p.Bio,
		Contact:             p.Contact,
		HasCommercialExp:    p.HasCommercialExp,
		HasScriptwritingExp: p.HasScriptwritingExp,
		HasPersonalShow:     p.HasPersonalShow,
		PersonalShows:       p.PersonalShows,
		HasVarietyExp:       p.HasVarietyExp,
		VarietyShows:        p.VarietyShows,
		IsPriceNegotiable:   p.IsPriceNegotiable,
		CommercialFee:       p.CommercialFee,
		JointShowFee:        p.JointShowFee,
		PersonalShowFee:     p.PersonalShowFee,
		ScriptwritingFee:    p.ScriptwritingFee,
		Avatar:              p.Avatar,
		Photos:              photos,
		UpdatedAt:           p.UpdatedAt,
	}
}

func (d *profileDoc) toDomain() *domain.Profile {
	f := d.Fields
	photos := f.Photos
	if photos == nil {
		photos = []string{}
	}
	return &domain.Profile{
		ID:                  d.ID.Hex(),
		UserID:              f.UserID,
		StageName:           f.StageName,
		Experience:          f.Experience,
		Location:            f.Location,
		HasClub:             f.HasClub,
		ClubName:            f.ClubName,
		Bio:                 f.Bio,
		Contact:             f.Contact,
		HasCommercialExp:    f.HasCommercialExp,
		HasScriptwritingExp: f.HasScriptwritingExp,
		HasPersonalShow:     f.HasPersonalShow,
		PersonalShows:       f.PersonalShows,
		HasVarietyExp:       f.HasVarietyExp,
		VarietyShows:        f.VarietyShows,
		IsPriceNegotiable:   f.IsPriceNegotiable,
		CommercialFee:       f.CommercialFee,
		JointShowFee:        f.JointShowFee,
		PersonalShowFee:     f.PersonalShowFee,
		ScriptwritingFee:    f.ScriptwritingFee,
		Avatar:              f.Avatar,
		Photos:              photos,
		CreatedAt:           d.CreatedAt.UTC(),
		UpdatedAt:           f.UpdatedAt.UTC(),
	}
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, domain.ErrProfileNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"_id": oid})
}

// Upsert replaces the profile keyed by user_id in a single write. created_at
// is only written when the document is inserted.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, domain.SaveOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	fields := fieldsFromDomain(p)
	update := bson.M{
		"$set":         fields,
		"$setOnInsert": bson.M{"created_at": fields.UpdatedAt},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"user_id": p.UserID}, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost a race with a concurrent first save; the retry is a plain update.
			res, err = r.col.UpdateOne(ctx, bson.M{"user_id": p.UserID}, update)
		}
		if err != nil {
			return nil, "", domain.Dependency("upsert profile", err)
		}
	}

	outcome := domain.OutcomeUpdated
	if res.UpsertedCount > 0 {
		outcome = domain.OutcomeCreated
	}

	saved, err := r.findOne(ctx, bson.M{"user_id": p.UserID})
	if err != nil {
		return nil, "", err
	}
	return saved, outcome, nil
}

func (r *ProfileRepository) ListSummaries(ctx context.Context) ([]domain.ComedianSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{
			"_id":                   1,
			"avatar":                1,
			"stage_name":            1,
			"experience":            1,
			"location":              1,
			"has_commercial_exp":    1,
			"has_scriptwriting_exp": 1,
			"has_personal_show":     1,
			"has_variety_exp":       1,
		}).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, domain.Dependency("list profiles", err)
	}
	defer cur.Close(ctx)

	var docs []profileDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.Dependency("decode profiles", err)
	}

	out := make([]domain.ComedianSummary, 0, len(docs))
	for _, d := range docs {
		f := d.Fields
		out = append(out, domain.ComedianSummary{
			ID:                  d.ID.Hex(),
			Avatar:              f.Avatar,
			StageName:           f.StageName,
			Experience:          f.Experience,
			Location:            f.Location,
			HasCommercialExp:    f.HasCommercialExp,
			HasScriptwritingExp: f.HasScriptwritingExp,
			HasPersonalShow:     f.HasPersonalShow,
			HasVarietyExp:       f.HasVarietyExp,
		})
	}
	return out, nil
}

// EnsureIndexes enforces one profile per account.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ProfileRepository) findOne(ctx context.Context, filter bson.M) (*domain.Profile, error) {
	var doc profileDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, domain.Dependency("find profile", err)
	}
	return doc.toDomain(), nil
}
