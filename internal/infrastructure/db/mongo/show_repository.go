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

const collectionShows = "shows"

type ShowRepository struct {
	col *mongo.Collection
}

func NewShowRepository(db *mongo.Database) *ShowRepository {
	return &ShowRepository{col: db.Collection(collectionShows)}
}

type showDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	UserID            string             `bson:"user_id"`
	Title             string             `bson:"title"`
	Type              string             `bson:"type"`
	Location          string             `bson:"location"`
	IsPriceNegotiable bool               `bson:"is_price_negotiable"`
	Price             *float64           `bson:"price,omitempty"`
	Description       string             `bson:"description"`
	Deadline          time.Time          `bson:"deadline"`
	Contact           string             `bson:"contact"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

func (d *showDoc) toDomain() *domain.Show {
	return &domain.Show{
		ID:                d.ID.Hex(),
		OwnerID:           d.UserID,
		Title:             d.Title,
		Type:              domain.ShowType(d.Type),
		Location:          d.Location,
		IsPriceNegotiable: d.IsPriceNegotiable,
		Price:             d.Price,
		Description:       d.Description,
		Deadline:          d.Deadline.UTC(),
		Contact:           d.Contact,
		CreatedAt:         d.CreatedAt.UTC(),
		UpdatedAt:         d.UpdatedAt.UTC(),
	}
}

// Create inserts a new show document.
func (r *ShowRepository) Create(ctx context.Context, s *domain.Show) (*domain.Show, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := showDoc{
		UserID:            s.OwnerID,
		Title:             s.Title,
		Type:              string(s.Type),
		Location:          s.Location,
		IsPriceNegotiable: s.IsPriceNegotiable,
		Price:             s.Price,
		Description:       s.Description,
		Deadline:          s.Deadline,
		Contact:           s.Contact,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, domain.Dependency("insert show", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *ShowRepository) FindByID(ctx context.Context, id string) (*domain.Show, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, domain.ErrShowNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc showDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShowNotFound
		}
		return nil, domain.Dependency("find show", err)
	}
	return doc.toDomain(), nil
}

// List returns all shows sorted by created_at descending.
func (r *ShowRepository) List(ctx context.Context) ([]*domain.Show, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, domain.Dependency("list shows", err)
	}
	defer cur.Close(ctx)

	var docs []showDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.Dependency("decode shows", err)
	}

	out := make([]*domain.Show, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the shows collection.
func (r *ShowRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
