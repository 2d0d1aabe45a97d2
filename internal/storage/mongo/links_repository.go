package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/shortlyhq/shortly/internal/infrastructure/db"
	"github.com/shortlyhq/shortly/internal/processing/shortener"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LinksRepository is the document-store backend for the link registry,
// selected with LINKS_BACKEND=mongo. The unique index on shortToken gives
// the same collision backstop as the relational unique constraint.
type LinksRepository struct {
	coll *mongo.Collection
}

type linkDoc struct {
	ID         string    `bson:"_id"`
	OwnerID    string    `bson:"ownerId"`
	LongURL    string    `bson:"longUrl"`
	ShortToken string    `bson:"shortToken"`
	Clicks     int64     `bson:"clicks,omitempty"`
	CreatedAt  time.Time `bson:"createdAt"`
}

func NewLinksRepository(m *db.Mongo) (*LinksRepository, error) {
	repo := &LinksRepository{coll: m.Collection("links")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "shortToken", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_short_token"),
		},
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "longUrl", Value: 1}},
			Options: options.Index().SetName("owner_long_url"),
		},
	})
	if err != nil {
		return nil, err
	}

	return repo, nil
}

func (r *LinksRepository) Insert(ctx context.Context, link *shortener.Link) error {
	doc := linkDoc{
		ID:         link.ID,
		OwnerID:    link.OwnerID,
		LongURL:    link.LongURL,
		ShortToken: link.ShortToken,
		Clicks:     link.Clicks,
		CreatedAt:  link.CreatedAt.UTC(),
	}

	_, err := r.coll.InsertOne(ctx, doc)
	if err == nil {
		return nil
	}

	if mongo.IsDuplicateKeyError(err) {
		return shortener.ErrTokenTaken
	}

	return err
}

func (r *LinksRepository) FindByToken(ctx context.Context, token string) (*shortener.Link, error) {
	return r.findOne(ctx, bson.M{"shortToken": token})
}

func (r *LinksRepository) FindByOwnerAndURL(ctx context.Context, ownerID, longURL string) (*shortener.Link, error) {
	// Oldest document wins so concurrent first-creates converge on one token.
	sort := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	return r.findOne(ctx, bson.M{"ownerId": ownerID, "longUrl": longURL}, sort)
}

func (r *LinksRepository) IncrementClicks(ctx context.Context, token string, delta int64) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"shortToken": token},
		bson.M{"$inc": bson.M{"clicks": delta}},
	)
	return err
}

func (r *LinksRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*shortener.Link, error) {
	var doc linkDoc
	err := r.coll.FindOne(ctx, filter, opts...).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shortener.ErrNotFound
		}
		return nil, err
	}

	return &shortener.Link{
		ID:         doc.ID,
		OwnerID:    doc.OwnerID,
		LongURL:    doc.LongURL,
		ShortToken: doc.ShortToken,
		Clicks:     doc.Clicks,
		CreatedAt:  doc.CreatedAt.UTC(),
	}, nil
}
