package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/birthday-builder/internal/domain"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const pagesCollection = "pages"

// pageDocument is the stored shape of a page; the slug is the document id
type pageDocument struct {
	Slug       string        `bson:"_id"`
	Name       string        `bson:"name"`
	DOBText    string        `bson:"dob_text"`
	AgeText    string        `bson:"age_text"`
	ThemeKey   string        `bson:"theme_key"`
	PhotoIDs   bson.RawValue `bson:"photo_ids"`
	AudioID    string        `bson:"audio_id"`
	CustomText *string       `bson:"custom_text,omitempty"`
	CreatedAt  time.Time     `bson:"created_at"`
}

// Connect creates a client and verifies the server is reachable
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOpts := options.Client().ApplyURI(uri).SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping: %w", err)
	}

	return client, nil
}

// PageRepository implements domain.PageRepository on a Mongo collection
type PageRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewPageRepository creates a new page repository
func NewPageRepository(ctx context.Context, client *mongo.Client, database string) (*PageRepository, error) {
	if database == "" {
		return nil, errors.New("mongo: database name must not be empty")
	}
	coll := client.Database(database).Collection(pagesCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &PageRepository{client: client, coll: coll}, nil
}

func (r *PageRepository) Put(ctx context.Context, page *domain.PageRecord) error {
	photos := page.PhotoIDs
	if photos == nil {
		photos = []string{}
	}
	doc := bson.M{
		"_id":        page.Slug,
		"name":       page.Name,
		"dob_text":   page.DOBText,
		"age_text":   page.AgeText,
		"theme_key":  page.ThemeKey,
		"photo_ids":  photos,
		"audio_id":   page.AudioID,
		"created_at": page.CreatedAt,
	}
	if page.CustomText != nil {
		doc["custom_text"] = *page.CustomText
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": page.Slug}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save page: %w", err)
	}
	return nil
}

func (r *PageRepository) Get(ctx context.Context, slug string) (*domain.PageRecord, error) {
	var doc pageDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": slug}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPageNotFound, slug)
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	return &domain.PageRecord{
		Slug:       doc.Slug,
		Name:       doc.Name,
		DOBText:    doc.DOBText,
		AgeText:    doc.AgeText,
		ThemeKey:   doc.ThemeKey,
		PhotoIDs:   decodePhotoIDs(slug, doc.PhotoIDs),
		AudioID:    doc.AudioID,
		CustomText: doc.CustomText,
		CreatedAt:  doc.CreatedAt,
	}, nil
}

// decodePhotoIDs accepts an array of strings; anything else renders without photos
func decodePhotoIDs(slug string, raw bson.RawValue) []string {
	if raw.Type == 0 {
		return []string{}
	}
	var ids []string
	if err := raw.Unmarshal(&ids); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("Malformed stored photo ids, rendering without photos")
		return []string{}
	}
	if ids == nil {
		return []string{}
	}
	return ids
}

func (r *PageRepository) Exists(ctx context.Context, slug string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": slug}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check page: %w", err)
	}
	return n > 0, nil
}

func (r *PageRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}
