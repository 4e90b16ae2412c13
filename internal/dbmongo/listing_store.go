package dbmongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"prestevent/internal/chat/models"
)

// listingDoc is the subset of an annonce or service document shown next to a conversation.
// Annonces carry a title, services a name.
type listingDoc struct {
	Title       string `bson:"title"`
	Name        string `bson:"name"`
	Description string `bson:"description"`
}

// ListingStore reads listing summaries for conversation headers.
type ListingStore struct {
	annonces *mongo.Collection
	services *mongo.Collection
}

func NewListingStore(mc *MongoClient) *ListingStore {
	return newListingStore(mc.Database)
}

func newListingStore(db *mongo.Database) *ListingStore {
	return &ListingStore{
		annonces: db.Collection(annoncesCollection),
		services: db.Collection(servicesCollection),
	}
}

// idFilter matches ids stored either as strings or as ObjectIDs.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

func (s *ListingStore) GetListingSummary(ctx context.Context, ref models.ListingRef) (*models.ListingSummary, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	var coll *mongo.Collection
	switch ref.Kind() {
	case models.ListingAnnonce:
		coll = s.annonces
	case models.ListingService:
		coll = s.services
	default:
		return nil, models.ErrListingNotFound
	}

	opts := options.FindOne().SetProjection(bson.M{"title": 1, "name": 1, "description": 1})
	var doc listingDoc
	err := coll.FindOne(ctx, idFilter(ref.ID()), opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s %s: %w: %w", ref.Kind(), ref.ID(), models.ErrStoreUnavailable, err)
	}

	title := doc.Title
	if ref.Kind() == models.ListingService {
		title = doc.Name
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%s %s has no title: %w", ref.Kind(), ref.ID(), models.ErrStoreUnavailable)
	}

	return &models.ListingSummary{
		Kind:        ref.Kind(),
		ID:          ref.ID(),
		Title:       title,
		Description: doc.Description,
	}, nil
}
