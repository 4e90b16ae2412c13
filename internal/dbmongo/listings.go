package dbmongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"prestevent/internal/chat/models"
)

const (
	AnnonceActive = "active"
	AnnonceClosed = "closed"
	AnnonceDraft  = "draft"

	ServiceActive   = "active"
	ServiceInactive = "inactive"
)

// Annonce is a client's event request.
type Annonce struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	EventType   string    `bson:"event_type" json:"event_type"`
	EventDate   time.Time `bson:"event_date" json:"event_date"`
	Location    string    `bson:"location" json:"location"`
	BudgetMin   *int64    `bson:"budget_min,omitempty" json:"budget_min"`
	BudgetMax   *int64    `bson:"budget_max,omitempty" json:"budget_max"`
	Status      string    `bson:"status" json:"status"`
	Images      []string  `bson:"images" json:"images"`
	Featured    bool      `bson:"featured" json:"featured"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// Service is a prestataire's offering.
type Service struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category"`
	Location    string    `bson:"location" json:"location"`
	PriceMin    *int64    `bson:"price_min,omitempty" json:"price_min"`
	PriceMax    *int64    `bson:"price_max,omitempty" json:"price_max"`
	Status      string    `bson:"status" json:"status"`
	Images      []string  `bson:"images" json:"images"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// AnnonceFilter narrows ListAnnonces. Zero fields do not filter.
type AnnonceFilter struct {
	UserID       string
	Status       string
	EventType    string
	Location     string
	FeaturedOnly bool
	Limit        int64
}

type ServiceFilter struct {
	UserID   string
	Status   string
	Category string
	Location string
	Limit    int64
}

func ownedFilter(id, ownerID string) bson.M {
	f := idFilter(id)
	f["user_id"] = ownerID
	return f
}

// containsFold matches s anywhere in the field, ignoring case.
func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func listingErr(op, id string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", op, id, models.ErrStoreUnavailable, err)
}

// newestFirst sorts featured listings ahead of the rest, then by creation date.
var newestFirst = bson.D{{Key: "featured", Value: -1}, {Key: "created_at", Value: -1}}

func (s *ListingStore) CreateAnnonce(ctx context.Context, a *Annonce) error {
	if _, err := s.annonces.InsertOne(ctx, a); err != nil {
		return listingErr("insert annonce", a.ID, err)
	}
	return nil
}

func (s *ListingStore) GetAnnonce(ctx context.Context, id string) (*Annonce, error) {
	var a Annonce
	err := s.annonces.FindOne(ctx, idFilter(id)).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrListingNotFound
	}
	if err != nil {
		return nil, listingErr("find annonce", id, err)
	}
	return &a, nil
}

// UpdateAnnonce replaces the annonce owned by a.UserID.
func (s *ListingStore) UpdateAnnonce(ctx context.Context, a *Annonce) error {
	res, err := s.annonces.ReplaceOne(ctx, ownedFilter(a.ID, a.UserID), a)
	if err != nil {
		return listingErr("replace annonce", a.ID, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrListingNotFound
	}
	return nil
}

func (s *ListingStore) DeleteAnnonce(ctx context.Context, id, ownerID string) error {
	res, err := s.annonces.DeleteOne(ctx, ownedFilter(id, ownerID))
	if err != nil {
		return listingErr("delete annonce", id, err)
	}
	if res.DeletedCount == 0 {
		return models.ErrListingNotFound
	}
	return nil
}

func (s *ListingStore) SetAnnonceFeatured(ctx context.Context, id string, featured bool, at time.Time) error {
	res, err := s.annonces.UpdateOne(ctx, idFilter(id), bson.M{"$set": bson.M{"featured": featured, "updated_at": at}})
	if err != nil {
		return listingErr("feature annonce", id, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrListingNotFound
	}
	return nil
}

func (s *ListingStore) ListAnnonces(ctx context.Context, f AnnonceFilter) ([]*Annonce, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.EventType != "" {
		filter["event_type"] = f.EventType
	}
	if f.Location != "" {
		filter["location"] = containsFold(f.Location)
	}
	if f.FeaturedOnly {
		filter["featured"] = true
	}

	opts := options.Find().SetSort(newestFirst)
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	cur, err := s.annonces.Find(ctx, filter, opts)
	if err != nil {
		return nil, listingErr("list annonces", "", err)
	}
	out := []*Annonce{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, listingErr("decode annonces", "", err)
	}
	return out, nil
}

func (s *ListingStore) CreateService(ctx context.Context, svc *Service) error {
	if _, err := s.services.InsertOne(ctx, svc); err != nil {
		return listingErr("insert service", svc.ID, err)
	}
	return nil
}

func (s *ListingStore) GetService(ctx context.Context, id string) (*Service, error) {
	var svc Service
	err := s.services.FindOne(ctx, idFilter(id)).Decode(&svc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrListingNotFound
	}
	if err != nil {
		return nil, listingErr("find service", id, err)
	}
	return &svc, nil
}

func (s *ListingStore) UpdateService(ctx context.Context, svc *Service) error {
	res, err := s.services.ReplaceOne(ctx, ownedFilter(svc.ID, svc.UserID), svc)
	if err != nil {
		return listingErr("replace service", svc.ID, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrListingNotFound
	}
	return nil
}

func (s *ListingStore) DeleteService(ctx context.Context, id, ownerID string) error {
	res, err := s.services.DeleteOne(ctx, ownedFilter(id, ownerID))
	if err != nil {
		return listingErr("delete service", id, err)
	}
	if res.DeletedCount == 0 {
		return models.ErrListingNotFound
	}
	return nil
}

func (s *ListingStore) ListServices(ctx context.Context, f ServiceFilter) ([]*Service, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Location != "" {
		filter["location"] = containsFold(f.Location)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	cur, err := s.services.Find(ctx, filter, opts)
	if err != nil {
		return nil, listingErr("list services", "", err)
	}
	out := []*Service{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, listingErr("decode services", "", err)
	}
	return out, nil
}

// ProviderIDsWithCategory returns the distinct owners of services in category.
func (s *ListingStore) ProviderIDsWithCategory(ctx context.Context, category string) ([]string, error) {
	values, err := s.services.Distinct(ctx, "user_id", bson.M{"category": category})
	if err != nil {
		return nil, listingErr("distinct providers", category, err)
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *ListingStore) CountActiveServices(ctx context.Context, userID string) (int64, error) {
	n, err := s.services.CountDocuments(ctx, bson.M{"user_id": userID, "status": ServiceActive})
	if err != nil {
		return 0, listingErr("count services", userID, err)
	}
	return n, nil
}
