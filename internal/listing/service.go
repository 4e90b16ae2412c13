// Package listing manages annonces (client event requests), services (prestataire
// offerings), the directory built on them and the admin featured curation.
package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"prestevent/internal/chat/models"
	"prestevent/internal/dbmongo"
	"prestevent/internal/dbmysql"
)

const (
	maxImages    = 5
	defaultLimit = 50
	maxLimit     = 100
)

var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("not allowed")
)

// Store is the document store holding annonces and services.
type Store interface {
	CreateAnnonce(ctx context.Context, a *dbmongo.Annonce) error
	GetAnnonce(ctx context.Context, id string) (*dbmongo.Annonce, error)
	UpdateAnnonce(ctx context.Context, a *dbmongo.Annonce) error
	DeleteAnnonce(ctx context.Context, id, ownerID string) error
	SetAnnonceFeatured(ctx context.Context, id string, featured bool, at time.Time) error
	ListAnnonces(ctx context.Context, f dbmongo.AnnonceFilter) ([]*dbmongo.Annonce, error)
	CreateService(ctx context.Context, svc *dbmongo.Service) error
	GetService(ctx context.Context, id string) (*dbmongo.Service, error)
	UpdateService(ctx context.Context, svc *dbmongo.Service) error
	DeleteService(ctx context.Context, id, ownerID string) error
	ListServices(ctx context.Context, f dbmongo.ServiceFilter) ([]*dbmongo.Service, error)
	ProviderIDsWithCategory(ctx context.Context, category string) ([]string, error)
	CountActiveServices(ctx context.Context, userID string) (int64, error)
}

// Profiles is the identity store as seen by listings.
type Profiles interface {
	GetProfile(ctx context.Context, id string) (*dbmysql.Profile, error)
	ListProviders(ctx context.Context, filter dbmysql.ProviderFilter) ([]*dbmysql.Profile, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type ListingService interface {
	CreateAnnonce(ctx context.Context, userID, role string, in AnnonceInput) (*dbmongo.Annonce, error)
	UpdateAnnonce(ctx context.Context, userID, id string, in AnnonceInput) (*dbmongo.Annonce, error)
	DeleteAnnonce(ctx context.Context, userID, id string) error
	GetAnnonce(ctx context.Context, viewerID, id string) (*AnnonceDetail, error)
	BrowseAnnonces(ctx context.Context, q AnnonceQuery) ([]*dbmongo.Annonce, error)
	MyAnnonces(ctx context.Context, userID string) ([]*dbmongo.Annonce, error)
	SetAnnonceFeatured(ctx context.Context, adminID, id string, featured bool) error

	CreateService(ctx context.Context, userID, role string, in ServiceInput) (*dbmongo.Service, error)
	UpdateService(ctx context.Context, userID, id string, in ServiceInput) (*dbmongo.Service, error)
	DeleteService(ctx context.Context, userID, id string) error
	GetService(ctx context.Context, viewerID, id string) (*ServiceDetail, error)
	BrowseServices(ctx context.Context, q ServiceQuery) ([]*dbmongo.Service, error)
	MyServices(ctx context.Context, userID string) ([]*dbmongo.Service, error)

	ProviderDirectory(ctx context.Context, q ProviderQuery) ([]ProviderCard, error)
	ProviderDetail(ctx context.Context, id string) (*ProviderDetail, error)
}

type AnnonceInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	EventType   string   `json:"event_type"`
	EventDate   string   `json:"event_date"`
	Location    string   `json:"location"`
	BudgetMin   *int64   `json:"budget_min"`
	BudgetMax   *int64   `json:"budget_max"`
	Status      string   `json:"status"`
	Images      []string `json:"images"`
}

type ServiceInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	PriceMin    *int64   `json:"price_min"`
	PriceMax    *int64   `json:"price_max"`
	Status      string   `json:"status"`
	Images      []string `json:"images"`
}

type AnnonceQuery struct {
	EventType    string
	Location     string
	FeaturedOnly bool
	Limit        int64
}

type ServiceQuery struct {
	Category string
	Location string
	Limit    int64
}

type ProviderQuery struct {
	Location     string
	Category     string
	FeaturedOnly bool
}

// Owner is the public face of a listing's author.
type Owner struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Location  string `json:"location,omitempty"`
	Role      string `json:"role"`
	Featured  bool   `json:"featured"`
}

type AnnonceDetail struct {
	*dbmongo.Annonce
	Owner *Owner `json:"owner,omitempty"`
}

type ServiceDetail struct {
	*dbmongo.Service
	Owner *Owner `json:"owner,omitempty"`
}

type ProviderCard struct {
	Owner
	Bio            string `json:"bio,omitempty"`
	ActiveServices int64  `json:"active_services"`
}

type ProviderDetail struct {
	ProviderCard
	Services []*dbmongo.Service `json:"services"`
}

type listingService struct {
	store    Store
	profiles Profiles
	logger   *slog.Logger

	now   func() time.Time
	newID func() string
}

func NewListingService(store Store, profiles Profiles, logger *slog.Logger) ListingService {
	return &listingService{
		store:    store,
		profiles: profiles,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func toOwner(p *dbmysql.Profile) *Owner {
	return &Owner{
		ID:        p.ID,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		Location:  p.Location,
		Role:      p.Role,
		Featured:  p.Featured,
	}
}

func clampLimit(n int64) int64 {
	if n <= 0 {
		return defaultLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}

func checkText(field, v string, min, max int) error {
	n := utf8.RuneCountInString(v)
	if n < min || n > max {
		return invalid("%s must be between %d and %d characters", field, min, max)
	}
	return nil
}

func checkRange(field string, lo, hi *int64) error {
	if lo != nil && *lo < 0 || hi != nil && *hi < 0 {
		return invalid("%s must not be negative", field)
	}
	if lo != nil && hi != nil && *lo > *hi {
		return invalid("%s minimum exceeds maximum", field)
	}
	return nil
}

func cleanImages(images []string) ([]string, error) {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	if len(out) > maxImages {
		return nil, invalid("at most %d images", maxImages)
	}
	return out, nil
}

// parseEventDate accepts a calendar date or a full RFC 3339 timestamp.
func parseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, invalid("event_date must be YYYY-MM-DD or RFC 3339")
	}
	return t.UTC(), nil
}

func (s *listingService) requireAdmin(ctx context.Context, userID string) error {
	ok, err := s.profiles.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// owner returns nil when the author's profile is gone; the listing is still shown.
func (s *listingService) owner(ctx context.Context, id string) (*Owner, error) {
	p, err := s.profiles.GetProfile(ctx, id)
	if errors.Is(err, models.ErrParticipantNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toOwner(p), nil
}
