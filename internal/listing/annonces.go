package listing

import (
	"context"
	"strings"

	"prestevent/internal/chat/models"
	"prestevent/internal/dbmongo"
)

var annonceStatuses = map[string]bool{
	dbmongo.AnnonceActive: true,
	dbmongo.AnnonceClosed: true,
	dbmongo.AnnonceDraft:  true,
}

// applyAnnonce validates in and copies it onto a. creating requires at least one image.
func applyAnnonce(a *dbmongo.Annonce, in AnnonceInput, creating bool) error {
	title := strings.TrimSpace(in.Title)
	if err := checkText("title", title, 3, 150); err != nil {
		return err
	}
	desc := strings.TrimSpace(in.Description)
	if err := checkText("description", desc, 1, 5000); err != nil {
		return err
	}
	eventType := strings.TrimSpace(in.EventType)
	if eventType == "" {
		return invalid("event_type is required")
	}
	date, err := parseEventDate(in.EventDate)
	if err != nil {
		return err
	}
	if err := checkRange("budget", in.BudgetMin, in.BudgetMax); err != nil {
		return err
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = dbmongo.AnnonceActive
	}
	if !annonceStatuses[status] {
		return invalid("unknown status %q", status)
	}
	images, err := cleanImages(in.Images)
	if err != nil {
		return err
	}
	if creating && len(images) == 0 {
		return invalid("at least one image is required")
	}

	a.Title = title
	a.Description = desc
	a.EventType = eventType
	a.EventDate = date
	a.Location = strings.TrimSpace(in.Location)
	a.BudgetMin = in.BudgetMin
	a.BudgetMax = in.BudgetMax
	a.Status = status
	a.Images = images
	return nil
}

func (s *listingService) CreateAnnonce(ctx context.Context, userID, role string, in AnnonceInput) (*dbmongo.Annonce, error) {
	if models.Role(role) != models.RoleClient {
		return nil, ErrForbidden
	}
	a := &dbmongo.Annonce{ID: s.newID(), UserID: userID}
	if err := applyAnnonce(a, in, true); err != nil {
		return nil, err
	}
	a.CreatedAt = s.now()
	a.UpdatedAt = a.CreatedAt

	if err := s.store.CreateAnnonce(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info("annonce created", "annonce_id", a.ID, "user_id", userID)
	return a, nil
}

func (s *listingService) UpdateAnnonce(ctx context.Context, userID, id string, in AnnonceInput) (*dbmongo.Annonce, error) {
	a, err := s.store.GetAnnonce(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrForbidden
	}
	if err := applyAnnonce(a, in, false); err != nil {
		return nil, err
	}
	a.UpdatedAt = s.now()

	if err := s.store.UpdateAnnonce(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *listingService) DeleteAnnonce(ctx context.Context, userID, id string) error {
	a, err := s.store.GetAnnonce(ctx, id)
	if err != nil {
		return err
	}
	if a.UserID != userID {
		return ErrForbidden
	}
	if err := s.store.DeleteAnnonce(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info("annonce deleted", "annonce_id", id, "user_id", userID)
	return nil
}

// GetAnnonce hides drafts and closed annonces from everyone but their author.
func (s *listingService) GetAnnonce(ctx context.Context, viewerID, id string) (*AnnonceDetail, error) {
	a, err := s.store.GetAnnonce(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != dbmongo.AnnonceActive && a.UserID != viewerID {
		return nil, models.ErrListingNotFound
	}
	owner, err := s.owner(ctx, a.UserID)
	if err != nil {
		return nil, err
	}
	return &AnnonceDetail{Annonce: a, Owner: owner}, nil
}

func (s *listingService) BrowseAnnonces(ctx context.Context, q AnnonceQuery) ([]*dbmongo.Annonce, error) {
	return s.store.ListAnnonces(ctx, dbmongo.AnnonceFilter{
		Status:       dbmongo.AnnonceActive,
		EventType:    strings.TrimSpace(q.EventType),
		Location:     strings.TrimSpace(q.Location),
		FeaturedOnly: q.FeaturedOnly,
		Limit:        clampLimit(q.Limit),
	})
}

func (s *listingService) MyAnnonces(ctx context.Context, userID string) ([]*dbmongo.Annonce, error) {
	return s.store.ListAnnonces(ctx, dbmongo.AnnonceFilter{UserID: userID})
}

func (s *listingService) SetAnnonceFeatured(ctx context.Context, adminID, id string, featured bool) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	if err := s.store.SetAnnonceFeatured(ctx, id, featured, s.now()); err != nil {
		return err
	}
	s.logger.Info("annonce featured", "annonce_id", id, "featured", featured, "by", adminID)
	return nil
}
