package listing

import (
	"context"
	"strings"

	"prestevent/internal/chat/models"
	"prestevent/internal/dbmongo"
	"prestevent/internal/dbmysql"
)

func applyService(svc *dbmongo.Service, in ServiceInput) error {
	name := strings.TrimSpace(in.Name)
	if err := checkText("name", name, 3, 150); err != nil {
		return err
	}
	desc := strings.TrimSpace(in.Description)
	if err := checkText("description", desc, 1, 5000); err != nil {
		return err
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return invalid("category is required")
	}
	if err := checkRange("price", in.PriceMin, in.PriceMax); err != nil {
		return err
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = dbmongo.ServiceActive
	}
	if status != dbmongo.ServiceActive && status != dbmongo.ServiceInactive {
		return invalid("unknown status %q", status)
	}
	images, err := cleanImages(in.Images)
	if err != nil {
		return err
	}

	svc.Name = name
	svc.Description = desc
	svc.Category = category
	svc.Location = strings.TrimSpace(in.Location)
	svc.PriceMin = in.PriceMin
	svc.PriceMax = in.PriceMax
	svc.Status = status
	svc.Images = images
	return nil
}

func (s *listingService) CreateService(ctx context.Context, userID, role string, in ServiceInput) (*dbmongo.Service, error) {
	if models.Role(role) != models.RoleProvider {
		return nil, ErrForbidden
	}
	svc := &dbmongo.Service{ID: s.newID(), UserID: userID}
	if err := applyService(svc, in); err != nil {
		return nil, err
	}
	svc.CreatedAt = s.now()
	svc.UpdatedAt = svc.CreatedAt

	if err := s.store.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	s.logger.Info("service created", "service_id", svc.ID, "user_id", userID)
	return svc, nil
}

func (s *listingService) UpdateService(ctx context.Context, userID, id string, in ServiceInput) (*dbmongo.Service, error) {
	svc, err := s.store.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc.UserID != userID {
		return nil, ErrForbidden
	}
	if err := applyService(svc, in); err != nil {
		return nil, err
	}
	svc.UpdatedAt = s.now()

	if err := s.store.UpdateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *listingService) DeleteService(ctx context.Context, userID, id string) error {
	svc, err := s.store.GetService(ctx, id)
	if err != nil {
		return err
	}
	if svc.UserID != userID {
		return ErrForbidden
	}
	if err := s.store.DeleteService(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info("service deleted", "service_id", id, "user_id", userID)
	return nil
}

func (s *listingService) GetService(ctx context.Context, viewerID, id string) (*ServiceDetail, error) {
	svc, err := s.store.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc.Status != dbmongo.ServiceActive && svc.UserID != viewerID {
		return nil, models.ErrListingNotFound
	}
	owner, err := s.owner(ctx, svc.UserID)
	if err != nil {
		return nil, err
	}
	return &ServiceDetail{Service: svc, Owner: owner}, nil
}

func (s *listingService) BrowseServices(ctx context.Context, q ServiceQuery) ([]*dbmongo.Service, error) {
	return s.store.ListServices(ctx, dbmongo.ServiceFilter{
		Status:   dbmongo.ServiceActive,
		Category: strings.TrimSpace(q.Category),
		Location: strings.TrimSpace(q.Location),
		Limit:    clampLimit(q.Limit),
	})
}

func (s *listingService) MyServices(ctx context.Context, userID string) ([]*dbmongo.Service, error) {
	return s.store.ListServices(ctx, dbmongo.ServiceFilter{UserID: userID})
}

// ProviderDirectory lists prestataires with their active service count. A category
// keeps only providers that offer a service in it.
func (s *listingService) ProviderDirectory(ctx context.Context, q ProviderQuery) ([]ProviderCard, error) {
	filter := dbmysql.ProviderFilter{
		Location:     strings.TrimSpace(q.Location),
		FeaturedOnly: q.FeaturedOnly,
	}
	if category := strings.TrimSpace(q.Category); category != "" {
		ids, err := s.store.ProviderIDsWithCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		filter.IDs = ids
	}

	profiles, err := s.profiles.ListProviders(ctx, filter)
	if err != nil {
		return nil, err
	}

	cards := make([]ProviderCard, 0, len(profiles))
	for _, p := range profiles {
		n, err := s.store.CountActiveServices(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, ProviderCard{Owner: *toOwner(p), Bio: p.Bio, ActiveServices: n})
	}
	return cards, nil
}

func (s *listingService) ProviderDetail(ctx context.Context, id string) (*ProviderDetail, error) {
	p, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if models.Role(p.Role) != models.RoleProvider {
		return nil, models.ErrParticipantNotFound
	}

	services, err := s.store.ListServices(ctx, dbmongo.ServiceFilter{UserID: id, Status: dbmongo.ServiceActive})
	if err != nil {
		return nil, err
	}
	return &ProviderDetail{
		ProviderCard: ProviderCard{Owner: *toOwner(p), Bio: p.Bio, ActiveServices: int64(len(services))},
		Services:     services,
	}, nil
}
