// Package user is the identity store: registration, login and public profiles.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"prestevent/internal/chat/models"
	"prestevent/internal/common"
	"prestevent/internal/dbmysql"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("admin rights required")
)

type UserService interface {
	Register(ctx context.Context, email, password, fullName string, role models.Role) (*dbmysql.Profile, string, error)
	Login(ctx context.Context, email, password string) (*dbmysql.Profile, string, error)
	GetProfile(ctx context.Context, id string) (*dbmysql.Profile, error)
	// GetParticipant serves the chat service's identity lookups.
	GetParticipant(ctx context.Context, id string) (*models.Participant, error)
	UpdateProfile(ctx context.Context, userID string, upd dbmysql.ProfileUpdate) (*dbmysql.Profile, error)
	// SetFeatured toggles a prestataire's place on the home page; adminID must be an admin.
	SetFeatured(ctx context.Context, adminID, profileID string, featured bool) error
	ListProviders(ctx context.Context, filter dbmysql.ProviderFilter) ([]*dbmysql.Profile, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type userService struct {
	repo   ProfileRepository
	tokens *common.TokenManager
	logger *slog.Logger

	now   func() time.Time
	newID func() string
}

func NewUserService(repo ProfileRepository, tokens *common.TokenManager, logger *slog.Logger) UserService {
	return &userService{
		repo:   repo,
		tokens: tokens,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

func (s *userService) Register(ctx context.Context, email, password, fullName string, role models.Role) (*dbmysql.Profile, string, error) {
	if err := common.ValidateEmail(email); err != nil {
		return nil, "", invalid(err)
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, "", invalid(err)
	}
	if err := common.ValidateFullName(fullName); err != nil {
		return nil, "", invalid(err)
	}
	if !role.Valid() {
		return nil, "", invalid(fmt.Errorf("unknown role %q", role))
	}
	email = common.NormalizeEmail(email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailTaken
	}

	hashed, err := common.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	ts := s.now()
	profile := &dbmysql.Profile{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: hashed,
		FullName:     strings.TrimSpace(fullName),
		Role:         string(role),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(profile.ID, profile.Role)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("profile registered", "user_id", profile.ID, "role", profile.Role)
	return profile, token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*dbmysql.Profile, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	profile, err := s.repo.GetProfileByEmail(ctx, common.NormalizeEmail(email))
	if errors.Is(err, models.ErrParticipantNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := common.CheckPassword(password, profile.PasswordHash); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(profile.ID, profile.Role)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

func (s *userService) GetProfile(ctx context.Context, id string) (*dbmysql.Profile, error) {
	return s.repo.GetProfileByID(ctx, id)
}

func (s *userService) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	profile, err := s.repo.GetProfileByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.Participant{
		ID:          profile.ID,
		DisplayName: profile.FullName,
		AvatarRef:   profile.AvatarURL,
		Role:        models.Role(profile.Role),
		Email:       profile.Email,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, upd dbmysql.ProfileUpdate) (*dbmysql.Profile, error) {
	upd = dbmysql.ProfileUpdate{
		FullName: strings.TrimSpace(upd.FullName),
		Phone:    strings.TrimSpace(upd.Phone),
		Location: strings.TrimSpace(upd.Location),
		Bio:      strings.TrimSpace(upd.Bio),
	}
	if err := common.ValidateFullName(upd.FullName); err != nil {
		return nil, invalid(err)
	}
	if err := common.ValidatePhone(upd.Phone); err != nil {
		return nil, invalid(err)
	}
	if err := common.ValidateLength("location", upd.Location, 255); err != nil {
		return nil, invalid(err)
	}
	if err := common.ValidateLength("bio", upd.Bio, 2000); err != nil {
		return nil, invalid(err)
	}

	if err := s.repo.UpdateProfile(ctx, userID, upd, s.now()); err != nil {
		return nil, err
	}
	return s.repo.GetProfileByID(ctx, userID)
}

func (s *userService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	profile, err := s.repo.GetProfileByID(ctx, userID)
	if errors.Is(err, models.ErrParticipantNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return profile.IsAdmin, nil
}

func (s *userService) SetFeatured(ctx context.Context, adminID, profileID string, featured bool) error {
	admin, err := s.IsAdmin(ctx, adminID)
	if err != nil {
		return err
	}
	if !admin {
		return ErrForbidden
	}

	target, err := s.repo.GetProfileByID(ctx, profileID)
	if err != nil {
		return err
	}
	if models.Role(target.Role) != models.RoleProvider {
		return invalid(errors.New("only prestataire profiles can be featured"))
	}
	if err := s.repo.SetFeatured(ctx, profileID, featured, s.now()); err != nil {
		return err
	}

	s.logger.Info("profile featured", "profile_id", profileID, "featured", featured, "by", adminID)
	return nil
}

func (s *userService) ListProviders(ctx context.Context, filter dbmysql.ProviderFilter) ([]*dbmysql.Profile, error) {
	return s.repo.ListProviders(ctx, filter)
}
