package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"prestevent/internal/chat/models"
	"prestevent/internal/dbmysql"
)

// ProfileRepository is the identity store.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *dbmysql.Profile) error
	GetProfileByID(ctx context.Context, id string) (*dbmysql.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*dbmysql.Profile, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id string, upd dbmysql.ProfileUpdate, at time.Time) error
	SetFeatured(ctx context.Context, id string, featured bool, at time.Time) error
	ListProviders(ctx context.Context, filter dbmysql.ProviderFilter) ([]*dbmysql.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) CreateProfile(ctx context.Context, profile *dbmysql.Profile) error {
	err := r.db.WithContext(ctx).Create(profile).Error
	if isDuplicateKey(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return storeErr("create profile", err)
	}
	return nil
}

func (r *profileRepository) GetProfileByID(ctx context.Context, id string) (*dbmysql.Profile, error) {
	var profile dbmysql.Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrParticipantNotFound
	}
	if err != nil {
		return nil, storeErr("get profile", err)
	}
	return &profile, nil
}

func (r *profileRepository) GetProfileByEmail(ctx context.Context, email string) (*dbmysql.Profile, error) {
	var profile dbmysql.Profile
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrParticipantNotFound
	}
	if err != nil {
		return nil, storeErr("get profile by email", err)
	}
	return &profile, nil
}

func (r *profileRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Profile{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, storeErr("check email", err)
	}
	return count > 0, nil
}

func (r *profileRepository) UpdateProfile(ctx context.Context, id string, upd dbmysql.ProfileUpdate, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&dbmysql.Profile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"full_name":  upd.FullName,
		"phone":      upd.Phone,
		"location":   upd.Location,
		"bio":        upd.Bio,
		"updated_at": at,
	})
	if res.Error != nil {
		return storeErr("update profile", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrParticipantNotFound
	}
	return nil
}

func (r *profileRepository) SetFeatured(ctx context.Context, id string, featured bool, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&dbmysql.Profile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"featured":   featured,
		"updated_at": at,
	})
	if res.Error != nil {
		return storeErr("set featured", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrParticipantNotFound
	}
	return nil
}

// ListProviders returns prestataires, featured ones first.
func (r *profileRepository) ListProviders(ctx context.Context, filter dbmysql.ProviderFilter) ([]*dbmysql.Profile, error) {
	profiles := []*dbmysql.Profile{}
	if filter.IDs != nil && len(filter.IDs) == 0 {
		return profiles, nil
	}

	q := r.db.WithContext(ctx).Where("role = ?", string(models.RoleProvider))
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		q = q.Where("location LIKE ?", "%"+escapeLike(loc)+"%")
	}
	if filter.IDs != nil {
		q = q.Where("id IN ?", filter.IDs)
	}
	if filter.FeaturedOnly {
		q = q.Where("featured = ?", true)
	}
	if err := q.Order("featured DESC, created_at DESC").Find(&profiles).Error; err != nil {
		return nil, storeErr("list providers", err)
	}
	return profiles, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}
