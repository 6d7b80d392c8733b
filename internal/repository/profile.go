package repository

import (
	"context"

	"devconnector/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines persistence operations for profiles and their
// experience and education entries.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*models.Profile, error)
	HandleTaken(ctx context.Context, handle string, exceptUserID uint) (bool, error)
	List(ctx context.Context) ([]*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	AddExperience(ctx context.Context, exp *models.Experience) error
	// RemoveExperience deletes the entry only if it belongs to profileID.
	// It reports whether a row was removed.
	RemoveExperience(ctx context.Context, profileID, expID uint) (bool, error)
	AddEducation(ctx context.Context, edu *models.Education) error
	RemoveEducation(ctx context.Context, profileID, eduID uint) (bool, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// withDetails loads the owner summary and the entries, newest first.
func (r *profileRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.withDetails(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	profile.Normalize()
	return &profile, nil
}

func (r *profileRepository) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.withDetails(ctx).Where("handle = ?", handle).First(&profile).Error; err != nil {
		return nil, err
	}
	profile.Normalize()
	return &profile, nil
}

func (r *profileRepository) HandleTaken(ctx context.Context, handle string, exceptUserID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("handle = ? AND user_id <> ?", handle, exceptUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *profileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	if err := r.withDetails(ctx).Order("id ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		p.Normalize()
	}
	return profiles, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error
}

// Update writes every scalar column of profile. Entries are managed by
// their own methods.
func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error
}

func (r *profileRepository) AddExperience(ctx context.Context, exp *models.Experience) error {
	return r.db.WithContext(ctx).Create(exp).Error
}

func (r *profileRepository) RemoveExperience(ctx context.Context, profileID, expID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", expID, profileID).
		Delete(&models.Experience{})
	return result.RowsAffected > 0, result.Error
}

func (r *profileRepository) AddEducation(ctx context.Context, edu *models.Education) error {
	return r.db.WithContext(ctx).Create(edu).Error
}

func (r *profileRepository) RemoveEducation(ctx context.Context, profileID, eduID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", eduID, profileID).
		Delete(&models.Education{})
	return result.RowsAffected > 0, result.Error
}
