// Package settings stores the single site-wide configuration record.
package settings

import (
	"context"
	"errors"

	"salonhub-backend/models"

	"gorm.io/gorm"
)

// ErrAlreadyConfigured is returned when a second settings record is
// created.
var ErrAlreadyConfigured = errors.New("site settings already configured")

// singletonID pins the record so the primary key rejects a second insert.
const singletonID = 1

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get returns the stored settings, or the defaults when none exist yet.
func (s *Store) Get(ctx context.Context) (models.SiteSettings, bool, error) {
	var out models.SiteSettings
	err := s.db.WithContext(ctx).First(&out, "id = ?", singletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultSiteSettings(), false, nil
	}
	if err != nil {
		return models.SiteSettings{}, false, err
	}
	return out, true, nil
}

func (s *Store) Create(ctx context.Context, in models.SiteSettings) (models.SiteSettings, error) {
	in.ID = singletonID
	if err := s.db.WithContext(ctx).Create(&in).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.SiteSettings{}, ErrAlreadyConfigured
		}
		return models.SiteSettings{}, err
	}
	return in, nil
}

// Update changes the existing record.
func (s *Store) Update(ctx context.Context, in models.SiteSettings) (models.SiteSettings, error) {
	res := s.db.WithContext(ctx).Model(&models.SiteSettings{ID: singletonID}).
		Select("site_name", "tagline", "phone", "email", "address").
		Updates(&in)
	if res.Error != nil {
		return models.SiteSettings{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.SiteSettings{}, gorm.ErrRecordNotFound
	}
	out, _, err := s.Get(ctx)
	return out, err
}
