package models

import "time"

// SiteSettings is the single landing-page configuration row used when the
// application is deployed for one salon.
type SiteSettings struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SiteName  string    `gorm:"not null" json:"siteName"`
	Tagline   string    `json:"tagline"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func DefaultSiteSettings() SiteSettings {
	return SiteSettings{SiteName: "SalonHub", Tagline: "Book your next visit online"}
}
