package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PublisherModel struct {
	PublisherID uuid.UUID `gorm:"column:publisher_id;type:uuid;primaryKey" json:"publisher_id"`

	PublisherName        string  `gorm:"column:publisher_name;type:varchar(150);uniqueIndex;not null" json:"publisher_name"`
	PublisherSlug        string  `gorm:"column:publisher_slug;type:varchar(150);uniqueIndex;not null" json:"publisher_slug"`
	PublisherDescription *string `gorm:"column:publisher_description;type:text" json:"publisher_description,omitempty"`
	PublisherWebsite     *string `gorm:"column:publisher_website;type:varchar(255)" json:"publisher_website,omitempty"`
	PublisherLogoURL     *string `gorm:"column:publisher_logo_url;type:varchar(500)" json:"publisher_logo_url,omitempty"`

	PublisherContactEmail *string `gorm:"column:publisher_contact_email;type:varchar(150)" json:"publisher_contact_email,omitempty"`
	PublisherContactPhone *string `gorm:"column:publisher_contact_phone;type:varchar(20)" json:"publisher_contact_phone,omitempty"`

	PublisherCreatedAt time.Time  `gorm:"column:publisher_created_at;autoCreateTime" json:"publisher_created_at"`
	PublisherUpdatedAt *time.Time `gorm:"column:publisher_updated_at;autoUpdateTime" json:"publisher_updated_at,omitempty"`
}

func (PublisherModel) TableName() string { return "publishers" }

func (p *PublisherModel) BeforeCreate(tx *gorm.DB) error {
	if p.PublisherID == uuid.Nil {
		p.PublisherID = uuid.New()
	}
	return nil
}
