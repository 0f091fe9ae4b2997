package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddressModel is an immutable order-time snapshot. A fresh row is created
// on every checkout; rows are never mutated afterwards.
type AddressModel struct {
	AddressID uuid.UUID `gorm:"column:address_id;type:uuid;primaryKey" json:"address_id"`

	AddressUserID uuid.UUID `gorm:"column:address_user_id;type:uuid;not null;index" json:"address_user_id"`

	AddressFullName string `gorm:"column:address_full_name;type:varchar(100);not null" json:"address_full_name"`
	AddressPhone    string `gorm:"column:address_phone;type:varchar(20);not null" json:"address_phone"`
	AddressEmail    string `gorm:"column:address_email;type:varchar(150);not null" json:"address_email"`

	AddressStreet     string `gorm:"column:address_street;type:varchar(200);not null" json:"address_street"`
	AddressTown       string `gorm:"column:address_town;type:varchar(50);not null" json:"address_town"`
	AddressCounty     string `gorm:"column:address_county;type:varchar(50);not null" json:"address_county"`
	AddressPostalCode string `gorm:"column:address_postal_code;type:varchar(20);not null" json:"address_postal_code"`
	AddressCountry    string `gorm:"column:address_country;type:varchar(50);not null;default:Kenya" json:"address_country"`

	AddressCreatedAt time.Time `gorm:"column:address_created_at;autoCreateTime" json:"address_created_at"`
}

func (AddressModel) TableName() string { return "addresses" }

func (a *AddressModel) BeforeCreate(tx *gorm.DB) error {
	if a.AddressID == uuid.Nil {
		a.AddressID = uuid.New()
	}
	return nil
}
