package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`

	UserFirstName  string `gorm:"column:user_first_name;type:varchar(80);not null"  json:"user_first_name"`
	UserSecondName string `gorm:"column:user_second_name;type:varchar(80);not null" json:"user_second_name"`

	UserEmail    string  `gorm:"column:user_email;type:varchar(150);uniqueIndex;not null" json:"user_email"`
	UserPassword string  `gorm:"column:user_password;type:text;not null" json:"-"`
	UserPhone    *string `gorm:"column:user_phone;type:varchar(20)" json:"user_phone,omitempty"`

	UserRole     string `gorm:"column:user_role;type:varchar(20);not null;default:user" json:"user_role"`
	UserIsActive bool   `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt *time.Time     `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at,omitempty"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}

func (u *UserModel) FullName() string {
	return u.UserFirstName + " " + u.UserSecondName
}
