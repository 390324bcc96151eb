package models

import (
	"time"

	"github.com/google/uuid"
)

type LoginToken struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Token             string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Email             string    `gorm:"type:varchar(255);not null;index"`
	CallbackURL       string    `gorm:"type:text"`
	DeviceBindingHash string    `gorm:"type:varchar(64)"`
	IssuedAt          time.Time `gorm:"not null"`
	ExpiresAt         time.Time `gorm:"not null"`
	ConsumedAt        *time.Time
	CreatedAt         time.Time
}
