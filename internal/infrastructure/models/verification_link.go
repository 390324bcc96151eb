package models

import (
	"time"

	"github.com/google/uuid"
)

type VerificationLink struct {
	CorrelationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"type:varchar(255);not null;index"`
	ArtifactURL   string    `gorm:"type:text;not null"`
	ExpiresAt     time.Time `gorm:"not null"`
	CreatedAt     time.Time
}
