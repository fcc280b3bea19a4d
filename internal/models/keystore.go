package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Keystore holds an encrypted wallet backup blob keyed by address.
// Re-uploading for the same address replaces the blob.
type Keystore struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Address      string         `gorm:"not null;size:64;uniqueIndex" json:"address"`
	KeystoreJSON datatypes.JSON `gorm:"type:jsonb;not null" json:"keystore_json"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (k *Keystore) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

func (Keystore) TableName() string {
	return "keystores"
}
