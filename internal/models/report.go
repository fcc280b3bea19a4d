package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReportPending       = "pending"
	ReportInvestigating = "investigating"
	ReportResolved      = "resolved"
)

// Report is a user-filed complaint against the service or a party.
// The author is always recorded from the caller's token; the anonymous
// flag only hides it at display time. Status moves forward only:
// pending -> investigating -> resolved, or pending -> resolved.
type Report struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Type        string    `gorm:"not null;size:50" json:"type"`
	Description string    `gorm:"not null;size:2000" json:"description"`
	Anonymous   bool      `gorm:"default:false" json:"anonymous"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Status      string    `gorm:"not null;default:'pending';size:50" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"-"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (Report) TableName() string {
	return "reports"
}
