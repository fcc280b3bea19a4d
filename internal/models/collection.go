package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CollectionPending   = "pending"
	CollectionScheduled = "scheduled"
	CollectionCompleted = "completed"
	CollectionCancelled = "cancelled"
)

// Address is the structured pickup location, stored as jsonb.
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// Collection is a scheduled pickup request. It is owned exclusively by
// the collector who created it and always carries at least one item;
// items are persisted atomically with the parent row.
//
// completed and cancelled are terminal states.
type Collection struct {
	ID          uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	CollectorID uuid.UUID                    `gorm:"type:uuid;not null;index" json:"collector_id"`
	Address     datatypes.JSONType[Address]  `gorm:"type:jsonb" json:"address"`
	Status      string                       `gorm:"not null;default:'pending';size:20;index" json:"status"`
	ScheduledAt time.Time                    `gorm:"not null;index" json:"scheduled_at"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
	Items       []CollectionItem             `gorm:"foreignKey:CollectionID" json:"items,omitempty"`
	Collector   User                         `gorm:"foreignKey:CollectorID" json:"-"`
}

func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Terminal reports whether the collection can no longer change status.
func (c *Collection) Terminal() bool {
	return c.Status == CollectionCompleted || c.Status == CollectionCancelled
}

func (Collection) TableName() string {
	return "collections"
}

// CollectionItem is one material entry of a pickup request. Items are
// only ever created together with their parent collection.
type CollectionItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CollectionID uuid.UUID `gorm:"type:uuid;not null;index" json:"collection_id"`
	Material     string    `gorm:"not null;size:100" json:"material"`
	Quantity     float64   `gorm:"not null" json:"quantity"`
	Description  string    `gorm:"size:500" json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (i *CollectionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (CollectionItem) TableName() string {
	return "collection_items"
}
