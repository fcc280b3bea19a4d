package identity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy scopes a collection query to rows owned by the given user.
// Mutating endpoints fetch through this scope so that rows belonging to
// other users are indistinguishable from missing rows.
func OwnedBy(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("collector_id = ?", userID)
	}
}

// Active scopes a collection query to the pending/scheduled subset.
func Active() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status IN ?", []string{"pending", "scheduled"})
	}
}

// Closed scopes a collection query to the completed/cancelled subset.
func Closed() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status IN ?", []string{"completed", "cancelled"})
	}
}
