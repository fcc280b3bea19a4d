package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ecocoleta/ecocoleta-backend/internal/dto"
	"github.com/ecocoleta/ecocoleta-backend/internal/identity"
	"github.com/ecocoleta/ecocoleta-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNoItems            = errors.New("at least one item is required")
	ErrInvalidItem        = errors.New("every item needs a material and a quantity greater than zero")
	ErrMissingDate        = errors.New("date is required")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrNotCollectionOwner = errors.New("access denied")
)

// CollectionService owns the pickup-request lifecycle:
//
//	pending   -> scheduled | cancelled | completed
//	scheduled -> scheduled (reschedule) | cancelled | completed
//
// completed and cancelled are terminal; mutations on a terminal row
// return it unchanged.
//
// cancel and reschedule fetch scoped by owner, so foreign rows answer
// not-found and their existence stays hidden. complete fetches by id
// and answers forbidden on an ownership mismatch, because admins may
// complete any collection and the route is documented to distinguish
// the two cases.
type CollectionService struct {
	db *gorm.DB
}

func NewCollectionService(db *gorm.DB) *CollectionService {
	return &CollectionService{db: db}
}

// Create persists the parent row and all items in one transaction.
// A failure on any item leaves no partial collection visible.
func (s *CollectionService) Create(collectorID uuid.UUID, req *dto.CreateCollectionRequest) (*models.Collection, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}
	for _, item := range req.Items {
		if item.Material == "" || item.Quantity <= 0 {
			return nil, ErrInvalidItem
		}
	}

	collection := models.Collection{
		ID:          uuid.New(),
		CollectorID: collectorID,
		Address:     datatypes.NewJSONType(req.Address),
		Status:      models.CollectionPending,
		ScheduledAt: time.Now().UTC(),
	}

	items := make([]models.CollectionItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.CollectionItem{
			ID:           uuid.New(),
			CollectionID: collection.ID,
			Material:     item.Material,
			Quantity:     item.Quantity,
			Description:  item.Description,
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&collection).Error; err != nil {
			return err
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	collection.Items = items
	return &collection, nil
}

// ListMine returns the caller's pending and scheduled collections.
func (s *CollectionService) ListMine(collectorID uuid.UUID) ([]models.Collection, error) {
	var collections []models.Collection
	err := s.db.Scopes(identity.OwnedBy(collectorID), identity.Active()).
		Preload("Items").
		Order("scheduled_at DESC").
		Find(&collections).Error
	return collections, err
}

// ListHistory returns the caller's completed and cancelled collections.
func (s *CollectionService) ListHistory(collectorID uuid.UUID) ([]models.Collection, error) {
	var collections []models.Collection
	err := s.db.Scopes(identity.OwnedBy(collectorID), identity.Closed()).
		Preload("Items").
		Order("scheduled_at DESC").
		Find(&collections).Error
	return collections, err
}

// ListAssigned returns every collection for admins, only owned rows for
// everyone else.
func (s *CollectionService) ListAssigned(caller identity.Identity) ([]models.Collection, error) {
	var collections []models.Collection
	query := s.db.Preload("Items").Order("scheduled_at DESC")
	if !caller.IsAdmin() {
		query = query.Scopes(identity.OwnedBy(caller.UserID))
	}
	err := query.Find(&collections).Error
	return collections, err
}

// ListPending returns the pending/scheduled subset, role-filtered like
// ListAssigned.
func (s *CollectionService) ListPending(caller identity.Identity) ([]models.Collection, error) {
	var collections []models.Collection
	query := s.db.Scopes(identity.Active()).Preload("Items").Order("scheduled_at DESC")
	if !caller.IsAdmin() {
		query = query.Scopes(identity.OwnedBy(caller.UserID))
	}
	err := query.Find(&collections).Error
	return collections, err
}

// Get fetches one collection with items, scoped by owner.
func (s *CollectionService) Get(collectorID, id uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	err := s.db.Scopes(identity.OwnedBy(collectorID)).
		Preload("Items").
		Where("id = ?", id).
		First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return &collection, nil
}

// Cancel moves an owned collection to cancelled. Foreign rows answer
// not-found; terminal rows are returned unchanged.
func (s *CollectionService) Cancel(collectorID, id uuid.UUID) (*models.Collection, error) {
	collection, err := s.Get(collectorID, id)
	if err != nil {
		return nil, err
	}
	if collection.Terminal() {
		return collection, nil
	}

	if err := s.db.Model(collection).Update("status", models.CollectionCancelled).Error; err != nil {
		return nil, err
	}
	collection.Status = models.CollectionCancelled
	return collection, nil
}

// Reschedule moves an owned collection to scheduled with a new date.
func (s *CollectionService) Reschedule(collectorID, id uuid.UUID, date *time.Time) (*models.Collection, error) {
	if date == nil {
		return nil, ErrMissingDate
	}

	collection, err := s.Get(collectorID, id)
	if err != nil {
		return nil, err
	}
	if collection.Terminal() {
		return collection, nil
	}

	updates := map[string]interface{}{
		"status":       models.CollectionScheduled,
		"scheduled_at": *date,
	}
	if err := s.db.Model(collection).Updates(updates).Error; err != nil {
		return nil, err
	}
	collection.Status = models.CollectionScheduled
	collection.ScheduledAt = *date
	return collection, nil
}

// Complete moves a collection to completed. The owner and any admin may
// complete; anyone else gets access denied. Calling it on an already
// completed or cancelled row is a no-op.
func (s *CollectionService) Complete(caller identity.Identity, id uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	err := s.db.Preload("Items").Where("id = ?", id).First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}

	if !caller.IsAdmin() && collection.CollectorID != caller.UserID {
		return nil, ErrNotCollectionOwner
	}

	if collection.Terminal() {
		return &collection, nil
	}

	if err := s.db.Model(&collection).Update("status", models.CollectionCompleted).Error; err != nil {
		return nil, err
	}
	collection.Status = models.CollectionCompleted
	return &collection, nil
}
