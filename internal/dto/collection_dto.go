package dto

import (
	"time"

	"github.com/ecocoleta/ecocoleta-backend/internal/models"
)

type CreateCollectionRequest struct {
	Items   []CollectionItemRequest `json:"items"`
	Address models.Address          `json:"address"`
}

type CollectionItemRequest struct {
	Material    string  `json:"material"`
	Quantity    float64 `json:"quantity"`
	Description string  `json:"description,omitempty"`
}

type RescheduleRequest struct {
	Date *time.Time `json:"date"`
}

type CreateCollectionResponse struct {
	Collection models.Collection       `json:"collection"`
	Items      []models.CollectionItem `json:"items"`
}
