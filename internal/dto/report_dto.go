package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReportRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Anonymous   bool   `json:"anonymous"`
}

// ReportResponse hides the author id when the report was filed
// anonymously. The id is always persisted regardless.
type ReportResponse struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Anonymous   bool       `json:"anonymous"`
	AuthorID    *uuid.UUID `json:"author_id,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}
