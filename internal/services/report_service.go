package services

import (
	"errors"
	"fmt"

	"github.com/ecocoleta/ecocoleta-backend/internal/dto"
	"github.com/ecocoleta/ecocoleta-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrIncompleteReport = errors.New("type and description are required")
	ErrReportNotFound   = errors.New("report not found")
)

// ReportService owns the complaint workflow:
//
//	pending -> investigating -> resolved
//	pending -> resolved
//
// Transitions never regress; resolved is terminal and repeated calls
// return the record unchanged. Any authenticated user may advance a
// report (observed policy of the system, see DESIGN.md).
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Create files a report. The author always comes from the caller's
// token, never from the body, so authorship cannot be spoofed even on
// anonymous reports.
func (s *ReportService) Create(authorID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	if req.Type == "" || req.Description == "" {
		return nil, ErrIncompleteReport
	}

	report := models.Report{
		ID:          uuid.New(),
		Type:        req.Type,
		Description: req.Description,
		Anonymous:   req.Anonymous,
		AuthorID:    authorID,
		Status:      models.ReportPending,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

// List returns every report, newest first.
func (s *ReportService) List() ([]models.Report, error) {
	var reports []models.Report
	err := s.db.Order("created_at DESC").Find(&reports).Error
	return reports, err
}

// Investigate moves a pending report to investigating. Reports already
// investigating or resolved are returned unchanged.
func (s *ReportService) Investigate(id uuid.UUID) (*models.Report, error) {
	return s.advance(id, models.ReportInvestigating)
}

// Resolve moves a pending or investigating report to resolved.
func (s *ReportService) Resolve(id uuid.UUID) (*models.Report, error) {
	return s.advance(id, models.ReportResolved)
}

func (s *ReportService) advance(id uuid.UUID, target string) (*models.Report, error) {
	var report models.Report
	if err := s.db.Where("id = ?", id).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if !allowedTransition(report.Status, target) {
		return &report, nil
	}

	if err := s.db.Model(&report).Update("status", target).Error; err != nil {
		return nil, err
	}
	report.Status = target
	return &report, nil
}

func allowedTransition(from, to string) bool {
	switch from {
	case models.ReportPending:
		return to == models.ReportInvestigating || to == models.ReportResolved
	case models.ReportInvestigating:
		return to == models.ReportResolved
	default:
		return false
	}
}

// ToResponse maps a report to its wire shape, hiding the author when
// the report is anonymous.
func ToResponse(r *models.Report) dto.ReportResponse {
	resp := dto.ReportResponse{
		ID:          r.ID,
		Type:        r.Type,
		Description: r.Description,
		Anonymous:   r.Anonymous,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
	if !r.Anonymous {
		author := r.AuthorID
		resp.AuthorID = &author
	}
	return resp
}
