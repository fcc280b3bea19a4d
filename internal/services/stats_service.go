package services

import (
	"math"

	"github.com/ecocoleta/ecocoleta-backend/internal/dto"
	"github.com/ecocoleta/ecocoleta-backend/internal/models"
	"gorm.io/gorm"
)

// Conversion factors for derived environmental metrics, per kg of
// recycled material.
const (
	co2FactorPerKg   = 0.3
	waterFactorPerKg = 1.5
)

// StatsService derives environmental and system statistics by scanning
// current table state. Everything is recomputed per call; there is no
// incremental maintenance or caching.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// EnvironmentalData sums item quantities across completed collections
// and derives CO2 and water equivalents, rounded to the nearest integer.
func (s *StatsService) EnvironmentalData() (*dto.EnvironmentalDataResponse, error) {
	var total float64
	err := s.db.Model(&models.CollectionItem{}).
		Joins("JOIN collections ON collections.id = collection_items.collection_id").
		Where("collections.status = ?", models.CollectionCompleted).
		Select("COALESCE(SUM(collection_items.quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return nil, err
	}

	return &dto.EnvironmentalDataResponse{
		MaterialReciclado: total,
		ReducaoCO2:        int64(math.Round(total * co2FactorPerKg)),
		AguaEconomizada:   int64(math.Round(total * waterFactorPerKg)),
	}, nil
}

// Stats counts users, collectors with at least one active pickup, and
// filed reports.
func (s *StatsService) Stats() (*dto.StatsResponse, error) {
	var totalUsers int64
	if err := s.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return nil, err
	}

	var activeCollectors int64
	err := s.db.Model(&models.Collection{}).
		Joins("JOIN users ON users.id = collections.collector_id").
		Where("users.role = ?", models.RoleCollector).
		Where("collections.status IN ?", []string{models.CollectionPending, models.CollectionScheduled}).
		Distinct("collections.collector_id").
		Count(&activeCollectors).Error
	if err != nil {
		return nil, err
	}

	var totalReports int64
	if err := s.db.Model(&models.Report{}).Count(&totalReports).Error; err != nil {
		return nil, err
	}

	return &dto.StatsResponse{
		TotalUsuarios:   totalUsers,
		ColetoresAtivos: activeCollectors,
		TotalDenuncias:  totalReports,
	}, nil
}
