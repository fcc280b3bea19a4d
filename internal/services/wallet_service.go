package services

import (
	"errors"
	"strings"

	"github.com/ecocoleta/ecocoleta-backend/internal/dto"
	"github.com/ecocoleta/ecocoleta-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrIncompleteBackup = errors.New("address and keystore_json are required")

// WalletService stores encrypted keystore backups. One blob per
// address; re-uploading replaces it.
type WalletService struct {
	db *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{db: db}
}

func (s *WalletService) BackupKeystore(req *dto.BackupKeystoreRequest) error {
	if req.Address == "" || len(req.KeystoreJSON) == 0 {
		return ErrIncompleteBackup
	}

	record := models.Keystore{
		ID:           uuid.New(),
		Address:      strings.ToLower(req.Address),
		KeystoreJSON: datatypes.JSON(req.KeystoreJSON),
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{"keystore_json", "updated_at"}),
	}).Create(&record).Error
}
