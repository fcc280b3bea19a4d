package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ecocoleta/ecocoleta-backend/internal/dto"
	"github.com/ecocoleta/ecocoleta-backend/internal/models"
)

func TestBackupKeystoreUpsert(t *testing.T) {
	db := setupTestDB(t)
	svc := NewWalletService(db)

	if err := svc.BackupKeystore(&dto.BackupKeystoreRequest{Address: "0xABC"}); !errors.Is(err, ErrIncompleteBackup) {
		t.Errorf("missing blob: got %v", err)
	}

	first := json.RawMessage(`{"version":3,"crypto":{}}`)
	if err := svc.BackupKeystore(&dto.BackupKeystoreRequest{Address: "0xABC", KeystoreJSON: first}); err != nil {
		t.Fatalf("backup failed: %v", err)
	}

	// Same address replaces the blob instead of adding a row.
	second := json.RawMessage(`{"version":3,"crypto":{"cipher":"aes"}}`)
	if err := svc.BackupKeystore(&dto.BackupKeystoreRequest{Address: "0xabc", KeystoreJSON: second}); err != nil {
		t.Fatalf("re-backup failed: %v", err)
	}

	var rows []models.Keystore
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 keystore row, got %d", len(rows))
	}
	if rows[0].Address != "0xabc" {
		t.Errorf("address not normalized: %s", rows[0].Address)
	}
}
