package dto

import "encoding/json"

type BackupKeystoreRequest struct {
	Address      string          `json:"address"`
	KeystoreJSON json.RawMessage `json:"keystore_json"`
}
