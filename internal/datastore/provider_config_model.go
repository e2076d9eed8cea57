package datastore

import (
	"database/sql"
	"encoding/json"
	"time"
)

// ProviderConfig maps to the provider_configs table. One row per configured
// ASR vendor (Sarvam, Deepgram, Google, Tencent, Mock) holding its credentials
// and vendor-specific knobs.
type ProviderConfig struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	APIKey       sql.NullString  `json:"api_key,omitempty"`
	APISecret    sql.NullString  `json:"api_secret,omitempty"`
	APIEndpoint  sql.NullString  `json:"api_endpoint,omitempty"`
	OtherConfigs json.RawMessage `json:"other_configs,omitempty"` // vendor-specific JSON, e.g. {"tencent_region": "ap-guangzhou"}
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
