// internal/models/orphan_asset.go
package models

import "time"

// OrphanAsset records a remote media asset whose compensating delete
// failed. The background sweeper retries these until the attempt cap.
type OrphanAsset struct {
	BaseModel
	FileID      string     `json:"fileId" gorm:"size:255;not null;uniqueIndex"`
	Provider    string     `json:"provider" gorm:"size:30;not null"`
	Attempts    int        `json:"attempts" gorm:"default:0"`
	LastError   string     `json:"lastError,omitempty" gorm:"type:text"`
	LastTriedAt *time.Time `json:"lastTriedAt,omitempty"`
}
