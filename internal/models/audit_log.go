// internal/models/audit_log.go
package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
)

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// AuditLog records every mutating catalog request.
type AuditLog struct {
	BaseModel
	Action       string     `json:"action" gorm:"size:255;not null"`
	ResourceType string     `json:"resourceType" gorm:"size:50;index"`
	ResourceID   *uuid.UUID `json:"resourceId,omitempty" gorm:"type:uuid;index"`
	IPAddress    string     `json:"ipAddress" gorm:"size:45"`
	UserAgent    string     `json:"userAgent" gorm:"size:500"`
	NewValues    JSONB      `json:"newValues,omitempty" gorm:"type:jsonb"`
}
