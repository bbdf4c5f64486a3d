// internal/models/product_image.go
package models

import (
	"github.com/google/uuid"
)

// ProductImage is one persisted image row. RemoteID is the media store's
// file handle; it is required to delete the asset later.
type ProductImage struct {
	BaseModel
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	AltText   string    `json:"altText,omitempty" gorm:"size:255"`
	Order     int       `json:"order" gorm:"column:display_order;default:1"`
	RemoteID  string    `json:"remoteId,omitempty" gorm:"size:255"`
}
