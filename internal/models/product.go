// internal/models/product.go
package models

import (
	"github.com/google/uuid"
)

type Product struct {
	BaseModel
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int       `json:"stock" gorm:"default:0"`
	CategoryID  uuid.UUID `json:"categoryId" gorm:"type:uuid;not null;index"`
	Material    string    `json:"material,omitempty" gorm:"size:100"`
	Color       string    `json:"color,omitempty" gorm:"size:100"`
	Dimensions  string    `json:"dimensions,omitempty" gorm:"size:100"`
	IsActive    bool      `json:"isActive" gorm:"default:true;index"`

	// Relationships
	Category Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images   []ProductImage `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
