// internal/models/category.go
package models

type Category struct {
	BaseModel
	Name        string `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Slug        string `json:"slug" gorm:"size:60;not null;uniqueIndex"`
	Description string `json:"description,omitempty" gorm:"type:text"`

	// Relationships
	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`

	// ProductCount is populated by list queries, not stored.
	ProductCount int64 `json:"productCount" gorm:"-"`
}
