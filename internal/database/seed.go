// internal/database/seed.go
package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/forma3d/catalog-backend/internal/models"
	"github.com/forma3d/catalog-backend/internal/utils"
)

// SeedCatalog wipes the catalog tables and inserts sample data for
// development environments.
func SeedCatalog(db *gorm.DB) error {
	log.Println("Seeding catalog data...")

	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.ProductImage{}).Error; err != nil {
		return fmt.Errorf("failed to clear product images: %w", err)
	}
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Product{}).Error; err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Category{}).Error; err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	categories := []models.Category{
		{
			Name:        "Collectible Figures",
			Description: "Detailed, collectible 3D printed figures.",
		},
		{
			Name:        "Desk Organizers",
			Description: "Practical, stylish storage for your workspace.",
		},
		{
			Name:        "Home Decor",
			Description: "One-of-a-kind pieces for every corner of your home.",
		},
		{
			Name:        "Gaming Accessories",
			Description: "Upgrades and add-ons for your gaming setup.",
		},
	}

	for i := range categories {
		categories[i].Slug = utils.Slugify(categories[i].Name)
		if err := db.Create(&categories[i]).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", categories[i].Name, err)
		}
	}

	products := []models.Product{
		{
			Name:        "Articulated Dragon",
			Description: "A fully articulated dragon printed in a single piece. No assembly required.",
			Price:       24.99,
			Stock:       12,
			CategoryID:  categories[0].ID,
			Material:    "PLA",
			Color:       "Emerald green",
			Dimensions:  "30cm x 6cm x 5cm",
			IsActive:    true,
			Images: []models.ProductImage{
				{URL: "https://cdn.example.com/catalog/articulated-dragon-1.jpg", AltText: "Articulated Dragon", Order: 1},
				{URL: "https://cdn.example.com/catalog/articulated-dragon-2.jpg", AltText: "Articulated Dragon, coiled", Order: 2},
			},
		},
		{
			Name:        "Hexagon Pen Holder",
			Description: "Modular hexagonal pen holder. Snap several together to grow your set.",
			Price:       9.5,
			Stock:       40,
			CategoryID:  categories[1].ID,
			Material:    "PETG",
			Color:       "Matte black",
			Dimensions:  "8cm x 7cm x 10cm",
			IsActive:    true,
			Images: []models.ProductImage{
				{URL: "https://cdn.example.com/catalog/hex-pen-holder-1.jpg", AltText: "Hexagon Pen Holder", Order: 1},
			},
		},
		{
			Name:        "Moon Lamp",
			Description: "Lithophane moon lamp with a warm LED base.",
			Price:       32.0,
			Stock:       8,
			CategoryID:  categories[2].ID,
			Material:    "PLA",
			Color:       "White",
			Dimensions:  "12cm diameter",
			IsActive:    true,
			Images: []models.ProductImage{
				{URL: "https://cdn.example.com/catalog/moon-lamp-1.jpg", AltText: "Moon Lamp", Order: 1},
			},
		},
		{
			Name:        "Controller Stand",
			Description: "Dual controller stand with headset hook.",
			Price:       14.75,
			Stock:       0,
			CategoryID:  categories[3].ID,
			Material:    "ABS",
			Color:       "Carbon grey",
			Dimensions:  "20cm x 12cm x 14cm",
			IsActive:    false,
		},
	}

	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("failed to seed product %q: %w", products[i].Name, err)
		}
	}

	log.Println("Catalog seeding completed")
	return nil
}
