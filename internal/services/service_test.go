// internal/services/service_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/forma3d/catalog-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.OrphanAsset{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	return db
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	svc := NewCategoryService(db)
	category, err := svc.Create(&CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return category
}

func createTestProduct(t *testing.T, db *gorm.DB, categoryID uuid.UUID, name string, images []ProductImageInput) *models.Product {
	t.Helper()

	svc := NewProductService(db)
	product, err := svc.Create(&CreateProductRequest{
		Name:       name,
		Price:      29.90,
		Stock:      10,
		CategoryID: categoryID,
		Images:     images,
	})
	require.NoError(t, err)
	return product
}
