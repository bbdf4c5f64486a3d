// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forma3d/catalog-backend/internal/models"
	"github.com/forma3d/catalog-backend/internal/utils"
)

func TestProductCreateWithImageDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	category := createTestCategory(t, db, "Vases")

	product, err := svc.Create(&CreateProductRequest{
		Name:       "Spiral Vase",
		Price:      39.90,
		Stock:      5,
		CategoryID: category.ID,
		Images: []ProductImageInput{
			{URL: "https://cdn.example.com/vase-front.png"},
			{URL: "https://cdn.example.com/vase-side.png", AltText: "Side view", Order: 5},
			{URL: "https://cdn.example.com/vase-top.png"},
		},
	})
	require.NoError(t, err)
	require.Len(t, product.Images, 3)

	// Missing alt text falls back to the product name; every missing
	// order defaults to 1, regardless of position.
	assert.Equal(t, "Spiral Vase", product.Images[0].AltText)
	assert.Equal(t, 1, product.Images[0].Order)
	assert.Equal(t, 1, product.Images[1].Order)
	assert.Equal(t, "Side view", product.Images[2].AltText)
	assert.Equal(t, 5, product.Images[2].Order)
}

func TestProductCreateUnknownCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)

	_, err := svc.Create(&CreateProductRequest{
		Name:       "Orphan Product",
		Price:      10,
		CategoryID: uuid.New(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category not found")
}

func TestProductUpdateWithoutImagesKeepsImageSet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	category := createTestCategory(t, db, "Vases")
	product := createTestProduct(t, db, category.ID, "Spiral Vase", []ProductImageInput{
		{URL: "https://cdn.example.com/a.png"},
		{URL: "https://cdn.example.com/b.png"},
	})

	newPrice := 49.90
	updated, err := svc.Update(product.ID, &UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, 49.90, updated.Price)
	require.Len(t, updated.Images, 2)
	// Rows untouched, same IDs.
	assert.Equal(t, product.Images[0].ID, updated.Images[0].ID)
	assert.Equal(t, product.Images[1].ID, updated.Images[1].ID)
}

func TestProductUpdateReplacesImageSet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	category := createTestCategory(t, db, "Vases")
	product := createTestProduct(t, db, category.ID, "Spiral Vase", []ProductImageInput{
		{URL: "https://cdn.example.com/old-1.png"},
		{URL: "https://cdn.example.com/old-2.png"},
		{URL: "https://cdn.example.com/old-3.png"},
	})

	updated, err := svc.Update(product.ID, &UpdateProductRequest{
		Images: []ProductImageInput{
			{URL: "https://cdn.example.com/new-1.png", AltText: "New front"},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Images, 1)
	assert.Equal(t, "https://cdn.example.com/new-1.png", updated.Images[0].URL)

	// The previous rows are gone, not soft-hidden.
	var count int64
	require.NoError(t, db.Model(&models.ProductImage{}).
		Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProductUpdateEmptyImageSliceClearsImages(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	category := createTestCategory(t, db, "Vases")
	product := createTestProduct(t, db, category.ID, "Spiral Vase", []ProductImageInput{
		{URL: "https://cdn.example.com/a.png"},
	})

	updated, err := svc.Update(product.ID, &UpdateProductRequest{
		Images: []ProductImageInput{},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Images)

	var count int64
	require.NoError(t, db.Model(&models.ProductImage{}).
		Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestProductUpdateUnknownCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	category := createTestCategory(t, db, "Vases")
	product := createTestProduct(t, db, category.ID, "Spiral Vase", nil)

	bogus := uuid.New()
	_, err := svc.Update(product.ID, &UpdateProductRequest{CategoryID: &bogus})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category not found")
}

func TestProductDeleteRemovesImages(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	category := createTestCategory(t, db, "Vases")
	product := createTestProduct(t, db, category.ID, "Spiral Vase", []ProductImageInput{
		{URL: "https://cdn.example.com/a.png"},
	})

	require.NoError(t, svc.Delete(product.ID))

	_, err := svc.GetByID(product.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	var count int64
	require.NoError(t, db.Model(&models.ProductImage{}).
		Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestProductListFiltersAndPaginates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	vases := createTestCategory(t, db, "Vases")
	tools := createTestCategory(t, db, "Tools")
	createTestProduct(t, db, vases.ID, "Spiral Vase", nil)
	createTestProduct(t, db, vases.ID, "Twist Vase", nil)
	createTestProduct(t, db, tools.ID, "Filament Clip", nil)

	result, err := svc.List(ProductSearchParams{
		PaginationParams: utils.PaginationParams{
			Page: 1, Limit: 10, Sort: "name", Order: "asc",
			Category: vases.ID.String(),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)

	products, ok := result.Data.([]models.Product)
	require.True(t, ok)
	require.Len(t, products, 2)
	assert.Equal(t, "Spiral Vase", products[0].Name)
	assert.Equal(t, "Vases", products[0].Category.Name)

	result, err = svc.List(ProductSearchParams{
		PaginationParams: utils.PaginationParams{
			Page: 1, Limit: 10, Sort: "created_at", Order: "desc",
			Search: "clip",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
}

func TestProductListPriceRange(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	category := createTestCategory(t, db, "Vases")
	createTestProduct(t, db, category.ID, "Cheap Vase", nil)

	expensive, err := svc.Create(&CreateProductRequest{
		Name:       "Premium Vase",
		Price:      120.0,
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	min := 100.0
	result, err := svc.List(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 10, Sort: "created_at", Order: "desc"},
		PriceMin:         &min,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Total)
	products := result.Data.([]models.Product)
	assert.Equal(t, expensive.ID, products[0].ID)

	max := 50.0
	result, err = svc.List(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 10, Sort: "created_at", Order: "desc"},
		PriceMax:         &max,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
}

func TestProductListCategorySlugFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	category := createTestCategory(t, db, "Desk Organizers")
	createTestProduct(t, db, category.ID, "Pen Tray", nil)

	result, err := svc.List(ProductSearchParams{
		PaginationParams: utils.PaginationParams{
			Page: 1, Limit: 10, Sort: "created_at", Order: "desc",
			Category: "desk-organizers",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
}
