// internal/services/product_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forma3d/catalog-backend/internal/database"
	"github.com/forma3d/catalog-backend/internal/models"
	"github.com/forma3d/catalog-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

type ProductImageInput struct {
	URL      string `json:"url" validate:"required,url"`
	AltText  string `json:"altText" validate:"max=255"`
	Order    int    `json:"order" validate:"omitempty,gte=0"`
	RemoteID string `json:"remoteId" validate:"max=255"`
}

type CreateProductRequest struct {
	Name        string              `json:"name" validate:"required,min=3,max=200"`
	Description string              `json:"description" validate:"max=5000"`
	Price       float64             `json:"price" validate:"required,gt=0"`
	Stock       int                 `json:"stock" validate:"gte=0"`
	CategoryID  uuid.UUID           `json:"categoryId" validate:"required"`
	Material    string              `json:"material" validate:"max=100"`
	Color       string              `json:"color" validate:"max=50"`
	Dimensions  string              `json:"dimensions" validate:"max=100"`
	IsActive    *bool               `json:"isActive,omitempty"`
	Images      []ProductImageInput `json:"images" validate:"omitempty,dive"`
}

// UpdateProductRequest carries partial updates. A nil Images slice
// leaves the image set untouched; a non-nil slice, including an empty
// one, replaces it entirely.
type UpdateProductRequest struct {
	Name        *string             `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string             `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *float64            `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock       *int                `json:"stock,omitempty" validate:"omitempty,gte=0"`
	CategoryID  *uuid.UUID          `json:"categoryId,omitempty"`
	Material    *string             `json:"material,omitempty" validate:"omitempty,max=100"`
	Color       *string             `json:"color,omitempty" validate:"omitempty,max=50"`
	Dimensions  *string             `json:"dimensions,omitempty" validate:"omitempty,max=100"`
	IsActive    *bool               `json:"isActive,omitempty"`
	Images      []ProductImageInput `json:"images,omitempty" validate:"omitempty,dive"`
}

func buildImages(productID uuid.UUID, productName string, inputs []ProductImageInput) []models.ProductImage {
	images := make([]models.ProductImage, 0, len(inputs))
	for _, in := range inputs {
		altText := in.AltText
		if altText == "" {
			altText = productName
		}
		// Missing order defaults to 1; duplicates are permitted.
		order := in.Order
		if order < 1 {
			order = 1
		}
		images = append(images, models.ProductImage{
			ProductID: productID,
			URL:       in.URL,
			AltText:   altText,
			Order:     order,
			RemoteID:  in.RemoteID,
		})
	}
	return images
}

func (s *ProductService) Create(req *CreateProductRequest) (*models.Product, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		Material:    req.Material,
		Color:       req.Color,
		Dimensions:  req.Dimensions,
		IsActive:    isActive,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		if len(req.Images) > 0 {
			images := buildImages(product.ID, product.Name, req.Images)
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("product already exists")
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, errors.New("category not found")
		}
		return nil, err
	}

	return s.GetByID(product.ID)
}

func (s *ProductService) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, err
	}
	return &product, nil
}

// Update applies partial field updates. When the payload carries an
// image set, the existing rows are deleted and the new set inserted in
// the same transaction, so a failure leaves the previous set intact.
func (s *ProductService) Update(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, err
	}

	if req.CategoryID != nil {
		var category models.Category
		if err := s.db.First(&category, "id = ?", *req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("category not found")
			}
			return nil, err
		}
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Material != nil {
		updates["material"] = *req.Material
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.Dimensions != nil {
		updates["dimensions"] = *req.Dimensions
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.Images != nil {
			if err := tx.Unscoped().
				Where("product_id = ?", id).
				Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
			if len(req.Images) > 0 {
				images := buildImages(id, name, req.Images)
				if err := tx.Create(&images).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("product already exists")
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, errors.New("category not found")
		}
		return nil, err
	}

	return s.GetByID(id)
}

func (s *ProductService) Delete(id uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return err
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("product_id = ?", id).
			Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}

type ProductSearchParams struct {
	utils.PaginationParams
	ActiveOnly bool
	PriceMin   *float64
	PriceMax   *float64
}

// List returns a page of products with their categories and images,
// optionally filtered by search text, category, price range and the
// active flag.
func (s *ProductService) List(params ProductSearchParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Product{})

	if params.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}
	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}
	if params.Category != "" {
		categoryID, err := uuid.Parse(params.Category)
		if err != nil {
			// Slug filter; an unknown slug yields an empty page.
			var category models.Category
			if err := s.db.Select("id").Where("slug = ?", params.Category).
				First(&category).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, err
				}
			}
			categoryID = category.ID
		}
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "stock"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	err := query.Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	result := utils.CreatePaginationResult(products, total, params.PaginationParams)
	return &result, nil
}
