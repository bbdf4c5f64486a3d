// internal/services/category_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forma3d/catalog-backend/internal/models"
	"github.com/forma3d/catalog-backend/internal/utils"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"max=500"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// List returns all categories ordered by name, each annotated with its
// product count.
func (s *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}

	for i := range categories {
		var count int64
		if err := s.db.Model(&models.Product{}).
			Where("category_id = ?", categories[i].ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		categories[i].ProductCount = count
	}

	return categories, nil
}

func (s *CategoryService) GetByID(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Product{}).
		Where("category_id = ?", category.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	category.ProductCount = count

	return &category, nil
}

func (s *CategoryService) Create(req *CreateCategoryRequest) (*models.Category, error) {
	var existing models.Category
	err := s.db.Where("name = ?", req.Name).First(&existing).Error
	if err == nil {
		return nil, errors.New("category name already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name),
		Description: req.Description,
	}

	if err := s.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("category name already exists")
		}
		return nil, err
	}

	return &category, nil
}

func (s *CategoryService) Update(id uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil && *req.Name != category.Name {
		var existing models.Category
		err := s.db.Where("name = ? AND id != ?", *req.Name, id).First(&existing).Error
		if err == nil {
			return nil, errors.New("category name already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		updates["name"] = *req.Name
		updates["slug"] = utils.Slugify(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(&category).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, errors.New("category name already exists")
			}
			return nil, err
		}
	}

	return &category, nil
}

// Delete refuses to remove a category that still has products; callers
// must first reassign or remove them.
func (s *CategoryService) Delete(id uuid.UUID) error {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("category not found")
		}
		return err
	}

	var count int64
	if err := s.db.Model(&models.Product{}).
		Where("category_id = ?", id).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("category still has products")
	}

	if err := s.db.Delete(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return errors.New("category still has products")
		}
		return err
	}

	return nil
}
