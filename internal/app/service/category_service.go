package service

import (
	"errors"

	"github.com/pageturn/bookstore-backend/internal/app/model"
	"github.com/pageturn/bookstore-backend/internal/app/repository"
	"github.com/pageturn/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryNameExists = errors.New("category with this name already exists")
)

type CategoryService interface {
	CreateCategory(category *model.Category) error
	GetCategories() ([]model.Category, error)
	GetCategoryByID(id uint) (*model.Category, error)
	GetBooksByCategoryID(categoryID uint) ([]model.Book, error)
	UpdateCategory(category *model.Category) error
	DeleteCategory(id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	bookRepo     repository.BookRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, bookRepo repository.BookRepository) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		bookRepo:     bookRepo,
	}
}

func (s *categoryService) CreateCategory(category *model.Category) error {
	logger.Info("Creating category", map[string]interface{}{
		"name": category.Name,
	})

	existing, err := s.categoryRepo.FindByName(category.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing category name", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}
	if existing != nil {
		logger.Warn("Cannot create category: name already exists", map[string]interface{}{
			"name":        category.Name,
			"category_id": existing.ID,
		})
		return ErrCategoryNameExists
	}

	if err := s.categoryRepo.Create(category); err != nil {
		logger.Error("Failed to create category", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}

	logger.Info("Category created successfully", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return nil
}

func (s *categoryService) GetCategories() ([]model.Category, error) {
	logger.Debug("Fetching categories", nil)

	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch categories", err, nil)
		return nil, err
	}

	logger.Info("Categories fetched successfully", map[string]interface{}{
		"count": len(categories),
	})
	return categories, nil
}

func (s *categoryService) GetCategoryByID(id uint) (*model.Category, error) {
	logger.Debug("Fetching category by ID", map[string]interface{}{
		"category_id": id,
	})

	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Category not found", map[string]interface{}{
				"category_id": id,
			})
			return nil, ErrCategoryNotFound
		}
		logger.Error("Failed to fetch category", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}

	return category, nil
}

func (s *categoryService) GetBooksByCategoryID(categoryID uint) ([]model.Book, error) {
	logger.Debug("Fetching books by category", map[string]interface{}{
		"category_id": categoryID,
	})

	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Category not found", map[string]interface{}{
				"category_id": categoryID,
			})
			return nil, ErrCategoryNotFound
		}
		logger.Error("Failed to fetch category", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return nil, err
	}

	books, err := s.bookRepo.FindByCategoryID(categoryID)
	if err != nil {
		logger.Error("Failed to fetch books by category", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return nil, err
	}

	logger.Info("Books fetched by category", map[string]interface{}{
		"category_id": categoryID,
		"count":       len(books),
	})
	return books, nil
}

func (s *categoryService) UpdateCategory(category *model.Category) error {
	logger.Info("Updating category", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})

	existing, err := s.categoryRepo.FindByID(category.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update category: not found", map[string]interface{}{
				"category_id": category.ID,
			})
			return ErrCategoryNotFound
		}
		logger.Error("Failed to fetch category for update", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}

	if category.Name != existing.Name {
		conflict, err := s.categoryRepo.FindByName(category.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to check existing category name", err, map[string]interface{}{
				"name": category.Name,
			})
			return err
		}
		if conflict != nil {
			logger.Warn("Cannot update category: name already exists", map[string]interface{}{
				"name":        category.Name,
				"category_id": conflict.ID,
			})
			return ErrCategoryNameExists
		}
	}

	if err := s.categoryRepo.Update(category); err != nil {
		logger.Error("Failed to update category", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}

	logger.Info("Category updated successfully", map[string]interface{}{
		"category_id": category.ID,
	})
	return nil
}

func (s *categoryService) DeleteCategory(id uint) error {
	logger.Info("Deleting category", map[string]interface{}{
		"category_id": id,
	})

	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot delete category: not found", map[string]interface{}{
				"category_id": id,
			})
			return ErrCategoryNotFound
		}
		logger.Error("Failed to fetch category for deletion", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		logger.Error("Failed to delete category", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}

	logger.Info("Category deleted successfully", map[string]interface{}{
		"category_id": id,
	})
	return nil
}
