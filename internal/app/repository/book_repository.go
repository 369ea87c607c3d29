package repository

import (
	"github.com/pageturn/bookstore-backend/internal/app/model"
	"github.com/pageturn/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type BookRepository interface {
	Create(book *model.Book) error
	FindAll(limit, offset int) ([]model.Book, error)
	FindByID(id uint) (*model.Book, error)
	FindByIDUnscoped(id uint) (*model.Book, error)
	FindByISBN(isbn string) (*model.Book, error)
	FindByCategoryID(categoryID uint) ([]model.Book, error)
	Search(spec Specification, limit, offset int) ([]model.Book, error)
	Update(book *model.Book) error
	Delete(id uint) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(book *model.Book) error {
	logger.Debug("Creating book in database", map[string]interface{}{
		"title": book.Title,
		"isbn":  book.ISBN,
	})

	if err := r.db.Create(book).Error; err != nil {
		logger.Error("Failed to create book in database", err, map[string]interface{}{
			"title": book.Title,
			"isbn":  book.ISBN,
		})
		return err
	}

	logger.Debug("Book created in database", map[string]interface{}{
		"book_id": book.ID,
		"title":   book.Title,
	})
	return nil
}

func (r *bookRepository) FindAll(limit, offset int) ([]model.Book, error) {
	logger.Debug("Finding all books in database", map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	})

	var books []model.Book
	query := r.db.Preload("Categories").Order("books.id ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&books).Error; err != nil {
		logger.Error("Failed to find all books in database", err, map[string]interface{}{
			"limit":  limit,
			"offset": offset,
		})
		return nil, err
	}

	logger.Debug("Books found in database", map[string]interface{}{
		"count": len(books),
	})
	return books, nil
}

func (r *bookRepository) FindByID(id uint) (*model.Book, error) {
	logger.Debug("Finding book by ID in database", map[string]interface{}{
		"book_id": id,
	})

	var book model.Book
	if err := r.db.Preload("Categories").First(&book, id).Error; err != nil {
		logger.Error("Failed to find book by ID in database", err, map[string]interface{}{
			"book_id": id,
		})
		return nil, err
	}

	logger.Debug("Book found by ID in database", map[string]interface{}{
		"book_id": book.ID,
		"title":   book.Title,
	})
	return &book, nil
}

// FindByIDUnscoped resolves a book even after it has been soft deleted.
// Order history keeps referencing removed catalog entries.
func (r *bookRepository) FindByIDUnscoped(id uint) (*model.Book, error) {
	logger.Debug("Finding book by ID including deleted in database", map[string]interface{}{
		"book_id": id,
	})

	var book model.Book
	if err := r.db.Unscoped().First(&book, id).Error; err != nil {
		logger.Error("Failed to find book by ID including deleted in database", err, map[string]interface{}{
			"book_id": id,
		})
		return nil, err
	}

	logger.Debug("Book found by ID including deleted in database", map[string]interface{}{
		"book_id": book.ID,
		"title":   book.Title,
		"deleted": book.DeletedAt.Valid,
	})
	return &book, nil
}

func (r *bookRepository) FindByISBN(isbn string) (*model.Book, error) {
	logger.Debug("Finding book by ISBN in database", map[string]interface{}{
		"isbn": isbn,
	})

	var book model.Book
	if err := r.db.Where("isbn = ?", isbn).First(&book).Error; err != nil {
		logger.Error("Failed to find book by ISBN in database", err, map[string]interface{}{
			"isbn": isbn,
		})
		return nil, err
	}

	logger.Debug("Book found by ISBN in database", map[string]interface{}{
		"book_id": book.ID,
		"isbn":    book.ISBN,
	})
	return &book, nil
}

func (r *bookRepository) FindByCategoryID(categoryID uint) ([]model.Book, error) {
	logger.Debug("Finding books by category ID in database", map[string]interface{}{
		"category_id": categoryID,
	})

	var books []model.Book
	err := r.db.
		Joins("JOIN books_categories ON books_categories.book_id = books.id").
		Where("books_categories.category_id = ?", categoryID).
		Preload("Categories").
		Order("books.id ASC").
		Find(&books).Error
	if err != nil {
		logger.Error("Failed to find books by category ID in database", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return nil, err
	}

	logger.Debug("Books found by category ID in database", map[string]interface{}{
		"category_id": categoryID,
		"count":       len(books),
	})
	return books, nil
}

// Search applies the composed specification as a gorm scope. The soft delete
// filter stays active, so removed books never surface in search results.
func (r *bookRepository) Search(spec Specification, limit, offset int) ([]model.Book, error) {
	logger.Debug("Searching books in database", map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	})

	var books []model.Book
	query := r.db.Model(&model.Book{}).
		Scopes(spec.Scope()).
		Preload("Categories").
		Order("books.id ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&books).Error; err != nil {
		logger.Error("Failed to search books in database", err, map[string]interface{}{
			"limit":  limit,
			"offset": offset,
		})
		return nil, err
	}

	logger.Debug("Books searched in database", map[string]interface{}{
		"count": len(books),
	})
	return books, nil
}

func (r *bookRepository) Update(book *model.Book) error {
	logger.Debug("Updating book in database", map[string]interface{}{
		"book_id": book.ID,
		"title":   book.Title,
	})

	if err := r.db.Save(book).Error; err != nil {
		logger.Error("Failed to update book in database", err, map[string]interface{}{
			"book_id": book.ID,
		})
		return err
	}

	logger.Debug("Book updated in database", map[string]interface{}{
		"book_id": book.ID,
		"title":   book.Title,
	})
	return nil
}

func (r *bookRepository) Delete(id uint) error {
	logger.Debug("Deleting book from database", map[string]interface{}{
		"book_id": id,
	})

	if err := r.db.Delete(&model.Book{}, id).Error; err != nil {
		logger.Error("Failed to delete book from database", err, map[string]interface{}{
			"book_id": id,
		})
		return err
	}

	logger.Debug("Book deleted from database", map[string]interface{}{
		"book_id": id,
	})
	return nil
}
