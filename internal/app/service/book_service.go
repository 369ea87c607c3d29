package service

import (
	"errors"

	"github.com/pageturn/bookstore-backend/internal/app/model"
	"github.com/pageturn/bookstore-backend/internal/app/repository"
	"github.com/pageturn/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrISBNExists      = errors.New("book with this ISBN already exists")
	ErrInvalidBookData = errors.New("invalid book data")
)

type BookService interface {
	CreateBook(book *model.Book) error
	GetBooks(limit, offset int) ([]model.Book, error)
	GetBookByID(id uint) (*model.Book, error)
	SearchBooks(params repository.BookSearchParams, limit, offset int) ([]model.Book, error)
	UpdateBook(book *model.Book) error
	DeleteBook(id uint) error
}

type bookService struct {
	bookRepo repository.BookRepository
	builder  *repository.BookSpecificationBuilder
}

func NewBookService(bookRepo repository.BookRepository, builder *repository.BookSpecificationBuilder) BookService {
	return &bookService{
		bookRepo: bookRepo,
		builder:  builder,
	}
}

func (s *bookService) CreateBook(book *model.Book) error {
	logger.Info("Creating book", map[string]interface{}{
		"title": book.Title,
		"isbn":  book.ISBN,
	})

	if book.Title == "" || book.Author == "" || book.ISBN == "" || book.Price < 0 {
		logger.Warn("Cannot create book: invalid data", map[string]interface{}{
			"title": book.Title,
			"isbn":  book.ISBN,
		})
		return ErrInvalidBookData
	}

	existing, err := s.bookRepo.FindByISBN(book.ISBN)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing ISBN", err, map[string]interface{}{
			"isbn": book.ISBN,
		})
		return err
	}
	if existing != nil {
		logger.Warn("Cannot create book: ISBN already exists", map[string]interface{}{
			"isbn":    book.ISBN,
			"book_id": existing.ID,
		})
		return ErrISBNExists
	}

	if err := s.bookRepo.Create(book); err != nil {
		logger.Error("Failed to create book", err, map[string]interface{}{
			"title": book.Title,
		})
		return err
	}

	logger.Info("Book created successfully", map[string]interface{}{
		"book_id": book.ID,
		"title":   book.Title,
	})
	return nil
}

func (s *bookService) GetBooks(limit, offset int) ([]model.Book, error) {
	logger.Debug("Fetching books", map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	})

	books, err := s.bookRepo.FindAll(limit, offset)
	if err != nil {
		logger.Error("Failed to fetch books", err, nil)
		return nil, err
	}

	logger.Info("Books fetched successfully", map[string]interface{}{
		"count": len(books),
	})
	return books, nil
}

func (s *bookService) GetBookByID(id uint) (*model.Book, error) {
	logger.Debug("Fetching book by ID", map[string]interface{}{
		"book_id": id,
	})

	book, err := s.bookRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Book not found", map[string]interface{}{
				"book_id": id,
			})
			return nil, ErrBookNotFound
		}
		logger.Error("Failed to fetch book", err, map[string]interface{}{
			"book_id": id,
		})
		return nil, err
	}

	return book, nil
}

// SearchBooks composes the given criteria into one predicate and runs it.
// No criteria means the whole visible catalog.
func (s *bookService) SearchBooks(params repository.BookSearchParams, limit, offset int) ([]model.Book, error) {
	logger.Debug("Searching books", map[string]interface{}{
		"titles":  params.Titles,
		"authors": params.Authors,
		"isbns":   params.ISBNs,
	})

	spec, err := s.builder.Build(params)
	if err != nil {
		logger.Error("Failed to build search specification", err, map[string]interface{}{
			"titles":  params.Titles,
			"authors": params.Authors,
			"isbns":   params.ISBNs,
		})
		return nil, err
	}

	books, err := s.bookRepo.Search(spec, limit, offset)
	if err != nil {
		logger.Error("Failed to search books", err, nil)
		return nil, err
	}

	logger.Info("Book search completed", map[string]interface{}{
		"count": len(books),
	})
	return books, nil
}

func (s *bookService) UpdateBook(book *model.Book) error {
	logger.Info("Updating book", map[string]interface{}{
		"book_id": book.ID,
		"title":   book.Title,
	})

	existing, err := s.bookRepo.FindByID(book.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update book: not found", map[string]interface{}{
				"book_id": book.ID,
			})
			return ErrBookNotFound
		}
		logger.Error("Failed to fetch book for update", err, map[string]interface{}{
			"book_id": book.ID,
		})
		return err
	}

	if book.ISBN != existing.ISBN {
		conflict, err := s.bookRepo.FindByISBN(book.ISBN)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to check existing ISBN", err, map[string]interface{}{
				"isbn": book.ISBN,
			})
			return err
		}
		if conflict != nil {
			logger.Warn("Cannot update book: ISBN already exists", map[string]interface{}{
				"isbn":    book.ISBN,
				"book_id": conflict.ID,
			})
			return ErrISBNExists
		}
	}

	if err := s.bookRepo.Update(book); err != nil {
		logger.Error("Failed to update book", err, map[string]interface{}{
			"book_id": book.ID,
		})
		return err
	}

	logger.Info("Book updated successfully", map[string]interface{}{
		"book_id": book.ID,
	})
	return nil
}

// DeleteBook soft deletes a catalog entry. The book disappears from listings
// and search, but existing order history keeps resolving it.
func (s *bookService) DeleteBook(id uint) error {
	logger.Info("Deleting book", map[string]interface{}{
		"book_id": id,
	})

	if _, err := s.bookRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot delete book: not found", map[string]interface{}{
				"book_id": id,
			})
			return ErrBookNotFound
		}
		logger.Error("Failed to fetch book for deletion", err, map[string]interface{}{
			"book_id": id,
		})
		return err
	}

	if err := s.bookRepo.Delete(id); err != nil {
		logger.Error("Failed to delete book", err, map[string]interface{}{
			"book_id": id,
		})
		return err
	}

	logger.Info("Book deleted successfully", map[string]interface{}{
		"book_id": id,
	})
	return nil
}
