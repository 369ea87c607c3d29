package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pageturn/bookstore-backend/internal/app/model"
	"github.com/pageturn/bookstore-backend/internal/app/repository"
	"github.com/pageturn/bookstore-backend/internal/app/service"
	"github.com/pageturn/bookstore-backend/internal/middleware"
)

type BookController struct {
	bookService     service.BookService
	categoryService service.CategoryService
}

func NewBookController(bookService service.BookService, categoryService service.CategoryService) *BookController {
	return &BookController{
		bookService:     bookService,
		categoryService: categoryService,
	}
}

type BookRequest struct {
	Title       string  `json:"title" binding:"required"`
	Author      string  `json:"author" binding:"required"`
	ISBN        string  `json:"isbn" binding:"required"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Description string  `json:"description"`
	CoverImage  string  `json:"cover_image"`
	CategoryIDs []uint  `json:"category_ids"`
}

// parsePagination reads limit and offset query parameters. Zero limit means
// no paging.
func parsePagination(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// GetBooks lists the catalog
// GET /api/v1/books
func (ctrl *BookController) GetBooks(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, offset := parsePagination(c)

	books, err := ctrl.bookService.GetBooks(limit, offset)
	if err != nil {
		log.Error("Failed to fetch books", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch books",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"books": books,
		"count": len(books),
	})
}

// SearchBooks searches the catalog by repeatable field criteria
// GET /api/v1/books/search?title=...&author=...&isbn=...
func (ctrl *BookController) SearchBooks(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	params := repository.BookSearchParams{
		Titles:  c.QueryArray("title"),
		Authors: c.QueryArray("author"),
		ISBNs:   c.QueryArray("isbn"),
	}
	limit, offset := parsePagination(c)

	log.Debug("Searching books", map[string]interface{}{
		"titles":  params.Titles,
		"authors": params.Authors,
		"isbns":   params.ISBNs,
	})

	books, err := ctrl.bookService.SearchBooks(params, limit, offset)
	if err != nil {
		log.Error("Failed to search books", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to search books",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"books": books,
		"count": len(books),
	})
}

// GetBook returns a single book
// GET /api/v1/books/:id
func (ctrl *BookController) GetBook(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid book ID format", map[string]interface{}{
			"book_id": idStr,
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID",
		})
		return
	}

	book, err := ctrl.bookService.GetBookByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book not found",
			})
			return
		}
		log.Error("Failed to fetch book", err, map[string]interface{}{
			"book_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch book",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"book": book,
	})
}

// CreateBook adds a book to the catalog (admin)
// POST /api/v1/books
func (ctrl *BookController) CreateBook(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create book request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	book := &model.Book{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Price:       req.Price,
		Description: req.Description,
		CoverImage:  req.CoverImage,
	}

	categories, ok := ctrl.resolveCategories(c, req.CategoryIDs)
	if !ok {
		return
	}
	book.Categories = categories

	if err := ctrl.bookService.CreateBook(book); err != nil {
		if errors.Is(err, service.ErrISBNExists) {
			log.Warn("Duplicate ISBN", map[string]interface{}{
				"isbn": req.ISBN,
			})
			c.JSON(http.StatusConflict, gin.H{
				"error": "Book with this ISBN already exists",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidBookData) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid book data",
			})
			return
		}
		log.Error("Failed to create book", err, map[string]interface{}{
			"title": req.Title,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create book",
		})
		return
	}

	log.Info("Book created successfully", map[string]interface{}{
		"book_id": book.ID,
		"title":   book.Title,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Book created successfully",
		"book":    book,
	})
}

// UpdateBook updates a catalog entry (admin)
// PUT /api/v1/books/:id
func (ctrl *BookController) UpdateBook(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID",
		})
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update book request", map[string]interface{}{
			"book_id": id,
			"error":   err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	book, err := ctrl.bookService.GetBookByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book not found",
			})
			return
		}
		log.Error("Failed to fetch book for update", err, map[string]interface{}{
			"book_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update book",
		})
		return
	}

	book.Title = req.Title
	book.Author = req.Author
	book.ISBN = req.ISBN
	book.Price = req.Price
	book.Description = req.Description
	if req.CoverImage != "" {
		book.CoverImage = req.CoverImage
	}

	if req.CategoryIDs != nil {
		categories, ok := ctrl.resolveCategories(c, req.CategoryIDs)
		if !ok {
			return
		}
		book.Categories = categories
	}

	if err := ctrl.bookService.UpdateBook(book); err != nil {
		if errors.Is(err, service.ErrISBNExists) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Book with this ISBN already exists",
			})
			return
		}
		log.Error("Failed to update book", err, map[string]interface{}{
			"book_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update book",
		})
		return
	}

	log.Info("Book updated successfully", map[string]interface{}{
		"book_id": book.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Book updated successfully",
		"book":    book,
	})
}

// DeleteBook removes a book from the catalog (admin)
// DELETE /api/v1/books/:id
func (ctrl *BookController) DeleteBook(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID",
		})
		return
	}

	if err := ctrl.bookService.DeleteBook(uint(id)); err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book not found",
			})
			return
		}
		log.Error("Failed to delete book", err, map[string]interface{}{
			"book_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete book",
		})
		return
	}

	log.Info("Book deleted successfully", map[string]interface{}{
		"book_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Book deleted successfully",
	})
}

// resolveCategories loads the referenced categories, responding with an
// error itself when one is missing.
func (ctrl *BookController) resolveCategories(c *gin.Context, ids []uint) ([]model.Category, bool) {
	log := middleware.GetLoggerFromContext(c)

	categories := make([]model.Category, 0, len(ids))
	for _, categoryID := range ids {
		category, err := ctrl.categoryService.GetCategoryByID(categoryID)
		if err != nil {
			if errors.Is(err, service.ErrCategoryNotFound) {
				log.Warn("Referenced category not found", map[string]interface{}{
					"category_id": categoryID,
				})
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "Category not found",
				})
				return nil, false
			}
			log.Error("Failed to resolve category", err, map[string]interface{}{
				"category_id": categoryID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to resolve categories",
			})
			return nil, false
		}
		categories = append(categories, *category)
	}
	return categories, true
}
