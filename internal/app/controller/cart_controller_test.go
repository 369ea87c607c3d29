package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageturn/bookstore-backend/internal/app/model"
	"github.com/pageturn/bookstore-backend/internal/app/repository"
	"github.com/pageturn/bookstore-backend/internal/app/service"
	"github.com/pageturn/bookstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartControllerTest(t *testing.T) (*CartController, *gin.Engine, *gorm.DB, *model.User, *model.Book) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	bookRepo := repository.NewBookRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	cartService := service.NewCartService(cartRepo, bookRepo)
	cartController := NewCartController(cartService)

	// Registering through the repository also creates the cart.
	user := &model.User{
		Email:        "avery@example.com",
		PasswordHash: "hash",
		FirstName:    "Avery",
		LastName:     "Reed",
		Role:         model.RoleUser,
	}
	require.NoError(t, userRepo.Create(user))

	book := &model.Book{
		Title:  "Dune",
		Author: "Frank Herbert",
		ISBN:   "9780441013593",
		Price:  10.00,
	}
	require.NoError(t, bookRepo.Create(book))

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return cartController, router, testDB, user, book
}

// Helper function to set user ID in context
func setUserIDInContext(c *gin.Context, userID uint) {
	c.Set("user_id", userID)
}

func addItemToCart(t *testing.T, testDB *gorm.DB, userID, bookID uint, quantity int) *model.CartItem {
	t.Helper()

	cartRepo := repository.NewCartRepository(testDB)
	cart, err := cartRepo.FindByUserID(userID)
	require.NoError(t, err)

	item := &model.CartItem{
		CartID:   cart.ID,
		BookID:   bookID,
		Quantity: quantity,
	}
	require.NoError(t, cartRepo.CreateItem(item))
	return item
}

func TestCartController_GetCart_Success(t *testing.T) {
	controller, router, testDB, user, book := setupCartControllerTest(t)

	addItemToCart(t, testDB, user.ID, book.ID, 2)

	router.GET("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, float64(1), response["count"])
	assert.Equal(t, float64(20), response["total"]) // 10.00 * 2
}

func TestCartController_GetCart_Empty(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.GET("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, float64(0), response["count"])
	assert.Equal(t, float64(0), response["total"])
}

func TestCartController_GetCart_Unauthorized(t *testing.T) {
	controller, router, _, _, _ := setupCartControllerTest(t)

	router.GET("/cart", controller.GetCart)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "User not authenticated", response["error"])
}

func TestCartController_AddItem_Success(t *testing.T) {
	controller, router, _, user, book := setupCartControllerTest(t)

	router.POST("/cart/items", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddItem(c)
	})

	reqBody := AddCartItemRequest{
		BookID:   book.ID,
		Quantity: 2,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Item added to cart successfully", response["message"])
}

func TestCartController_AddItem_BookNotFound(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.POST("/cart/items", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddItem(c)
	})

	reqBody := AddCartItemRequest{
		BookID:   9999,
		Quantity: 2,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Book not found", response["error"])
}

func TestCartController_AddItem_InvalidRequest(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.POST("/cart/items", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddItem(c)
	})

	tests := []struct {
		name       string
		reqBody    map[string]interface{}
		wantStatus int
		wantError  string
	}{
		{
			name:       "Missing book_id",
			reqBody:    map[string]interface{}{"quantity": 2},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request data",
		},
		{
			name:       "Missing quantity",
			reqBody:    map[string]interface{}{"book_id": 1},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request data",
		},
		{
			name:       "Zero quantity",
			reqBody:    map[string]interface{}{"book_id": 1, "quantity": 0},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request data",
		},
		{
			name:       "Negative quantity",
			reqBody:    map[string]interface{}{"book_id": 1, "quantity": -1},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonBody, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewBuffer(jsonBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)

			assert.Equal(t, tt.wantError, response["error"])
		})
	}
}

func TestCartController_UpdateItem_Success(t *testing.T) {
	controller, router, testDB, user, book := setupCartControllerTest(t)

	item := addItemToCart(t, testDB, user.ID, book.ID, 2)

	router.PUT("/cart/items/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateItem(c)
	})

	reqBody := UpdateCartItemRequest{
		Quantity: 5,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/cart/items/%d", item.ID), bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Cart item updated successfully", response["message"])
}

func TestCartController_UpdateItem_NotFound(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.PUT("/cart/items/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateItem(c)
	})

	reqBody := UpdateCartItemRequest{
		Quantity: 5,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, "/cart/items/9999", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Cart item not found", response["error"])
}

func TestCartController_UpdateItem_InvalidID(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.PUT("/cart/items/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateItem(c)
	})

	reqBody := UpdateCartItemRequest{
		Quantity: 5,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, "/cart/items/invalid", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Invalid cart item ID", response["error"])
}

func TestCartController_UpdateItem_OtherUsersItem(t *testing.T) {
	controller, router, testDB, user, book := setupCartControllerTest(t)

	item := addItemToCart(t, testDB, user.ID, book.ID, 2)

	userRepo := repository.NewUserRepository(testDB)
	other := &model.User{
		Email:        "morgan@example.com",
		PasswordHash: "hash",
		FirstName:    "Morgan",
		LastName:     "Hale",
		Role:         model.RoleUser,
	}
	require.NoError(t, userRepo.Create(other))

	router.PUT("/cart/items/:id", func(c *gin.Context) {
		setUserIDInContext(c, other.ID)
		controller.UpdateItem(c)
	})

	reqBody := UpdateCartItemRequest{
		Quantity: 5,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/cart/items/%d", item.ID), bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Cart item not found", response["error"])
}

func TestCartController_RemoveItem_Success(t *testing.T) {
	controller, router, testDB, user, book := setupCartControllerTest(t)

	item := addItemToCart(t, testDB, user.ID, book.ID, 2)

	router.DELETE("/cart/items/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.RemoveItem(c)
	})

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/cart/items/%d", item.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Cart item removed successfully", response["message"])
}

func TestCartController_RemoveItem_NotFound(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.DELETE("/cart/items/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.RemoveItem(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/cart/items/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Cart item not found", response["error"])
}

func TestCartController_ClearCart_Success(t *testing.T) {
	controller, router, testDB, user, book := setupCartControllerTest(t)

	bookRepo := repository.NewBookRepository(testDB)
	second := &model.Book{
		Title:  "Dune Messiah",
		Author: "Frank Herbert",
		ISBN:   "9780441172696",
		Price:  9.00,
	}
	require.NoError(t, bookRepo.Create(second))

	addItemToCart(t, testDB, user.ID, book.ID, 2)
	addItemToCart(t, testDB, user.ID, second.ID, 3)

	router.DELETE("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.ClearCart(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Cart cleared successfully", response["message"])

	// Verify cart is empty
	cartRepo := repository.NewCartRepository(testDB)
	cart, err := cartRepo.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 0)
}

func TestCartController_ClearCart_Unauthorized(t *testing.T) {
	controller, router, _, _, _ := setupCartControllerTest(t)

	router.DELETE("/cart", controller.ClearCart)

	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "User not authenticated", response["error"])
}
