package repository

import (
	"testing"

	"github.com/pageturn/bookstore-backend/internal/app/model"
	"github.com/pageturn/bookstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserTest(t *testing.T) (*gorm.DB, UserRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	return testDB, NewUserRepository(testDB)
}

func TestUserRepository_Create(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Email:        "reader@example.com",
		PasswordHash: "hashed",
		FirstName:    "Avery",
		LastName:     "Reed",
		Role:         model.RoleUser,
	}

	err := repo.Create(user)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	// Every account gets its cart at creation.
	require.NotNil(t, user.Cart)
	assert.NotZero(t, user.Cart.ID)
	assert.Equal(t, user.ID, user.Cart.UserID)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Email:        "reader@example.com",
		PasswordHash: "hashed",
		FirstName:    "Avery",
		LastName:     "Reed",
		Role:         model.RoleUser,
	}
	require.NoError(t, repo.Create(user))

	duplicate := &model.User{
		Email:        "reader@example.com",
		PasswordHash: "other",
		FirstName:    "Morgan",
		LastName:     "Hale",
		Role:         model.RoleUser,
	}
	err := repo.Create(duplicate)
	assert.Error(t, err)

	// The cart write rolls back with the failed user insert.
	var cartCount int64
	require.NoError(t, testDB.Model(&model.Cart{}).Count(&cartCount).Error)
	assert.Equal(t, int64(1), cartCount)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Email:        "reader@example.com",
		PasswordHash: "hashed",
		FirstName:    "Avery",
		LastName:     "Reed",
		Role:         model.RoleUser,
	}
	require.NoError(t, repo.Create(user))

	found, err := repo.FindByEmail("reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByEmail("missing@example.com")
	assert.Error(t, err)
}

func TestUserRepository_FindByID(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Email:        "reader@example.com",
		PasswordHash: "hashed",
		FirstName:    "Avery",
		LastName:     "Reed",
		Role:         model.RoleAdmin,
	}
	require.NoError(t, repo.Create(user))

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", found.Email)
	assert.Equal(t, model.RoleAdmin, found.Role)

	_, err = repo.FindByID(9999)
	assert.Error(t, err)
}

func TestUserRepository_Update(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Email:        "reader@example.com",
		PasswordHash: "hashed",
		FirstName:    "Avery",
		LastName:     "Reed",
		Role:         model.RoleUser,
	}
	require.NoError(t, repo.Create(user))

	user.ShippingAddress = "12 Elm Street, Portland"
	require.NoError(t, repo.Update(user))

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "12 Elm Street, Portland", found.ShippingAddress)
}
