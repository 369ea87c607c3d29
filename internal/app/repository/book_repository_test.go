package repository

import (
	"testing"

	"github.com/pageturn/bookstore-backend/internal/app/model"
	"github.com/pageturn/bookstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBookTest(t *testing.T) (*gorm.DB, BookRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewBookRepository(testDB)
	return testDB, repo
}

func seedCatalog(t *testing.T, repo BookRepository) []model.Book {
	books := []model.Book{
		{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Price: 12.99},
		{Title: "Dune Messiah", Author: "Frank Herbert", ISBN: "9780593098233", Price: 10.99},
		{Title: "The Dispossessed", Author: "Ursula K. Le Guin", ISBN: "9780061054884", Price: 9.99},
		{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", ISBN: "9780441478125", Price: 11.50},
	}
	for i := range books {
		require.NoError(t, repo.Create(&books[i]))
	}
	return books
}

func buildBookSpec(t *testing.T, params BookSearchParams) Specification {
	registry, err := NewBookSpecificationRegistry()
	require.NoError(t, err)

	spec, err := NewBookSpecificationBuilder(registry).Build(params)
	require.NoError(t, err)
	return spec
}

func TestBookRepository_Create(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	book := &model.Book{
		Title:  "Dune",
		Author: "Frank Herbert",
		ISBN:   "9780441013593",
		Price:  12.99,
	}

	err := repo.Create(book)
	assert.NoError(t, err)
	assert.NotZero(t, book.ID)
}

func TestBookRepository_FindByID(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	book := &model.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Price: 12.99}
	require.NoError(t, repo.Create(book))

	tests := []struct {
		name    string
		id      uint
		wantErr bool
	}{
		{
			name:    "Existing book",
			id:      book.ID,
			wantErr: false,
		},
		{
			name:    "Non-existing book",
			id:      9999,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindByID(tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, found)
			} else {
				require.NoError(t, err)
				require.NotNil(t, found)
				assert.Equal(t, book.Title, found.Title)
			}
		})
	}
}

func TestBookRepository_FindByISBN(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	book := &model.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Price: 12.99}
	require.NoError(t, repo.Create(book))

	found, err := repo.FindByISBN("9780441013593")
	require.NoError(t, err)
	assert.Equal(t, book.ID, found.ID)

	_, err = repo.FindByISBN("0000000000000")
	assert.Error(t, err)
}

func TestBookRepository_SearchEmptyCriteria(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	seedCatalog(t, repo)

	// No criteria composes the identity predicate and returns the whole
	// visible catalog.
	spec := buildBookSpec(t, BookSearchParams{})

	found, err := repo.Search(spec, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, found, 4)
}

func TestBookRepository_SearchByTitleMembership(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	seedCatalog(t, repo)

	// Exact membership, not substring: "Dune" must not match "Dune Messiah".
	spec := buildBookSpec(t, BookSearchParams{Titles: []string{"Dune"}})

	found, err := repo.Search(spec, 0, 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Dune", found[0].Title)
}

func TestBookRepository_SearchMultipleValuesSameField(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	seedCatalog(t, repo)

	spec := buildBookSpec(t, BookSearchParams{
		Titles: []string{"Dune", "The Dispossessed"},
	})

	found, err := repo.Search(spec, 0, 0)
	require.NoError(t, err)
	require.Len(t, found, 2)

	titles := []string{found[0].Title, found[1].Title}
	assert.Contains(t, titles, "Dune")
	assert.Contains(t, titles, "The Dispossessed")
}

func TestBookRepository_SearchAcrossFields(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	seedCatalog(t, repo)

	// Different fields combine conjunctively: both must match.
	spec := buildBookSpec(t, BookSearchParams{
		Titles:  []string{"Dune", "The Dispossessed"},
		Authors: []string{"Ursula K. Le Guin"},
	})

	found, err := repo.Search(spec, 0, 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "The Dispossessed", found[0].Title)
}

func TestBookRepository_SearchNoMatch(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	seedCatalog(t, repo)

	spec := buildBookSpec(t, BookSearchParams{
		Titles:  []string{"Dune"},
		Authors: []string{"Ursula K. Le Guin"},
	})

	found, err := repo.Search(spec, 0, 0)
	assert.NoError(t, err)
	assert.Empty(t, found)
}

func TestBookRepository_SearchExcludesDeleted(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	books := seedCatalog(t, repo)
	require.NoError(t, repo.Delete(books[0].ID))

	spec := buildBookSpec(t, BookSearchParams{Titles: []string{"Dune"}})

	found, err := repo.Search(spec, 0, 0)
	assert.NoError(t, err)
	assert.Empty(t, found)

	all, err := repo.FindAll(0, 0)
	assert.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestBookRepository_SearchPagination(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	seedCatalog(t, repo)

	spec := buildBookSpec(t, BookSearchParams{})

	page1, err := repo.Search(spec, 2, 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)

	page2, err := repo.Search(spec, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)

	assert.NotEqual(t, page1[0].ID, page2[0].ID)
}

func TestBookRepository_Delete(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	book := &model.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Price: 12.99}
	require.NoError(t, repo.Create(book))

	err := repo.Delete(book.ID)
	assert.NoError(t, err)

	// Scoped lookups no longer see the book.
	_, err = repo.FindByID(book.ID)
	assert.Error(t, err)

	// Unscoped lookup still resolves it for order history.
	found, err := repo.FindByIDUnscoped(book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, found.ID)
	assert.True(t, found.DeletedAt.Valid)
}

func TestBookRepository_FindByCategoryID(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	categoryRepo := NewCategoryRepository(testDB)
	scifi := &model.Category{Name: "Science Fiction"}
	require.NoError(t, categoryRepo.Create(scifi))

	inCategory := &model.Book{
		Title:      "Dune",
		Author:     "Frank Herbert",
		ISBN:       "9780441013593",
		Price:      12.99,
		Categories: []model.Category{*scifi},
	}
	outside := &model.Book{Title: "Walden", Author: "Henry David Thoreau", ISBN: "9781505297720", Price: 7.99}
	require.NoError(t, repo.Create(inCategory))
	require.NoError(t, repo.Create(outside))

	found, err := repo.FindByCategoryID(scifi.ID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Dune", found[0].Title)
}

func TestBookRepository_Update(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	book := &model.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Price: 12.99}
	require.NoError(t, repo.Create(book))

	book.Price = 14.99
	book.Description = "50th anniversary edition"

	err := repo.Update(book)
	assert.NoError(t, err)

	updated, err := repo.FindByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, 14.99, updated.Price)
	assert.Equal(t, "50th anniversary edition", updated.Description)
}
