package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pageturn/bookstore-backend/config"
	"github.com/pageturn/bookstore-backend/internal/app/model"
	"github.com/pageturn/bookstore-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports a book catalog from an XLSX file. Expected columns:
// title | author | isbn | price | description | categories (semicolon separated)
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	books, categories, err := readCatalogFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total books to import: %d\n", len(books))
	fmt.Printf("Total categories to import: %d\n", len(categories))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	gormDB := db.GetDB()

	// Categories first so books can reference them.
	byName := make(map[string]*model.Category, len(categories))
	for _, name := range categories {
		category := &model.Category{Name: name}
		if err := gormDB.Where("name = ?", name).FirstOrCreate(category).Error; err != nil {
			log.Fatal("Failed to import category:", err)
		}
		byName[name] = category
	}

	imported := 0
	skipped := 0
	for i := range books {
		book := &books[i].book
		for _, name := range books[i].categoryNames {
			if category, ok := byName[name]; ok {
				book.Categories = append(book.Categories, *category)
			}
		}

		var count int64
		if err := gormDB.Model(&model.Book{}).
			Where("isbn = ?", book.ISBN).
			Count(&count).Error; err != nil {
			log.Fatal("Failed to check existing ISBN:", err)
		}
		if count > 0 {
			skipped++
			continue
		}

		if err := gormDB.Create(book).Error; err != nil {
			log.Fatal("Failed to import book:", err)
		}
		imported++

		if imported%100 == 0 {
			fmt.Printf("Imported %d books...\n", imported)
		}
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("  Books imported: %d\n", imported)
	fmt.Printf("  Books skipped (duplicate ISBN): %d\n", skipped)
}

type bookRow struct {
	book          model.Book
	categoryNames []string
}

func readCatalogFromXLSX(filePath string) ([]bookRow, []string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data found in XLSX file")
	}

	var books []bookRow
	seenISBN := make(map[string]bool)
	categorySet := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 4 {
			skippedCount++
			continue
		}

		title := strings.TrimSpace(row[0])
		author := strings.TrimSpace(row[1])
		isbn := strings.TrimSpace(row[2])
		priceStr := strings.TrimSpace(row[3])

		var description string
		if len(row) > 4 {
			description = strings.TrimSpace(row[4])
		}
		var categoryNames []string
		if len(row) > 5 {
			for _, name := range strings.Split(row[5], ";") {
				name = strings.TrimSpace(name)
				if name != "" {
					categoryNames = append(categoryNames, name)
					categorySet[name] = true
				}
			}
		}

		if title == "" || author == "" || isbn == "" {
			skippedCount++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			skippedCount++
			continue
		}

		if seenISBN[isbn] {
			skippedCount++
			continue
		}
		seenISBN[isbn] = true

		books = append(books, bookRow{
			book: model.Book{
				Title:       title,
				Author:      author,
				ISBN:        isbn,
				Price:       price,
				Description: description,
			},
			categoryNames: categoryNames,
		})
	}

	categories := make([]string, 0, len(categorySet))
	for name := range categorySet {
		categories = append(categories, name)
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid books: %d\n", len(books))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return books, categories, nil
}
