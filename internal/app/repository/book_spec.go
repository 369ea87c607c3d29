package repository

import (
	"gorm.io/gorm"
)

// Searchable book fields. The builder walks these in a fixed order so that
// composed queries are deterministic.
const (
	BookFieldTitle  = "title"
	BookFieldAuthor = "author"
	BookFieldISBN   = "isbn"
)

// BookSearchParams is a sparse set of search criteria. A nil or empty slice
// contributes nothing to the composed predicate. Multiple values within one
// field are OR-ed (membership); distinct fields are AND-ed.
type BookSearchParams struct {
	Titles  []string `form:"title" json:"titles"`
	Authors []string `form:"author" json:"authors"`
	ISBNs   []string `form:"isbn" json:"isbns"`
}

// IsEmpty reports whether no criteria were supplied at all.
func (p BookSearchParams) IsEmpty() bool {
	return len(p.Titles) == 0 && len(p.Authors) == 0 && len(p.ISBNs) == 0
}

// columnSpecificationProvider builds IN-membership predicates over a single
// books column.
type columnSpecificationProvider struct {
	key    string
	column string
}

func (p columnSpecificationProvider) Key() string {
	return p.key
}

func (p columnSpecificationProvider) Build(values []string) Specification {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(p.column+" IN ?", values)
	}
}

// NewBookSpecificationRegistry registers the provider set for the book
// catalog. Returns an error on duplicate keys, which callers should treat as
// fatal misconfiguration.
func NewBookSpecificationRegistry() (*SpecificationRegistry, error) {
	registry := NewSpecificationRegistry()

	providers := []SpecificationProvider{
		columnSpecificationProvider{key: BookFieldTitle, column: "books.title"},
		columnSpecificationProvider{key: BookFieldAuthor, column: "books.author"},
		columnSpecificationProvider{key: BookFieldISBN, column: "books.isbn"},
	}

	for _, provider := range providers {
		if err := registry.Register(provider); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// BookSpecificationBuilder composes a search request into one conjunctive
// specification.
type BookSpecificationBuilder struct {
	registry *SpecificationRegistry
}

func NewBookSpecificationBuilder(registry *SpecificationRegistry) *BookSpecificationBuilder {
	return &BookSpecificationBuilder{registry: registry}
}

// Build folds every non-empty criterion into the accumulated specification,
// in fixed field order. With no criteria the identity specification is
// returned and the query matches the full visible catalog.
func (b *BookSpecificationBuilder) Build(params BookSearchParams) (Specification, error) {
	spec := MatchAll()

	criteria := []struct {
		field  string
		values []string
	}{
		{BookFieldTitle, params.Titles},
		{BookFieldAuthor, params.Authors},
		{BookFieldISBN, params.ISBNs},
	}

	for _, criterion := range criteria {
		if len(criterion.values) == 0 {
			continue
		}
		provider, err := b.registry.Provider(criterion.field)
		if err != nil {
			return nil, err
		}
		spec = spec.And(provider.Build(criterion.values))
	}

	return spec, nil
}
