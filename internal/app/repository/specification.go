package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrUnknownFilterField is returned when no provider is registered for a
	// field key. Keys come from the builder itself, never from user input,
	// so hitting this is a programming error rather than bad input.
	ErrUnknownFilterField = errors.New("no specification provider for field")

	// ErrDuplicateFilterField is returned when two providers claim the same
	// field key. Registration happens once at startup, so this is fatal.
	ErrDuplicateFilterField = errors.New("specification provider already registered for field")
)

// Specification is a composable query predicate expressed as a gorm scope.
// Specifications chained onto the same query combine conjunctively.
type Specification func(*gorm.DB) *gorm.DB

// MatchAll is the identity specification: it narrows nothing.
func MatchAll() Specification {
	return func(db *gorm.DB) *gorm.DB {
		return db
	}
}

// Scope adapts the specification for use with gorm's Scopes chaining.
func (s Specification) Scope() func(*gorm.DB) *gorm.DB {
	return s
}

// And returns a specification applying s and then other.
func (s Specification) And(other Specification) Specification {
	return func(db *gorm.DB) *gorm.DB {
		return other(s(db))
	}
}

// SpecificationProvider builds a predicate over a single searchable field.
// Build is given a non-empty list of raw values and must return a predicate
// with set-membership semantics: a record matches when its field value
// equals any of the given values.
type SpecificationProvider interface {
	Key() string
	Build(values []string) Specification
}

// SpecificationRegistry maps field keys to their providers. It decouples
// which fields are searchable from how each field's predicate is built.
type SpecificationRegistry struct {
	providers map[string]SpecificationProvider
}

func NewSpecificationRegistry() *SpecificationRegistry {
	return &SpecificationRegistry{
		providers: make(map[string]SpecificationProvider),
	}
}

// Register associates a provider with its field key. Duplicate registration
// is a configuration error and must abort startup.
func (r *SpecificationRegistry) Register(provider SpecificationProvider) error {
	key := provider.Key()
	if _, exists := r.providers[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateFilterField, key)
	}
	r.providers[key] = provider
	return nil
}

// Provider returns the provider registered for key.
func (r *SpecificationRegistry) Provider(key string) (SpecificationProvider, error) {
	provider, exists := r.providers[key]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilterField, key)
	}
	return provider, nil
}
