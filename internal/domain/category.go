package domain

import "fmt"

// DefaultIcon is stored when a category is created without an icon.
const DefaultIcon = "📁"

// Name and icon limits, counted in Unicode code points rather than bytes.
const (
	MinNameLength = 2
	MaxNameLength = 50
	MaxIconLength = 10
)

type Category struct {
	ID   int    `json:"id"`   // assigned by the service, starts at 1
	Name string `json:"name"` // stored trimmed, 2-50 characters
	Icon string `json:"icon"` // at most 10 characters, never empty once stored
}

type CategoryRepository interface {
	ListCategories() []Category
	InsertCategory(category Category)
	CreateCategory(category Category) Category
	RemoveCategoryByID(id int) bool
}

// ValidationError reports the first business rule a create request violates.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports an operation on a category id that is not in the store.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("category with id %d not found", e.ID)
}
