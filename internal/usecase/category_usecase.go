package usecase

import (
	"strings"
	"unicode/utf8"

	"category_service/internal/domain"

	"github.com/sirupsen/logrus"
)

type CategoryUseCase interface {
	ListCategories() []domain.Category
	CreateCategory(name, icon string) (domain.Category, error)
	DeleteCategory(id int) error
}

var _ CategoryUseCase = (*categoryUseCase)(nil)

type categoryUseCase struct {
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewCategoryUseCase(repo domain.CategoryRepository, logger *logrus.Logger) CategoryUseCase {
	return &categoryUseCase{
		categoryRepo: repo,
		log:          logger,
	}
}

func (uc *categoryUseCase) ListCategories() []domain.Category {
	categories := uc.categoryRepo.ListCategories()
	uc.log.Infof("Use Case: Retrieved %d categories", len(categories))
	return categories
}

func (uc *categoryUseCase) CreateCategory(name, icon string) (domain.Category, error) {
	if err := validateCategoryInput(name, icon); err != nil {
		uc.log.Warnf("Use Case: Rejected category create for name '%s': %v", name, err)
		return domain.Category{}, err
	}

	name = strings.TrimSpace(name)
	icon = strings.TrimSpace(icon)
	if icon == "" {
		icon = domain.DefaultIcon
	}

	uc.log.Infof("Use Case: Attempting to create category with name '%s'", name)
	createdCategory := uc.categoryRepo.CreateCategory(domain.Category{Name: name, Icon: icon})
	uc.log.Infof("Use Case: Category '%s' created successfully with ID %d", createdCategory.Name, createdCategory.ID)
	return createdCategory, nil
}

func (uc *categoryUseCase) DeleteCategory(id int) error {
	uc.log.Infof("Use Case: Attempting to delete category ID %d", id)
	if !uc.categoryRepo.RemoveCategoryByID(id) {
		uc.log.Warnf("Use Case: Attempted to delete non-existent category ID %d", id)
		return &domain.NotFoundError{ID: id}
	}

	uc.log.Infof("Use Case: Category deleted successfully for ID %d", id)
	return nil
}

// validateCategoryInput checks the create rules in a fixed order: name
// present, name length, icon length. Lengths count characters, not bytes,
// and the name is measured after trimming surrounding whitespace.
func validateCategoryInput(name, icon string) error {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return &domain.ValidationError{Field: "name", Message: "name is required"}
	}
	if utf8.RuneCountInString(trimmedName) < domain.MinNameLength {
		return &domain.ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	if utf8.RuneCountInString(trimmedName) > domain.MaxNameLength {
		return &domain.ValidationError{Field: "name", Message: "name must be at most 50 characters"}
	}
	if utf8.RuneCountInString(strings.TrimSpace(icon)) > domain.MaxIconLength {
		return &domain.ValidationError{Field: "icon", Message: "icon must be at most 10 characters"}
	}
	return nil
}
