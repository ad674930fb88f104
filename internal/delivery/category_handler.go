package delivery

import (
	"net/http"
	"strconv"

	"category_service/internal/domain"
	"category_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	useCase usecase.CategoryUseCase
	log     *logrus.Logger
}

func NewCategoryHandler(uc usecase.CategoryUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

// CreateCategoryRequest is the POST /categories body. Icon is optional;
// a JSON null or an absent field both bind to the empty string.
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories := h.useCase.ListCategories()

	h.log.Infof("Retrieved %d categories", len(categories))
	if len(categories) == 0 {
		// Return an empty array instead of null
		c.JSON(http.StatusOK, []domain.Category{})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create category: %v", err)
		MessageResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	createdCategory, err := h.useCase.CreateCategory(req.Name, req.Icon)
	if err != nil {
		h.log.Warnf("Failed to create category '%s': %v", req.Name, err)
		ErrorResponse(c, err)
		return
	}

	h.log.Infof("Category created successfully: ID %d, Name %s", createdCategory.ID, createdCategory.Name)
	c.JSON(http.StatusCreated, createdCategory)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid category ID parameter for delete: %s", idStr)
		MessageResponse(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	if err := h.useCase.DeleteCategory(id); err != nil {
		h.log.Warnf("Failed to delete category ID %d: %v", id, err)
		ErrorResponse(c, err)
		return
	}

	h.log.Infof("Category deleted successfully: ID %d", id)
	MessageResponse(c, http.StatusOK, "Category deleted successfully")
}
