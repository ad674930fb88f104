package delivery

import (
	"errors"
	"net/http"

	"category_service/internal/domain"

	"github.com/gin-gonic/gin"
)

// MessageBody is the {"message": ...} shape shared by delete confirmations
// and simple failures.
type MessageBody struct {
	Message string `json:"message"`
}

// ValidationErrorBody is the 422 shape: the first violation as the top-level
// message plus the violations grouped per field.
type ValidationErrorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func MessageResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageBody{
		Message: message,
	})
}

// ErrorResponse writes the response for a use case error. The error kind
// decides the status code, so handlers never match on message text.
func ErrorResponse(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, ValidationErrorBody{
			Message: validationErr.Message,
			Errors: map[string][]string{
				validationErr.Field: {validationErr.Message},
			},
		})
		return
	}

	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		MessageResponse(c, http.StatusNotFound, notFoundErr.Error())
		return
	}

	MessageResponse(c, http.StatusInternalServerError, "Internal server error")
}
