package presenters

import (
	"Foodgram-Backend/domain"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type (
	Response struct {
		Status  string      `json:"status"`
		Message string      `json:"message"`
		Data    interface{} `json:"data,omitempty"`
	}

	ErrorDetail struct {
		Status     string                  `json:"status"`
		Message    string                  `json:"message"`
		Error      string                  `json:"error,omitempty"`
		Violations []domain.FieldViolation `json:"violations,omitempty"`
	}
)

func SuccessResponse(c *fiber.Ctx, data interface{}, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	detail := ErrorDetail{
		Status:  "error",
		Message: message,
	}
	if err != nil {
		detail.Error = err.Error()
		detail.Violations = violationsFromError(err)
	}
	return c.Status(statusCode).JSON(detail)
}

// StatusFromError maps domain sentinel errors onto HTTP status codes so
// handlers do not pick codes ad hoc. Anything unknown is a bad request.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrIngredientNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNotRecipeAuthor),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrUserAlreadyExists),
		errors.Is(err, domain.ErrAlreadySubscribed),
		errors.Is(err, domain.ErrAlreadyFavorited),
		errors.Is(err, domain.ErrAlreadyInCart),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

func violationsFromError(err error) []domain.FieldViolation {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Violations
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		violations := make([]domain.FieldViolation, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			violations = append(violations, domain.FieldViolation{
				Field:   strings.ToLower(fe.Field()),
				Message: "failed on rule: " + fe.Tag(),
			})
		}
		return violations
	}
	return nil
}
