package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

// problem is the error body returned by every endpoint
type problem struct {
	Title  string                 `json:"title"`
	Status int                    `json:"status"`
	Detail string                 `json:"detail"`
	Errors []apperrors.FieldError `json:"errors,omitempty"`
}

func abortWithProblem(c *gin.Context, status int, detail string, fieldErrors ...apperrors.FieldError) {
	c.AbortWithStatusJSON(status, problem{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
		Errors: fieldErrors,
	})
}

// writeError maps an application error onto its HTTP status
func writeError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	var relatedErr *apperrors.RelatedAggregateError
	var appErr *apperrors.AppError

	switch {
	case errors.As(err, &validationErr):
		abortWithProblem(c, http.StatusUnprocessableEntity, validationErr.First(), validationErr.Errors...)
	case errors.As(err, &relatedErr):
		abortWithProblem(c, http.StatusUnprocessableEntity, relatedErr.Error())
	case errors.As(err, &appErr) && appErr.Type != apperrors.ErrorTypeInternal:
		abortWithProblem(c, statusFor(appErr.Type), appErr.Message)
	default:
		requestLogger(c).Error("request failed", zap.Error(err))
		abortWithProblem(c, http.StatusInternalServerError, "internal server error")
	}
}

func statusFor(t apperrors.ErrorType) int {
	switch t {
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeRelatedAggregate:
		return http.StatusUnprocessableEntity
	case apperrors.ErrorTypeBadRequest:
		return http.StatusBadRequest
	case apperrors.ErrorTypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
