package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	billingdomain "github.com/servibill/servibill/internal/billing/domain"
	clientdomain "github.com/servibill/servibill/internal/client/domain"
	locationdomain "github.com/servibill/servibill/internal/location/domain"
	repairdomain "github.com/servibill/servibill/internal/repair/domain"
	reportdomain "github.com/servibill/servibill/internal/report/domain"
	statedomain "github.com/servibill/servibill/internal/state/domain"
	workitemdomain "github.com/servibill/servibill/internal/workitem/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
)

// ErrorHandlingMiddleware renders the last error recorded on the context
// once handlers are done, unless a body has been written already.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isClientValidationError(err),
		isLocationValidationError(err),
		isWorkItemValidationError(err),
		isRepairValidationError(err),
		isBillingValidationError(err),
		isStateValidationError(err):
		return true
	case errors.Is(err, reportdomain.ErrInvalidYear):
		return true
	default:
		return false
	}
}

// Conflicts cover everything the current document or repair state forbids:
// double assignment, locked documents, converted proformas, out-of-order
// deletes and lifecycle moves the transition table does not allow.
func isConflictError(err error) bool {
	switch {
	case errors.Is(err, billingdomain.ErrRepairConflict),
		errors.Is(err, billingdomain.ErrDocumentLocked),
		errors.Is(err, billingdomain.ErrAlreadyConverted),
		errors.Is(err, billingdomain.ErrInvalidTransition),
		errors.Is(err, billingdomain.ErrNotLatest),
		errors.Is(err, repairdomain.ErrAssigned):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, clientdomain.ErrNotFound),
		errors.Is(err, locationdomain.ErrNotFound),
		errors.Is(err, workitemdomain.ErrNotFound),
		errors.Is(err, repairdomain.ErrNotFound),
		errors.Is(err, billingdomain.ErrNotFound),
		errors.Is(err, billingdomain.ErrRepairNotFound),
		errors.Is(err, statedomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isClientValidationError(err error) bool {
	switch err {
	case clientdomain.ErrInvalidID,
		clientdomain.ErrInvalidNombre,
		clientdomain.ErrInvalidEmail:
		return true
	default:
		return false
	}
}

func isLocationValidationError(err error) bool {
	switch err {
	case locationdomain.ErrInvalidID,
		locationdomain.ErrInvalidCalle:
		return true
	default:
		return false
	}
}

func isWorkItemValidationError(err error) bool {
	switch err {
	case workitemdomain.ErrInvalidID,
		workitemdomain.ErrInvalidNombre,
		workitemdomain.ErrInvalidPrecio:
		return true
	default:
		return false
	}
}

func isRepairValidationError(err error) bool {
	switch err {
	case repairdomain.ErrInvalidID,
		repairdomain.ErrInvalidFecha,
		repairdomain.ErrInvalidLocation,
		repairdomain.ErrInvalidTipo:
		return true
	default:
		return false
	}
}

func isBillingValidationError(err error) bool {
	switch err {
	case billingdomain.ErrInvalidID,
		billingdomain.ErrInvalidClient,
		billingdomain.ErrInvalidFecha,
		billingdomain.ErrInvalidKind,
		billingdomain.ErrInvalidStatus,
		billingdomain.ErrInvalidNumPedido:
		return true
	default:
		return false
	}
}

func isStateValidationError(err error) bool {
	switch err {
	case statedomain.ErrInvalidID,
		statedomain.ErrInvalidKind,
		statedomain.ErrInvalidNombre:
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
