package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	addressdomain "github.com/smallbiznis/notaventa/internal/address/domain"
	"github.com/smallbiznis/notaventa/internal/blobstore"
	customerdomain "github.com/smallbiznis/notaventa/internal/customer/domain"
	"github.com/smallbiznis/notaventa/internal/kvstore"
	productdomain "github.com/smallbiznis/notaventa/internal/product/domain"
	salesnotedomain "github.com/smallbiznis/notaventa/internal/salesnote/domain"
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
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

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
		code := validationErrorCode(err)
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
	case isCustomerValidationError(err),
		isAddressValidationError(err),
		isProductValidationError(err),
		isNoteValidationError(err):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, addressdomain.ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, salesnotedomain.ErrNotFound),
		errors.Is(err, salesnotedomain.ErrArtifactNotFound),
		errors.Is(err, kvstore.ErrNotFound),
		errors.Is(err, blobstore.ErrNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "tax_id_taken" {
		return "tax_id"
	}
	if strings.HasPrefix(code, "invalid_") {
		field := strings.TrimPrefix(code, "invalid_")
		if field == "request" {
			return "request"
		}
		return field
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "tax_id_taken":
		return "tax id already registered"
	default:
		return "invalid value"
	}
}

// classifyErrorForLog reports a coarse error type plus the domain code for
// the request log line.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	if vErr := asValidationErrors(err); vErr != nil && len(vErr.Errors) > 0 {
		return "validation_error", vErr.Errors[0].Code
	}
	if isValidationError(err) {
		return "validation_error", validationErrorCode(err)
	}
	if isNotFoundError(err) {
		return "not_found", err.Error()
	}
	return "internal_error", err.Error()
}

func isCustomerValidationError(err error) bool {
	switch err {
	case customerdomain.ErrTaxIDTaken,
		customerdomain.ErrInvalidLegalName,
		customerdomain.ErrInvalidTradeName,
		customerdomain.ErrInvalidTaxID,
		customerdomain.ErrInvalidEmail,
		customerdomain.ErrInvalidPhone:
		return true
	default:
		return false
	}
}

func isAddressValidationError(err error) bool {
	switch err {
	case addressdomain.ErrInvalidStreet,
		addressdomain.ErrInvalidNeighborhood,
		addressdomain.ErrInvalidMunicipality,
		addressdomain.ErrInvalidState,
		addressdomain.ErrInvalidKind:
		return true
	default:
		return false
	}
}

func isProductValidationError(err error) bool {
	switch err {
	case productdomain.ErrInvalidName,
		productdomain.ErrInvalidUnitOfMeasure,
		productdomain.ErrInvalidBasePrice:
		return true
	default:
		return false
	}
}

func isNoteValidationError(err error) bool {
	switch err {
	case salesnotedomain.ErrEmptyLines,
		salesnotedomain.ErrInvalidQuantity,
		salesnotedomain.ErrInvalidUnitPrice:
		return true
	default:
		return false
	}
}
