package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-collection/internal/domain"
	"github.com/feral-file/ff-collection/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeBadRequest       ErrorCode = "bad_request"
	errCodeNotFound         ErrorCode = "not_found"
	errCodeValidationFailed ErrorCode = "validation_failed"
	errCodeForbidden        ErrorCode = "forbidden"
	errCodeConflict         ErrorCode = "conflict"

	// Server errors (5xx)
	errCodeInternalError ErrorCode = "internal_error"
	errCodeServiceError  ErrorCode = "service_error"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message, details...)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusNotFound, errCodeNotFound, message, details...)
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, errCodeValidationFailed, "Validation failed", details)
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.Error(err, fields...)
	respondWithError(c, http.StatusInternalServerError, errCodeInternalError, message)
}

// respondLedgerError maps ledger errors to HTTP responses. Unknown errors are
// treated as internal.
func respondLedgerError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, domain.ErrNotAuthorized):
		respondWithError(c, http.StatusForbidden, errCodeForbidden, "Caller is not the collection owner")
	case errors.Is(err, domain.ErrTokenDoesNotExist):
		respondNotFound(c, "Token not found")
	case errors.Is(err, domain.ErrZeroAddress),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrEmptyImage),
		errors.Is(err, domain.ErrNameTooLong),
		errors.Is(err, domain.ErrDescriptionTooLong),
		errors.Is(err, domain.ErrImageURITooLong),
		errors.Is(err, domain.ErrEmptyTokenURI),
		errors.Is(err, domain.ErrEmptyURI),
		errors.Is(err, domain.ErrEmptyMetadata),
		errors.Is(err, domain.ErrRoyaltyTooHigh),
		errors.Is(err, domain.ErrInvalidAmount):
		respondValidationError(c, err.Error())
	case errors.Is(err, domain.ErrSameRoyaltyReceiver),
		errors.Is(err, domain.ErrSameRoyaltyBasisPoints),
		errors.Is(err, domain.ErrTokenAlreadyExists),
		errors.Is(err, domain.ErrNoFundsToWithdraw),
		errors.Is(err, domain.ErrNoTokensToWithdraw),
		errors.Is(err, domain.ErrReentrantCall):
		respondWithError(c, http.StatusConflict, errCodeConflict, err.Error())
	default:
		respondInternalError(c, err, message)
	}
}
