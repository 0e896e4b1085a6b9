package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"upkeep/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE",
			"unsupported file type; allowed: csv, pdf, docx, doc, rtf, odt, txt, xlsx, xls, ppt, pptx, jpg, png, gif, bmp, webp"
	case errors.Is(err, domain.ErrEmptyFile):
		return http.StatusBadRequest, "EMPTY_FILE", "file is empty"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrAIUnavailable):
		return http.StatusServiceUnavailable, "AI_UNAVAILABLE", "AI extraction is not configured; CSV files can still be imported"
	case errors.Is(err, domain.ErrNoVendorsFound):
		return http.StatusUnprocessableEntity, "NO_VENDORS_FOUND", "no vendors found in file"
	case errors.Is(err, domain.ErrExtractionFailed), errors.Is(err, domain.ErrInsufficientText):
		return http.StatusUnprocessableEntity, "EXTRACTION_FAILED", "could not extract vendor data from file"
	case errors.Is(err, domain.ErrInvalidVendor):
		return http.StatusBadRequest, "INVALID_VENDOR", "vendor record is invalid"
	case errors.Is(err, domain.ErrDuplicateVendor):
		return http.StatusConflict, "DUPLICATE_VENDOR", "vendor with this name already exists"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT", "extraction took too long; try a smaller file"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
