package handler

import (
	"upkeep/internal/domain"
)

// Swagger type definitions for API documentation.

// Response is the success envelope.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody is the error envelope.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}

// ConfirmRequest is the body of POST /vendor-imports/confirm.
type ConfirmRequest struct {
	ImportID string                      `json:"import_id" example:"5b7c0c5e-2d0f-4a57-9a43-3c1c1c2b9f10"`
	Records  []domain.ParsedVendorRecord `json:"records" binding:"required"`
}

// ImportResponse reports the outcome of a bulk write.
type ImportResponse struct {
	ImportID string              `json:"import_id,omitempty"`
	Status   domain.ImportStatus `json:"status" example:"warning"`
	domain.ImportResult
}

// OneShotResponse combines the preview and the write outcome.
type OneShotResponse struct {
	ImportID  string              `json:"import_id"`
	FileClass domain.FileClass    `json:"file_class" example:"document"`
	Skipped   int                 `json:"skipped"`
	Status    domain.ImportStatus `json:"status" example:"success"`
	Result    domain.ImportResult `json:"result"`
}
