package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"upkeep/internal/csvexport"
	"upkeep/internal/domain"
	"upkeep/internal/service"
)

// ImportHandler handles the vendor import endpoints.
type ImportHandler struct {
	importService service.ImportService
	maxFileBytes  int64
}

// NewImportHandler creates a new ImportHandler. Uploads larger than
// maxFileBytes are rejected before they are read.
func NewImportHandler(importService service.ImportService, maxFileBytes int64) *ImportHandler {
	return &ImportHandler{importService: importService, maxFileBytes: maxFileBytes}
}

// Preview handles POST /api/v1/vendor-imports/preview
// @Summary Preview a vendor import
// @Description Extract vendor records from an uploaded file without writing them
// @Tags vendor-imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Vendor file (csv, pdf, docx, office documents or images)"
// @Param use_vision formData bool false "Parse documents as page images"
// @Success 200 {object} Response{data=service.Preview} "Extracted vendors"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 422 {object} ErrorResponseBody "No vendors found or extraction failed"
// @Failure 503 {object} ErrorResponseBody "AI extraction not configured"
// @Router /vendor-imports/preview [post]
func (h *ImportHandler) Preview(c *gin.Context) {
	input, ok := h.readUpload(c)
	if !ok {
		return
	}

	preview, err := h.importService.Preview(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, preview)
}

// Confirm handles POST /api/v1/vendor-imports/confirm
// @Summary Import previewed vendors
// @Description Create every submitted vendor record. Each record succeeds or fails on its own.
// @Tags vendor-imports
// @Accept json
// @Produce json
// @Param body body ConfirmRequest true "Records to import"
// @Success 200 {object} Response{data=ImportResponse} "All vendors imported"
// @Success 207 {object} Response{data=ImportResponse} "Some vendors failed"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 422 {object} ErrorResponseBody "No vendors were imported"
// @Router /vendor-imports/confirm [post]
func (h *ImportHandler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if len(req.Records) == 0 {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "records must not be empty")
		return
	}

	result := h.importService.Import(c.Request.Context(), req.Records)
	respondImport(c, result.Status(), ImportResponse{
		ImportID:     req.ImportID,
		Status:       result.Status(),
		ImportResult: result,
	})
}

// Import handles POST /api/v1/vendor-imports
// @Summary One-shot vendor import
// @Description Extract vendors from an uploaded file and import them without a review step
// @Tags vendor-imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Vendor file"
// @Param use_vision formData bool false "Parse documents as page images"
// @Success 200 {object} Response{data=OneShotResponse} "All vendors imported"
// @Success 207 {object} Response{data=OneShotResponse} "Some vendors failed"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 422 {object} ErrorResponseBody "Nothing imported"
// @Failure 503 {object} ErrorResponseBody "AI extraction not configured"
// @Router /vendor-imports [post]
func (h *ImportHandler) Import(c *gin.Context) {
	input, ok := h.readUpload(c)
	if !ok {
		return
	}

	preview, result, err := h.importService.PreviewAndImport(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	respondImport(c, result.Status(), OneShotResponse{
		ImportID:  preview.ImportID.String(),
		FileClass: preview.FileClass,
		Skipped:   preview.Skipped,
		Status:    result.Status(),
		Result:    result,
	})
}

// Template handles GET /api/v1/vendor-imports/template
// @Summary Download the CSV import template
// @Tags vendor-imports
// @Produce text/csv
// @Success 200 {file} file "CSV template"
// @Router /vendor-imports/template [get]
func (h *ImportHandler) Template(c *gin.Context) {
	var buf bytes.Buffer
	if err := csvexport.WriteTemplate(&buf); err != nil {
		HandleError(c, fmt.Errorf("writing csv template: %w", err))
		return
	}
	filename := csvexport.BuildFilename("vendor_import_template")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *ImportHandler) readUpload(c *gin.Context) (service.PreviewInput, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return service.PreviewInput{}, false
	}
	defer func() { _ = file.Close() }()

	if h.maxFileBytes > 0 && header.Size > h.maxFileBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return service.PreviewInput{}, false
	}

	useVision := false
	if v := c.PostForm("use_vision"); v != "" {
		useVision, err = strconv.ParseBool(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "use_vision must be a boolean")
			return service.PreviewInput{}, false
		}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		HandleError(c, fmt.Errorf("reading upload %s: %w", header.Filename, err))
		return service.PreviewInput{}, false
	}
	return service.PreviewInput{
		FileName:  header.Filename,
		Data:      data,
		UseVision: useVision,
	}, true
}

// respondImport picks 200, 207 or 422 from the write outcome.
func respondImport(c *gin.Context, status domain.ImportStatus, data interface{}) {
	switch status {
	case domain.ImportStatusSuccess:
		RespondOK(c, data)
	case domain.ImportStatusWarning:
		c.JSON(http.StatusMultiStatus, APIResponse{Success: true, Data: data})
	default:
		c.JSON(http.StatusUnprocessableEntity, APIResponse{
			Success: false,
			Data:    data,
			Error:   &APIError{Code: "IMPORT_FAILED", Message: "no vendors were imported"},
		})
	}
}
