package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"upkeep/internal/csvexport"
	"upkeep/internal/domain"
	"upkeep/internal/handler"
	"upkeep/internal/service"
	"upkeep/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func multipartRequest(t *testing.T, url, fileName string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestImportHandler_Preview_Success(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc, 1024)

	preview := &service.Preview{
		ImportID:  uuid.New(),
		FileName:  "vendors.pdf",
		FileClass: domain.FileClassDocument,
		Records:   []domain.ParsedVendorRecord{domain.NewParsedVendorRecord("Acme")},
	}
	mockSvc.On("Preview", mock.Anything, service.PreviewInput{
		FileName:  "vendors.pdf",
		Data:      []byte("%PDF"),
		UseVision: true,
	}).Return(preview, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/v1/vendor-imports/preview", "vendors.pdf", []byte("%PDF"),
		map[string]string{"use_vision": "true"})

	h.Preview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, preview.ImportID.String(), data["import_id"])
	assert.Len(t, data["records"], 1)
	mockSvc.AssertExpectations(t)
}

func TestImportHandler_Preview_MissingFile(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc, 1024)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/v1/vendor-imports/preview", "", nil, nil)

	h.Preview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decode(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Preview", mock.Anything, mock.Anything)
}

func TestImportHandler_Preview_TooLargeRejectedBeforeService(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc, 4)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/v1/vendor-imports/preview", "vendors.csv", []byte("name\nAcme\n"), nil)

	h.Preview(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "FILE_TOO_LARGE", decode(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Preview", mock.Anything, mock.Anything)
}

func TestImportHandler_Preview_BadVisionFlag(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc, 1024)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/v1/vendor-imports/preview", "vendors.csv", []byte("x"),
		map[string]string{"use_vision": "maybe"})

	h.Preview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
}

func TestImportHandler_Preview_DomainErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrAIUnavailable, http.StatusServiceUnavailable, "AI_UNAVAILABLE"},
		{domain.ErrNoVendorsFound, http.StatusUnprocessableEntity, "NO_VENDORS_FOUND"},
		{domain.ErrExtractionFailed, http.StatusUnprocessableEntity, "EXTRACTION_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			mockSvc := new(mocks.MockImportService)
			h := handler.NewImportHandler(mockSvc, 1024)
			mockSvc.On("Preview", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = multipartRequest(t, "/api/v1/vendor-imports/preview", "vendors.docx", []byte("PK"), nil)

			h.Preview(c)

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func confirmRequest(t *testing.T, records []domain.ParsedVendorRecord) *http.Request {
	t.Helper()
	body, err := json.Marshal(handler.ConfirmRequest{ImportID: "imp-1", Records: records})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, "/api/v1/vendor-imports/confirm", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestImportHandler_Confirm_StatusByOutcome(t *testing.T) {
	tests := []struct {
		name    string
		result  domain.ImportResult
		status  int
		success bool
	}{
		{"all created", domain.ImportResult{Successful: 2, Total: 2}, http.StatusOK, true},
		{"partial", domain.ImportResult{Successful: 1, Failed: 1, Total: 2}, http.StatusMultiStatus, true},
		{"none created", domain.ImportResult{Failed: 2, Total: 2}, http.StatusUnprocessableEntity, false},
	}
	records := []domain.ParsedVendorRecord{
		domain.NewParsedVendorRecord("Acme"),
		domain.NewParsedVendorRecord("Bolt"),
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mocks.MockImportService)
			h := handler.NewImportHandler(mockSvc, 1024)
			mockSvc.On("Import", mock.Anything, records).Return(tt.result)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = confirmRequest(t, records)

			h.Confirm(c)

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			assert.Equal(t, tt.success, resp.Success)
			data := resp.Data.(map[string]interface{})
			assert.Equal(t, "imp-1", data["import_id"])
			assert.Equal(t, string(tt.result.Status()), data["status"])
			assert.EqualValues(t, tt.result.Total, data["total"])
		})
	}
}

func TestImportHandler_Confirm_EmptyRecords(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc, 1024)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = confirmRequest(t, []domain.ParsedVendorRecord{})

	h.Confirm(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
}

func TestImportHandler_Import_OneShot(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc, 1024)
	preview := &service.Preview{ImportID: uuid.New(), FileClass: domain.FileClassCSV, Skipped: 1}
	mockSvc.On("PreviewAndImport", mock.Anything, mock.MatchedBy(func(in service.PreviewInput) bool {
		return in.FileName == "vendors.csv" && !in.UseVision
	})).Return(preview, domain.ImportResult{Successful: 1, Failed: 1, Total: 2}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/v1/vendor-imports", "vendors.csv", []byte("name\nA\nB\n"), nil)

	h.Import(c)

	assert.Equal(t, http.StatusMultiStatus, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "warning", data["status"])
	assert.EqualValues(t, 1, data["skipped"])
}

func TestImportHandler_Template(t *testing.T) {
	h := handler.NewImportHandler(new(mocks.MockImportService), 1024)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/vendor-imports/template", nil)

	h.Template(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "vendor_import_template_")
	firstLine := strings.SplitN(strings.TrimPrefix(w.Body.String(), string(csvexport.BOM)), "\n", 2)[0]
	assert.True(t, strings.HasPrefix(firstLine, "name,email,phone"))
}

func TestHealthHandler(t *testing.T) {
	repo := new(mocks.MockVendorRepo)
	h := handler.NewHealthHandler(repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/healthz", nil)
	h.Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	repo.On("Ping", mock.Anything).Return(errors.New("connection refused")).Once()
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", nil)
	h.Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	repo.On("Ping", mock.Anything).Return(nil)
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", nil)
	h.Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
