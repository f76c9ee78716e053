package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"entregas/internal/config"
	"entregas/internal/domain"
	"entregas/internal/handler"
	"entregas/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func importMultipart(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, "notas.zip")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImportHandler_ImportZip_Success(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	cfg := &config.ImportConfig{MaxUploadMB: 50, LineItems: true}
	h := handler.NewImportHandler(mockSvc, cfg)

	mockSvc.On("ImportArchive", mock.Anything, mock.Anything).Return(&domain.ImportResult{
		TotalFiles: 3,
		TotalXML:   2,
		Imported:   1,
		Duplicates: 1,
		Errors:     []domain.ImportError{},
	}, nil)

	body, contentType := importMultipart(t, "arquivo", []byte("zip bytes"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/nfe/importar-zip", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.ImportZip(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.JSONEq(t, "true", string(resp["ok"]))
	assert.JSONEq(t, "3", string(resp["totalArquivos"]))
	assert.JSONEq(t, "2", string(resp["totalXml"]))
	assert.JSONEq(t, "1", string(resp["importados"]))
	assert.JSONEq(t, "1", string(resp["duplicados"]))
	assert.JSONEq(t, "[]", string(resp["erros"]))
}

func TestImportHandler_ImportZip_MissingFile(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	cfg := &config.ImportConfig{MaxUploadMB: 50}
	h := handler.NewImportHandler(mockSvc, cfg)

	body, contentType := importMultipart(t, "outro_campo", []byte("zip bytes"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/nfe/importar-zip", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.ImportZip(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "NO_FILE", resp.Error.Code)
	mockSvc.AssertNotCalled(t, "ImportArchive", mock.Anything, mock.Anything)
}

func TestImportHandler_ImportZip_TooLarge(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	cfg := &config.ImportConfig{MaxUploadMB: 1}
	h := handler.NewImportHandler(mockSvc, cfg)

	body, contentType := importMultipart(t, "arquivo", bytes.Repeat([]byte("a"), 2*1024*1024))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/nfe/importar-zip", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.ImportZip(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "FILE_TOO_LARGE", resp.Error.Code)
	mockSvc.AssertNotCalled(t, "ImportArchive", mock.Anything, mock.Anything)
}

func TestImportHandler_ImportZip_InvalidArchive(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	cfg := &config.ImportConfig{MaxUploadMB: 50}
	h := handler.NewImportHandler(mockSvc, cfg)

	mockSvc.On("ImportArchive", mock.Anything, mock.Anything).
		Return(nil, domain.ErrInvalidArchive)

	body, contentType := importMultipart(t, "arquivo", []byte("not a zip"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/nfe/importar-zip", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.ImportZip(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_ARCHIVE", resp.Error.Code)
}

func TestImportHandler_ImportZip_AllEntriesFailedStill200(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	cfg := &config.ImportConfig{MaxUploadMB: 50}
	h := handler.NewImportHandler(mockSvc, cfg)

	mockSvc.On("ImportArchive", mock.Anything, mock.Anything).Return(&domain.ImportResult{
		TotalFiles: 1,
		TotalXML:   1,
		Errors: []domain.ImportError{
			{File: "ruim.xml", Error: "access key has 40 characters, want 44"},
		},
	}, nil)

	body, contentType := importMultipart(t, "arquivo", []byte("zip bytes"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/nfe/importar-zip", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.ImportZip(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OK     bool                 `json:"ok"`
		Errors []domain.ImportError `json:"erros"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "ruim.xml", resp.Errors[0].File)
}
