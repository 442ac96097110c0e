package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cvforge/internal/domain"
	"cvforge/internal/handler"
	"cvforge/internal/service"
	"cvforge/mocks"
)

func setupCVRouter(svc *mocks.MockCVService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewCVHandler(svc)

	r := gin.New()
	r.POST("/api/v1/cvs", h.Upload)
	r.GET("/api/v1/cvs", h.List)
	r.GET("/api/v1/cvs/:id", h.Get)
	r.PUT("/api/v1/cvs/:id/data", h.UpdateData)
	r.DELETE("/api/v1/cvs/:id", h.Delete)
	r.GET("/api/v1/cvs/:id/download", h.Download)
	return r
}

func multipartBody(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUpload_Created(t *testing.T) {
	svc := new(mocks.MockCVService)
	doc := &domain.CVDocument{ID: uuid.New(), OriginalName: "jane.pdf", Status: domain.CVStatusUploaded}
	svc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadCVInput) bool {
		return in.Filename == "jane.pdf" && in.NotifyEmail == "jane@example.com"
	})).Return(doc, nil)

	body, contentType := multipartBody(t, "jane.pdf", []byte("pdf bytes"),
		map[string]string{"notify_email": "jane@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cvs", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	setupCVRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestUpload_MissingFile(t *testing.T) {
	svc := new(mocks.MockCVService)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cvs", nil)
	rec := httptest.NewRecorder()

	setupCVRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestUpload_UnsupportedType(t *testing.T) {
	svc := new(mocks.MockCVService)
	svc.On("Upload", mock.Anything, mock.Anything).Return(nil, domain.ErrUnsupportedFileType)

	body, contentType := multipartBody(t, "cv.txt", []byte("text"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cvs", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	setupCVRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", resp.Error.Code)
}

func TestGet_NotFound(t *testing.T) {
	svc := new(mocks.MockCVService)
	id := uuid.New()
	svc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrCVNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cvs/"+id.String(), nil)
	rec := httptest.NewRecorder()

	setupCVRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGet_InvalidID(t *testing.T) {
	svc := new(mocks.MockCVService)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cvs/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	setupCVRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestList_PassesFilter(t *testing.T) {
	svc := new(mocks.MockCVService)
	svc.On("List", mock.Anything, mock.Anything).Return([]domain.CVDocument{}, 0, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cvs?status=completed&limit=5&offset=10", nil)
	rec := httptest.NewRecorder()

	setupCVRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 5, resp.Meta.Limit)
	assert.Equal(t, 10, resp.Meta.Offset)
}

func TestUpdateData_Success(t *testing.T) {
	svc := new(mocks.MockCVService)
	id := uuid.New()
	doc := &domain.CVDocument{ID: id, Status: domain.CVStatusCompleted}
	svc.On("UpdateData", mock.Anything, id, mock.Anything).Return(doc, nil)

	payload := `{"header": {"name": "Jane Doe"}}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cvs/"+id.String()+"/data", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()

	setupCVRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestDelete_Success(t *testing.T) {
	svc := new(mocks.MockCVService)
	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cvs/"+id.String(), nil)
	rec := httptest.NewRecorder()

	setupCVRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestDownload_ReturnsURL(t *testing.T) {
	svc := new(mocks.MockCVService)
	id := uuid.New()
	svc.On("GetDownloadURL", mock.Anything, id).Return("https://signed.example/url", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cvs/"+id.String()+"/download", nil)
	rec := httptest.NewRecorder()

	setupCVRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://signed.example/url")
}
