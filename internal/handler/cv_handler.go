package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cvforge/internal/csvexport"
	"cvforge/internal/domain"
	"cvforge/internal/port"
	"cvforge/internal/service"
)

// CVHandler handles CV document endpoints.
type CVHandler struct {
	service service.CVService
}

// NewCVHandler creates a new CVHandler.
func NewCVHandler(svc service.CVService) *CVHandler {
	return &CVHandler{service: svc}
}

// Upload handles POST /api/v1/cvs. Accepts a multipart form with a "file"
// part and an optional "notify_email" field; processing starts in the
// background and the document is returned in the uploaded state.
func (h *CVHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart field 'file' is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	doc, err := h.service.Upload(c.Request.Context(), service.UploadCVInput{
		Filename:    fileHeader.Filename,
		Size:        fileHeader.Size,
		Reader:      file,
		NotifyEmail: c.PostForm("notify_email"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// List handles GET /api/v1/cvs with optional status, limit and offset query
// parameters.
func (h *CVHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := port.CVListFilter{
		Status: domain.CVStatus(c.Query("status")),
		Limit:  limit,
		Offset: offset,
	}

	docs, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PageMeta{Total: total, Limit: limit, Offset: offset})
}

// Get handles GET /api/v1/cvs/:id.
func (h *CVHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID")
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// UpdateData handles PUT /api/v1/cvs/:id/data, replacing the structured data
// of a completed document.
func (h *CVHandler) UpdateData(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID")
		return
	}

	data, err := c.GetRawData()
	if err != nil || len(data) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_BODY", "request body is required")
		return
	}

	doc, err := h.service.UpdateData(c.Request.Context(), id, data)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Delete handles DELETE /api/v1/cvs/:id.
func (h *CVHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": id})
}

// Download handles GET /api/v1/cvs/:id/download, returning a presigned URL
// for the original uploaded file.
func (h *CVHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID")
		return
	}

	url, err := h.service.GetDownloadURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// Export handles GET /api/v1/cvs/export, streaming a CSV of completed
// documents.
func (h *CVHandler) Export(c *gin.Context) {
	filename := csvexport.BuildFilename("cv_documents")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := h.service.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		// Headers are already out; all we can do is log via the error mapper.
		HandleError(c, err)
	}
}
