package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvforge/internal/domain"
)

// APIResponse is the envelope for all API responses.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *PageMeta `json:"meta,omitempty"`
}

// APIError carries a stable machine-readable code and a human message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageMeta describes pagination of a list response.
type PageMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// RespondOK writes a 200 response with data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated writes a 201 response with data.
func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated writes a 200 response with data and pagination meta.
func RespondPaginated(c *gin.Context, data any, meta PageMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError writes an error response with the given status.
func RespondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, APIResponse{Success: false, Error: &APIError{Code: code, Message: message}})
}

// MapDomainError translates domain errors to HTTP status and error code.
func MapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrCVNotFound):
		return http.StatusNotFound, "CV_NOT_FOUND"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"
	case errors.Is(err, domain.ErrEmptyContent):
		return http.StatusUnprocessableEntity, "EMPTY_CONTENT"
	case errors.Is(err, domain.ErrInvalidCVData):
		return http.StatusBadRequest, "INVALID_CV_DATA"
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, "INVALID_STATUS"
	case errors.Is(err, domain.ErrCVNotProcessed):
		return http.StatusConflict, "CV_NOT_PROCESSED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// HandleError maps err and writes the error response, logging unexpected
// failures with the request id.
func HandleError(c *gin.Context, err error) {
	status, code := MapDomainError(err)
	if status == http.StatusInternalServerError {
		requestID, _ := c.Get("request_id")
		log.Printf("handler.HandleError: request_id=%v %s %s: %v",
			requestID, c.Request.Method, c.Request.URL.Path, err)
		RespondError(c, status, code, "internal server error")
		return
	}
	RespondError(c, status, code, err.Error())
}
