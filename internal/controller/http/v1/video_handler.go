package v1

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/Tanuj-tj/video-converter/internal/domain/entity"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, payload []byte, filename, contentType, formatsJSON string) (string, []string, error)
}

type StatusResolver interface {
	Completed(ctx context.Context, jobID string) ([]entity.ConvertedFile, error)
	DownloadURL(ctx context.Context, jobID, format string) (string, error)
}

type VideoHandler struct {
	Dispatcher Dispatcher
	Status     StatusResolver
}

func NewVideoHandler(d Dispatcher, s StatusResolver) *VideoHandler {
	return &VideoHandler{Dispatcher: d, Status: s}
}

func (h *VideoHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	payload, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// contentType is a hint only; sniff the payload when the client
	// didn't declare one
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mimetype.Detect(payload).String()
	}

	formatsJSON := c.PostForm("formats")

	jobID, formats, err := h.Dispatcher.Dispatch(c.Request.Context(), payload, fileHeader.Filename, contentType, formatsJSON)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id":  jobID,
		"message": "Video uploaded and conversion jobs queued",
		"formats": formats,
	})
}

func (h *VideoHandler) GetStatus(c *gin.Context) {
	jobID := c.Param("job_id")

	files, err := h.Status.Completed(c.Request.Context(), jobID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id":          jobID,
		"converted_files": files,
		"total_converted": len(files),
	})
}

func (h *VideoHandler) Download(c *gin.Context) {
	jobID := c.Param("job_id")
	format := c.Param("format")

	url, err := h.Status.DownloadURL(c.Request.Context(), jobID, format)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"download_url": url})
}

func (h *VideoHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func writeError(c *gin.Context, err error) {
	var (
		validationErr *entity.ValidationError
		notFoundErr   *entity.NotFoundError
		upstreamErr   *entity.UpstreamError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &upstreamErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
