package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
)

// ResumeHandler defines the interface for handling per-user resume operations
type ResumeHandler interface {
	Upload(ctx *gin.Context)
	List(ctx *gin.Context)
	Get(ctx *gin.Context)
	DownloadURL(ctx *gin.Context)
	DirectDownload(ctx *gin.Context)
	Delete(ctx *gin.Context)
	ReplaceFile(ctx *gin.Context)
}

// resumeHandler struct holds the services
type resumeHandler struct {
	uploadService   resumes.ResumeUploadService
	metadataService resumes.ResumeMetadataService
	downloadService resumes.ResumeDownloadService
}

// NewResumeHandler creates a new ResumeHandler
func NewResumeHandler(uploadService resumes.ResumeUploadService, metadataService resumes.ResumeMetadataService, downloadService resumes.ResumeDownloadService) ResumeHandler {
	return &resumeHandler{
		uploadService:   uploadService,
		metadataService: metadataService,
		downloadService: downloadService,
	}
}

// Upload parses an uploaded resume file and stores it for the user
func (handler *resumeHandler) Upload(ctx *gin.Context) {
	userID := ctx.PostForm("user_id")
	if userID == "" {
		missingField(ctx, "user_id")
		return
	}

	filename, content, err := formFile(ctx)
	if err != nil {
		missingField(ctx, "file")
		return
	}

	result, err := handler.uploadService.Upload(ctx.Request.Context(), userID, filename, content)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// List returns every resume of a user
func (handler *resumeHandler) List(ctx *gin.Context) {
	views, err := handler.metadataService.List(ctx.Request.Context(), ctx.Param("user_id"))
	if err != nil {
		writeError(ctx, err)
		return
	}

	response := make([]map[string]any, 0, len(views))
	for _, view := range views {
		response = append(response, view.ToMap())
	}
	ctx.JSON(http.StatusOK, response)
}

// Get returns one resume of the user named by the user_id query parameter
func (handler *resumeHandler) Get(ctx *gin.Context) {
	userID, ok := ctx.GetQuery("user_id")
	if !ok {
		missingField(ctx, "user_id")
		return
	}

	view, err := handler.metadataService.Get(ctx.Request.Context(), ctx.Param("resume_id"), userID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view.ToMap())
}

// DownloadURL returns a link the browser can download the file from
func (handler *resumeHandler) DownloadURL(ctx *gin.Context) {
	userID, ok := ctx.GetQuery("user_id")
	if !ok {
		missingField(ctx, "user_id")
		return
	}

	link, err := handler.downloadService.DownloadURL(ctx.Request.Context(), ctx.Param("resume_id"), userID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, link)
}

// DirectDownload streams the file through the service
func (handler *resumeHandler) DirectDownload(ctx *gin.Context) {
	userID, ok := ctx.GetQuery("user_id")
	if !ok {
		missingField(ctx, "user_id")
		return
	}

	file, err := handler.downloadService.DirectDownload(ctx.Request.Context(), ctx.Param("resume_id"), userID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeFile(ctx, file.Filename, file.ContentType, file.Content)
}

// Delete removes a resume and its file
func (handler *resumeHandler) Delete(ctx *gin.Context) {
	userID, ok := ctx.GetQuery("user_id")
	if !ok {
		missingField(ctx, "user_id")
		return
	}

	if err := handler.metadataService.Delete(ctx.Request.Context(), ctx.Param("resume_id"), userID); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "Resume deleted successfully"})
}

// ReplaceFile swaps the file stored for an existing resume
func (handler *resumeHandler) ReplaceFile(ctx *gin.Context) {
	userID := ctx.PostForm("user_id")
	if userID == "" {
		missingField(ctx, "user_id")
		return
	}
	resumeID := ctx.PostForm("resume_id")
	if resumeID == "" {
		missingField(ctx, "resume_id")
		return
	}

	filename, content, err := formFile(ctx)
	if err != nil {
		missingField(ctx, "file")
		return
	}

	result, err := handler.uploadService.ReplaceFile(ctx.Request.Context(), userID, resumeID, filename, content)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
