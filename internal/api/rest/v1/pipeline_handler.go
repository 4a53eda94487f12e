package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/pipeline"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/apperr"
)

// PipelineHandler defines the interface for the tailoring pipeline
type PipelineHandler interface {
	ProcessAll(ctx *gin.Context)
}

type pipelineHandler struct {
	pipelineService pipeline.PipelineService
}

// NewPipelineHandler creates a new PipelineHandler
func NewPipelineHandler(pipelineService pipeline.PipelineService) PipelineHandler {
	return &pipelineHandler{pipelineService: pipelineService}
}

// ProcessAll tailors the uploaded resume to the posted job. Runs in which most steps
// failed answer 207; unexpected errors answer 500 with a failure summary.
func (handler *pipelineHandler) ProcessAll(ctx *gin.Context) {
	req := &pipeline.Request{
		Title:       ctx.PostForm("title"),
		Description: ctx.PostForm("description"),
	}
	if req.Title == "" {
		missingField(ctx, "title")
		return
	}
	if req.Description == "" {
		missingField(ctx, "description")
		return
	}

	filename, content, err := formFile(ctx)
	if err != nil {
		missingField(ctx, "file")
		return
	}
	req.Filename = filename
	req.Content = content

	result, err := handler.pipelineService.ProcessAll(ctx.Request.Context(), req)
	if err != nil {
		if status := apperr.Status(err); status < http.StatusInternalServerError {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusInternalServerError, pipeline.NewFailure(filename, err))
		return
	}

	status := http.StatusOK
	if result.Status == pipeline.StatusMostlyFailed {
		status = http.StatusMultiStatus
	}
	ctx.JSON(status, result)
}
