package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/maintenance"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/pipeline"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
)

// SetupRoutes sets up all the API routes. Paths live at the root so existing front-ends keep working.
func SetupRoutes(r *gin.Engine,
	resumeUploadService resumes.ResumeUploadService,
	resumeMetadataService resumes.ResumeMetadataService,
	resumeDownloadService resumes.ResumeDownloadService,
	pipelineService pipeline.PipelineService,
	maintenanceService maintenance.MaintenanceService) {

	// Pipeline Routes
	pipelineHandler := NewPipelineHandler(pipelineService)
	r.POST("/process-all/", pipelineHandler.ProcessAll)
	r.POST("/process-all", pipelineHandler.ProcessAll)

	// Resume Routes
	resumeHandler := NewResumeHandler(resumeUploadService, resumeMetadataService, resumeDownloadService)
	r.POST("/upload-resume", resumeHandler.Upload)
	r.GET("/get-resumes/:user_id", resumeHandler.List)
	r.GET("/get-resume/:resume_id", resumeHandler.Get)
	r.GET("/download-resume/:resume_id", resumeHandler.DownloadURL)
	r.GET("/direct-download/:resume_id", resumeHandler.DirectDownload)
	r.DELETE("/delete-resume/:resume_id", resumeHandler.Delete)
	r.POST("/replace-resume-file", resumeHandler.ReplaceFile)

	// Maintenance Routes
	maintenanceHandler := NewMaintenanceHandler(maintenanceService)
	r.GET("/test", maintenanceHandler.Test)
	r.GET("/upload-sample-pdf", maintenanceHandler.UploadSample)
	r.GET("/create-sample-pdf", maintenanceHandler.CreateSample)
	r.GET("/fix-blob-urls", maintenanceHandler.FixBlobURLs)
	r.GET("/test-blob-access", maintenanceHandler.TestBlobAccess)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
