package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/maintenance"
)

// MaintenanceHandler defines the interface for the diagnostic and admin endpoints
type MaintenanceHandler interface {
	Test(ctx *gin.Context)
	UploadSample(ctx *gin.Context)
	CreateSample(ctx *gin.Context)
	FixBlobURLs(ctx *gin.Context)
	TestBlobAccess(ctx *gin.Context)
}

type maintenanceHandler struct {
	maintenanceService maintenance.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler
func NewMaintenanceHandler(maintenanceService maintenance.MaintenanceService) MaintenanceHandler {
	return &maintenanceHandler{maintenanceService: maintenanceService}
}

func (handler *maintenanceHandler) Test(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, StatusResponse{Status: "ok", Message: "API is working"})
}

func (handler *maintenanceHandler) UploadSample(ctx *gin.Context) {
	handler.sample(ctx, false)
}

func (handler *maintenanceHandler) CreateSample(ctx *gin.Context) {
	handler.sample(ctx, true)
}

func (handler *maintenanceHandler) sample(ctx *gin.Context, viaSAS bool) {
	result, err := handler.maintenanceService.Sample(ctx.Request.Context(), viaSAS)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// FixBlobURLs re-signs every stored blob URL; guarded by the admin_key query parameter
func (handler *maintenanceHandler) FixBlobURLs(ctx *gin.Context) {
	adminKey, ok := ctx.GetQuery("admin_key")
	if !ok {
		missingField(ctx, "admin_key")
		return
	}

	report, err := handler.maintenanceService.FixBlobURLs(ctx.Request.Context(), adminKey)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// TestBlobAccess reports on a blob URL, or proxies the file when download=true
func (handler *maintenanceHandler) TestBlobAccess(ctx *gin.Context) {
	blobURL, ok := ctx.GetQuery("blob_url")
	if !ok {
		missingField(ctx, "blob_url")
		return
	}
	download, _ := strconv.ParseBool(ctx.DefaultQuery("download", "false"))

	result, err := handler.maintenanceService.TestBlobAccess(ctx.Request.Context(), blobURL, download)
	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	if result.HasContent() {
		writeFile(ctx, "", result.ContentType, result.Content)
		return
	}

	report := result.Report
	if report.StatusCode == 0 && report.Error != "" {
		ctx.JSON(http.StatusOK, gin.H{"error": report.Error})
		return
	}
	ctx.JSON(http.StatusOK, report)
}
