package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/apperr"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// InfoResponse carries a plain message
type InfoResponse struct {
	Message string `json:"message"`
}

// StatusResponse answers the liveness check
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// downloadHeaders are sent with every file response so browsers on other origins can fetch it
var downloadHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
}

func writeError(ctx *gin.Context, err error) {
	ctx.JSON(apperr.Status(err), ErrorResponse{Detail: apperr.Message(err)})
}

func missingField(ctx *gin.Context, field string) {
	ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: "Field required: " + field})
}

// writeFile sends content with the CORS headers and, when filename is set, as an attachment
func writeFile(ctx *gin.Context, filename, contentType string, content []byte) {
	for k, v := range downloadHeaders {
		ctx.Header(k, v)
	}
	if filename != "" {
		ctx.Header("Content-Disposition", "attachment; filename="+filename)
	}
	ctx.Data(http.StatusOK, contentType, content)
}

// formFile reads the "file" part of a multipart form
func formFile(ctx *gin.Context) (string, []byte, error) {
	header, err := ctx.FormFile("file")
	if err != nil {
		return "", nil, err
	}

	f, err := header.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, content, nil
}
