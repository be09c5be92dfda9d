package controller

import (
	"fmt"
	"path/filepath"
	"strings"

	"testhub_backend/internal/service"
	"testhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxPDFSize = 50 << 20 // 50 MiB

type UploadController struct {
	StorageService *service.StorageService
}

func NewUploadController(storageService *service.StorageService) *UploadController {
	return &UploadController{StorageService: storageService}
}

// UploadPDF godoc
// @Summary Upload a test PDF
// @Description Stores the PDF with the configured provider and returns its URL and object key
// @Tags uploads
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "PDF file"
// @Success 201 {object} util.Response{data=object} "url and object key"
// @Failure 400 {object} util.Response "missing or non-PDF file"
// @Failure 403 {object} util.Response "admin only"
// @Router /api/uploads/pdf [post]
func (c *UploadController) UploadPDF(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	if header.Size > maxPDFSize {
		util.BadRequest(ctx, "file exceeds the 50 MiB limit")
		return
	}

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		util.BadRequest(ctx, "only PDF files are accepted")
		return
	}

	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	key := fmt.Sprintf("pdfs/%s.pdf", uuid.New().String())
	url, err := c.StorageService.Upload(ctx.Request.Context(), key, file, header.Size, "application/pdf")
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"url":       url,
		"objectKey": key,
	})
}
