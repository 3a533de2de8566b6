package api

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gcgviz/internal/importer"
	"gcgviz/internal/store"
)

// Upload 解析上传的 xlsx，返回摘要数据供前端填充（不落盘）
// POST /api/upload (multipart, field "file")
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No file provided"})
		return
	}
	if fh.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "File too large"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "File type not allowed"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "无法读取上传文件"})
		return
	}
	defer f.Close()

	report, err := h.coordinator.Extract(c.Request.Context(), fh.Filename, f)
	if errors.Is(err, importer.ErrUnreadableWorkbook) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "File is not a readable xlsx workbook"})
		return
	}
	if err != nil {
		h.logger.Error("upload extract failed", zap.String("filename", fh.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"fileId":           uuid.NewString(),
		"originalFilename": fh.Filename,
		"fileSize":         fh.Size,
		"uploadTime":       time.Now().Format(time.RFC3339),
		"extractedData":    report,
	})
}

// Export 下载全表 xlsx
// GET /api/export
func (h *Handler) Export(c *gin.Context) {
	records, err := h.store.Load(c.Request.Context())
	if err != nil {
		h.logger.Error("export load failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "读取失败"})
		return
	}
	data, err := store.EncodeWorkbook(records)
	if err != nil {
		h.logger.Error("export encode failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "导出失败"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="output.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
