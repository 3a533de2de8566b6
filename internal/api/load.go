package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gcgviz/internal/service/view"
	"gcgviz/internal/store"
)

// LoadYear 读取单年视图
// GET /api/load/:year
func (h *Handler) LoadYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "无效的年份"})
		return
	}

	v, err := h.views.Year(c.Request.Context(), year)
	if errors.Is(err, view.ErrYearNotFound) {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "tidak ada data untuk tahun " + c.Param("year"),
			"data":    []any{},
		})
		return
	}
	if err != nil {
		h.logger.Error("load year failed", zap.Int("year", year), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "读取失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"year":               v.Year,
		"data":               v.Rows,
		"aspek_summary_data": v.AspectSummary,
		"is_detailed":        v.IsDetailed(),
		"format_type":        v.FormatType,
		"auditor":            v.Auditor,
		"jenis_asesmen":      v.AssessmentKind,
		"summary":            v.Summary,
	})
}

// Dashboard 全年份聚合
// GET /api/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.views.Dashboard(c.Request.Context())
	if err != nil {
		h.logger.Error("dashboard failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "读取失败"})
		return
	}
	if len(d.AvailableYears) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success":         false,
			"message":         "belum ada data penilaian",
			"years_data":      gin.H{},
			"available_years": []int{},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"years_data":      d.Years,
		"available_years": d.AvailableYears,
	})
}

// ListSaveLogs 保存日志（仅 SQLite 后端记录）
// GET /api/save-logs?year=2023&limit=20
func (h *Handler) ListSaveLogs(c *gin.Context) {
	reader, ok := h.store.(store.SaveLogReader)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "logs": []store.SaveLogEntry{}})
		return
	}

	year, _ := strconv.Atoi(c.DefaultQuery("year", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	logs, err := reader.ListSaveLogs(c.Request.Context(), year, limit)
	if err != nil {
		h.logger.Error("list save logs failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "读取失败"})
		return
	}
	if logs == nil {
		logs = []store.SaveLogEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "logs": logs})
}
