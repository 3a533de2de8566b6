package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gcgviz/internal/model"
)

// 保存方式
const (
	MethodManual    = "manual"
	MethodAutomatic = "otomatis"
)

// Save 整年保存（该年份旧记录被整体替换）
// POST /api/save
func (h *Handler) Save(c *gin.Context) {
	var sub model.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "无效的请求数据: " + err.Error()})
		return
	}
	if sub.Year <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "year 为必填项"})
		return
	}
	sub.Method = strings.TrimSpace(sub.Method)
	if sub.Method == "" {
		sub.Method = MethodManual
	}

	res, err := h.reconciler.ReconcileYear(c.Request.Context(), sub)
	if err != nil {
		h.logger.Error("save failed", zap.Int("year", sub.Year), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "保存失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"assessment_id": res.AssessmentID,
		"saved_at":      res.SavedAt,
		"year":          res.Year,
		"rows":          len(res.YearRecords),
		"total_rows":    res.Persisted,
		"method":        sub.Method,
	})
}
