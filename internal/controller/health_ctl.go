package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecom_admin_v1/internal/api/dto"
	"ecom_admin_v1/internal/service"
)

type HealthController struct {
	healthService *service.HealthService
	log           *zap.Logger
}

func NewHealthController(healthService *service.HealthService, log *zap.Logger) *HealthController {
	return &HealthController{healthService: healthService, log: log}
}

// DB 数据库连通性
// @Router /api/health/db [get]
func (ctrl *HealthController) DB(c *gin.Context) {
	latency, err := ctrl.healthService.CheckDB(c.Request.Context())
	if err != nil {
		ctrl.log.Error("数据库健康检查失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.Response{
			Success: false,
			Message: "数据库连接失败",
			Data:    gin.H{"database": "down"},
		})
		return
	}
	ok(c, gin.H{"database": "up", "latencyMs": latency.Milliseconds()})
}
