package api

import (
	"strconv"
	"time"

	"github.com/Bobnog/Controle-Finaceiro/config"
	"github.com/Bobnog/Controle-Finaceiro/database"
	"github.com/Bobnog/Controle-Finaceiro/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 仪表盘处理器
type DashboardHandler struct {
	auth      *service.AuthService
	dashboard *service.DashboardService
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{
		auth:      service.NewAuthService(database.DB, cfg),
		dashboard: service.NewDashboardService(database.DB),
	}
}

// GetSummary 获取仪表盘汇总
// @Summary 获取仪表盘汇总
// @Description 汇总当前用户在指定月份的收入、支出、未支付账单与余额；不传 month/year 则使用当前日历月份
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Param month query int false "月份 1-12"
// @Param year query int false "年份"
// @Success 200 {object} Response{data=service.Summary} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}

	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			BadRequest(c, "month 应为 1-12 之间的整数")
			return
		}
		month = m
	}
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1970 || y > 9999 {
			BadRequest(c, "year 格式错误")
			return
		}
		year = y
	}

	summary, err := h.dashboard.Summarize(user, month, year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}

	Success(c, summary)
}
