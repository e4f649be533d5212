package api

import (
	"strconv"

	"github.com/Bobnog/Controle-Finaceiro/config"
	"github.com/Bobnog/Controle-Finaceiro/database"
	"github.com/Bobnog/Controle-Finaceiro/models"
	"github.com/Bobnog/Controle-Finaceiro/service"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler 信用卡账单处理器
type InvoiceHandler struct {
	auth *service.AuthService
}

// NewInvoiceHandler 创建信用卡账单处理器
func NewInvoiceHandler(cfg *config.Config) *InvoiceHandler {
	return &InvoiceHandler{
		auth: service.NewAuthService(database.DB, cfg),
	}
}

// InvoiceRequest 创建/更新账单请求，更新为整体覆盖
type InvoiceRequest struct {
	Institution string  `json:"institution" binding:"required" example:"Nubank"`
	Amount      float64 `json:"amount" binding:"required" example:"800.00"`
	Month       int     `json:"month" binding:"required,min=1,max=12" example:"3"` // 账单所属月份
	Year        int     `json:"year" binding:"required" example:"2024"`
	Paid        bool    `json:"paid" example:"false"`
}

// InvoiceListRequest 账单列表请求
type InvoiceListRequest struct {
	Page        int    `form:"page" example:"1"`
	PageSize    int    `form:"page_size" example:"10"`
	Paid        *bool  `form:"paid"`
	Year        int    `form:"year" example:"2024"`
	Institution string `form:"institution" example:"Nubank"`
}

// Create 创建账单
// @Summary 创建账单
// @Description 为当前用户登记一期信用卡账单，同一机构同期允许多条
// @Tags 账单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body InvoiceRequest true "账单信息"
// @Success 200 {object} Response{data=models.Invoice} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}

	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	invoice := models.Invoice{
		UserID:      user.ID,
		Institution: req.Institution,
		Amount:      req.Amount,
		Month:       req.Month,
		Year:        req.Year,
		Paid:        req.Paid,
	}

	if err := database.DB.Create(&invoice).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建账单失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", invoice)
}

// List 获取账单列表
// @Summary 获取账单列表
// @Description 获取当前用户的账单，按年月倒序，支持分页与筛选
// @Tags 账单
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param paid query bool false "支付状态筛选"
// @Param year query int false "年份筛选"
// @Param institution query string false "机构筛选"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Invoice}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}

	var req InvoiceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Invoice{}).Where("user_id = ?", user.ID)
	if req.Paid != nil {
		query = query.Where("paid = ?", *req.Paid)
	}
	if req.Year > 0 {
		query = query.Where("year = ?", req.Year)
	}
	if req.Institution != "" {
		query = query.Where("institution = ?", req.Institution)
	}

	var total int64
	query.Count(&total)

	var invoices []models.Invoice
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("year DESC, month DESC").Offset(offset).Limit(req.PageSize).Find(&invoices).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     invoices,
	})
}

// Get 获取单条账单
// @Summary 获取单条账单
// @Description 根据ID获取账单详情，仅限本人
// @Tags 账单
// @Produce json
// @Security BearerAuth
// @Param id path int true "账单ID"
// @Success 200 {object} Response{data=models.Invoice} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 403 {object} Response "无权操作"
// @Failure 404 {object} Response "账单不存在"
// @Router /api/v1/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	invoice, err := findOwned[models.Invoice](database.DB, id, user, "账单")
	if err != nil {
		FromError(c, err, "查询失败")
		return
	}

	Success(c, invoice)
}

// Update 更新账单
// @Summary 更新账单
// @Description 整体覆盖指定账单，仅限本人；将 paid 置为 true 后该账单不再计入当期未支付合计
// @Tags 账单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "账单ID"
// @Param request body InvoiceRequest true "账单信息"
// @Success 200 {object} Response{data=models.Invoice} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 403 {object} Response "无权操作"
// @Failure 404 {object} Response "账单不存在"
// @Router /api/v1/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	invoice, err := findOwned[models.Invoice](database.DB, id, user, "账单")
	if err != nil {
		FromError(c, err, "查询失败")
		return
	}

	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 整体覆盖，归属不变
	invoice.Institution = req.Institution
	invoice.Amount = req.Amount
	invoice.Month = req.Month
	invoice.Year = req.Year
	invoice.Paid = req.Paid

	if err := database.DB.Save(invoice).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}

	SuccessWithMessage(c, "更新成功", invoice)
}

// Delete 删除账单
// @Summary 删除账单
// @Description 物理删除指定账单，仅限本人
// @Tags 账单
// @Produce json
// @Security BearerAuth
// @Param id path int true "账单ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 403 {object} Response "无权操作"
// @Failure 404 {object} Response "账单不存在"
// @Router /api/v1/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	invoice, err := findOwned[models.Invoice](database.DB, id, user, "账单")
	if err != nil {
		FromError(c, err, "查询失败")
		return
	}

	if err := database.DB.Delete(invoice).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
