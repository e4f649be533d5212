package api

import (
	"strconv"
	"time"

	"github.com/Bobnog/Controle-Finaceiro/config"
	"github.com/Bobnog/Controle-Finaceiro/database"
	"github.com/Bobnog/Controle-Finaceiro/models"
	"github.com/Bobnog/Controle-Finaceiro/service"

	"github.com/gin-gonic/gin"
)

// TransactionHandler 收支记录处理器
type TransactionHandler struct {
	auth *service.AuthService
}

// NewTransactionHandler 创建收支记录处理器
func NewTransactionHandler(cfg *config.Config) *TransactionHandler {
	return &TransactionHandler{
		auth: service.NewAuthService(database.DB, cfg),
	}
}

// TransactionRequest 创建/更新收支记录请求
// 更新为整体覆盖：每个字段都会写入，未传的可选字段会被清空
type TransactionRequest struct {
	Kind        string  `json:"kind" binding:"required,oneof=income expense" example:"expense"`
	Amount      float64 `json:"amount" binding:"required" example:"99.90"`
	Category    string  `json:"category" example:"mercado"`
	Description string  `json:"description" example:"compras da semana"`
	OccurredOn  string  `json:"occurred_on" binding:"required" example:"2024-03-15"` // 发生日期
}

// TransactionListRequest 收支记录列表请求
type TransactionListRequest struct {
	Page     int    `form:"page" example:"1"`
	PageSize int    `form:"page_size" example:"10"`
	Kind     string `form:"kind" example:"expense"`
	Category string `form:"category" example:"mercado"`
}

// parseOccurredOn 解析发生日期，只接受日历日期，不含时间部分
func parseOccurredOn(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.Local)
}

// Create 创建收支记录
// @Summary 创建收支记录
// @Description 为当前用户创建一条收入或支出记录
// @Tags 收支记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransactionRequest true "记录信息"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	occurredOn, err := parseOccurredOn(req.OccurredOn)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}

	tx := models.Transaction{
		UserID:      user.ID,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		OccurredOn:  occurredOn,
	}

	if err := database.DB.Create(&tx).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建记录失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", tx)
}

// List 获取收支记录列表
// @Summary 获取收支记录列表
// @Description 获取当前用户的收支记录，按发生日期倒序，支持分页与筛选
// @Tags 收支记录
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param kind query string false "类型筛选 income/expense"
// @Param category query string false "类别筛选"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Transaction}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}

	var req TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 默认分页参数
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID)
	if req.Kind != "" {
		if !models.ValidTransactionKind(req.Kind) {
			BadRequest(c, "类型只能为 income 或 expense")
			return
		}
		query = query.Where("kind = ?", req.Kind)
	}
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}

	var total int64
	query.Count(&total)

	var transactions []models.Transaction
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("occurred_on DESC").Offset(offset).Limit(req.PageSize).Find(&transactions).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     transactions,
	})
}

// Get 获取单条收支记录
// @Summary 获取单条收支记录
// @Description 根据ID获取收支记录详情，仅限本人
// @Tags 收支记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Success 200 {object} Response{data=models.Transaction} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 403 {object} Response "无权操作"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	tx, err := findOwned[models.Transaction](database.DB, id, user, "记录")
	if err != nil {
		FromError(c, err, "查询失败")
		return
	}

	Success(c, tx)
}

// Update 更新收支记录
// @Summary 更新收支记录
// @Description 整体覆盖指定的收支记录，仅限本人
// @Tags 收支记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Param request body TransactionRequest true "记录信息"
// @Success 200 {object} Response{data=models.Transaction} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 403 {object} Response "无权操作"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	tx, err := findOwned[models.Transaction](database.DB, id, user, "记录")
	if err != nil {
		FromError(c, err, "查询失败")
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	occurredOn, err := parseOccurredOn(req.OccurredOn)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}

	// 整体覆盖，归属不变
	tx.Kind = req.Kind
	tx.Amount = req.Amount
	tx.Category = req.Category
	tx.Description = req.Description
	tx.OccurredOn = occurredOn

	if err := database.DB.Save(tx).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}

	SuccessWithMessage(c, "更新成功", tx)
}

// Delete 删除收支记录
// @Summary 删除收支记录
// @Description 物理删除指定的收支记录，仅限本人
// @Tags 收支记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 403 {object} Response "无权操作"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	tx, err := findOwned[models.Transaction](database.DB, id, user, "记录")
	if err != nil {
		FromError(c, err, "查询失败")
		return
	}

	if err := database.DB.Delete(tx).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
