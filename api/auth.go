package api

import (
	"github.com/Bobnog/Controle-Finaceiro/config"
	"github.com/Bobnog/Controle-Finaceiro/database"
	"github.com/Bobnog/Controle-Finaceiro/models"
	"github.com/Bobnog/Controle-Finaceiro/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	cfg  *config.Config
	auth *service.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		cfg:  cfg,
		auth: service.NewAuthService(database.DB, cfg),
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email" example:"user@example.com"`
	Password string  `json:"password" binding:"required,min=4" example:"senha123"`
	Salary   float64 `json:"salary" example:"3000.00"` // 月薪基数，可选，默认 0
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"senha123"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token    string      `json:"token"`
	UserInfo models.User `json:"user_info"`
}

// UpdateProfileRequest 更新个人资料请求，目前仅支持月薪基数
type UpdateProfileRequest struct {
	Salary *float64 `json:"salary" example:"3500.00"`
}

// Register 用户注册
// @Summary 用户注册
// @Description 创建新用户账号，邮箱唯一，密码以 bcrypt 摘要存储
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 200 {object} Response{data=models.User} "注册成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 409 {object} Response "邮箱已注册"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	user, err := h.auth.Register(req.Email, req.Password, req.Salary)
	if err != nil {
		FromError(c, err, "创建用户失败")
		return
	}

	SuccessWithMessage(c, "注册成功", user)
}

// Login 用户登录
// @Summary 用户登录
// @Description 用户登录获取 JWT token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=LoginResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "邮箱或密码错误"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	token, user, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		FromError(c, err, "登录失败")
		return
	}

	Success(c, LoginResponse{
		Token:    token,
		UserInfo: *user,
	})
}

// GetProfile 获取当前用户信息
// @Summary 获取当前用户信息
// @Description 获取当前登录用户的详细信息，含全部收支记录与账单
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}

	user, err := h.auth.UserWithDetails(user.ID)
	if err != nil {
		FromError(c, err, "查询失败")
		return
	}

	Success(c, user)
}

// UpdateProfile 更新当前用户信息
// @Summary 更新当前用户信息
// @Description 更新当前用户的月薪基数，不传 salary 则不做修改
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "资料信息"
// @Success 200 {object} Response{data=models.User} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	updated, err := h.auth.UpdateSalary(user, req.Salary)
	if err != nil {
		FromError(c, err, "更新失败")
		return
	}

	SuccessWithMessage(c, "更新成功", updated)
}
