package api

import (
	"errors"

	"github.com/Bobnog/Controle-Finaceiro/middleware"
	"github.com/Bobnog/Controle-Finaceiro/models"
	"github.com/Bobnog/Controle-Finaceiro/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// owned 可判断归属的实体
type owned interface {
	OwnerID() uint
}

// findOwned 取出实体并校验归属
// 实体不存在返回 NotFound；存在但归属他人返回 Forbidden，且不做任何修改
func findOwned[T any, PT interface {
	*T
	owned
}](db *gorm.DB, id uint64, user *models.User, label string) (PT, error) {
	var entity T
	if err := db.First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.NewNotFound(label + "不存在")
		}
		return nil, err
	}
	p := PT(&entity)
	if p.OwnerID() != user.ID {
		return nil, service.NewForbidden("无权操作该" + label)
	}
	return p, nil
}

// currentUser 受保护接口的统一授权入口
// token 已由中间件校验，这里按ID重新取用户，用户已删除时视为未认证
func currentUser(c *gin.Context, auth *service.AuthService) (*models.User, bool) {
	user, err := auth.UserByID(middleware.GetCurrentUserID(c))
	if err != nil {
		FromError(c, err, "未认证")
		return nil, false
	}
	return user, true
}
