package service

import (
	"errors"

	"github.com/Bobnog/Controle-Finaceiro/config"
	"github.com/Bobnog/Controle-Finaceiro/middleware"
	"github.com/Bobnog/Controle-Finaceiro/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MaxPasswordBytes bcrypt 超过 72 字节会静默截断，这里显式拒绝而不是依赖库行为
const MaxPasswordBytes = 72

// AuthService 认证服务：注册、登录、当前用户解析与自身资料更新
type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthService 创建认证服务
func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// HashPassword 生成密码的 bcrypt 摘要
func HashPassword(plaintext string) (string, error) {
	if len(plaintext) > MaxPasswordBytes {
		return "", NewValidation("密码过长，最多 72 字节")
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword 校验明文密码与存储的摘要是否匹配
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// Register 注册新用户
// 邮箱唯一性先查询预检，再依赖存储层唯一索引兜底，两次注册并发时只会成功一个
func (s *AuthService) Register(email, password string, salary float64) (*models.User, error) {
	digest, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	// 预检查邮箱是否已注册
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, NewConflict("邮箱已注册")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: digest,
		Salary:   salary,
	}

	if err := s.db.Create(&user).Error; err != nil {
		// 并发注册穿过预检时由唯一索引拦截
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflict("邮箱已注册")
		}
		return nil, err
	}

	return &user, nil
}

// Login 校验凭证并签发 token
// 用户不存在与密码错误统一返回同一错误，避免暴露邮箱是否注册
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, NewAuth("邮箱或密码错误")
		}
		return "", nil, err
	}

	if !VerifyPassword(password, user.Password) {
		return "", nil, NewAuth("邮箱或密码错误")
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, s.cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}

// CurrentUser 从 bearer token 解析当前用户
// token 无效、已过期或用户已不存在时统一返回未认证错误；无副作用，每次请求都可调用
func (s *AuthService) CurrentUser(tokenString string) (*models.User, error) {
	claims, err := middleware.ParseToken(tokenString)
	if err != nil {
		return nil, NewAuth("未认证")
	}
	return s.UserByID(claims.UserID)
}

// UserByID 按ID重新获取用户，token 有效但用户已删除时返回未认证错误
func (s *AuthService) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewAuth("未认证")
		}
		return nil, err
	}
	return &user, nil
}

// UserWithDetails 获取用户及其全部收支记录与账单
// 收支记录按发生日期倒序，账单按年月倒序
func (s *AuthService) UserWithDetails(id uint) (*models.User, error) {
	var user models.User
	err := s.db.
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_on DESC")
		}).
		Preload("Invoices", func(db *gorm.DB) *gorm.DB {
			return db.Order("year DESC, month DESC")
		}).
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewAuth("未认证")
		}
		return nil, err
	}
	return &user, nil
}

// UpdateSalary 更新当前用户的月薪基数
// salary 为 nil 时不做任何修改；数值不限符号与大小
func (s *AuthService) UpdateSalary(user *models.User, salary *float64) (*models.User, error) {
	if salary == nil {
		return user, nil
	}
	if err := s.db.Model(user).Update("salary", *salary).Error; err != nil {
		return nil, err
	}
	user.Salary = *salary
	return user, nil
}
