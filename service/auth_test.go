package service

import (
	"strings"
	"testing"
	"time"

	"github.com/Bobnog/Controle-Finaceiro/config"
	"github.com/Bobnog/Controle-Finaceiro/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	return gormDB, mock, func() { sqlDB.Close() }
}

func testConfig() *config.Config {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireHours: 24, ExpireTime: 24 * time.Hour},
	}
	config.GlobalConfig = cfg
	middleware.InitJWT(cfg)
	return cfg
}

func userRows(id uint, email, password string, salary float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password", "salary", "created_at", "updated_at"}).
		AddRow(id, email, password, salary, time.Now(), time.Now())
}

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := HashPassword("senha123")
	require.NoError(t, err)
	assert.NotEqual(t, "senha123", digest)

	assert.True(t, VerifyPassword("senha123", digest))
	assert.False(t, VerifyPassword("senha124", digest))

	// 超过 72 字节直接拒绝，不交给 bcrypt 截断
	_, err = HashPassword(strings.Repeat("a", 73))
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestAuthService_Register(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	// 预检查：邮箱未注册
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("novo@example.com").
		WillReturnRows(sqlmock.NewRows([]string{}))

	// GORM Create 使用事务
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	s := NewAuthService(db, cfg)
	user, err := s.Register("novo@example.com", "senha123", 3000)
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "novo@example.com", user.Email)
	assert.Equal(t, float64(3000), user.Salary)
	// 存储的是摘要而不是明文
	assert.NotEqual(t, "senha123", user.Password)
	assert.True(t, VerifyPassword("senha123", user.Password))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Register_PasswordTooLong(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	s := NewAuthService(db, cfg)
	_, err := s.Register("novo@example.com", strings.Repeat("x", 80), 0)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	// 没有任何 SQL 被执行，不会留下半行数据
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("usado@example.com").
		WillReturnRows(userRows(1, "usado@example.com", "hash", 0))

	s := NewAuthService(db, cfg)
	_, err := s.Register("usado@example.com", "senha123", 0)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Register_DuplicateAtCommit(t *testing.T) {
	// 两个并发注册同时通过预检查时，唯一索引在提交阶段拦截后来者
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("corrida@example.com").
		WillReturnRows(sqlmock.NewRows([]string{}))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry 'corrida@example.com' for key 'idx_users_email'"})
	mock.ExpectRollback()

	s := NewAuthService(db, cfg)
	_, err := s.Register("corrida@example.com", "senha123", 0)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Login(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("senha123"), bcrypt.DefaultCost)
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("login@example.com").
		WillReturnRows(userRows(5, "login@example.com", string(hashed), 2500))

	s := NewAuthService(db, cfg)
	token, user, err := s.Login("login@example.com", "senha123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, uint(5), user.ID)

	// 签发的 token 指向该用户
	claims, err := middleware.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.UserID)
	assert.Equal(t, "5", claims.Subject)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	s := NewAuthService(db, cfg)

	// 用户不存在
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("ninguem@example.com").
		WillReturnRows(sqlmock.NewRows([]string{}))
	_, _, errNoUser := s.Login("ninguem@example.com", "qualquer")
	require.Error(t, errNoUser)
	assert.Equal(t, KindAuth, KindOf(errNoUser))

	// 密码错误
	hashed, _ := bcrypt.GenerateFromPassword([]byte("certa"), bcrypt.DefaultCost)
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("login@example.com").
		WillReturnRows(userRows(5, "login@example.com", string(hashed), 0))
	_, _, errBadPass := s.Login("login@example.com", "errada")
	require.Error(t, errBadPass)
	assert.Equal(t, KindAuth, KindOf(errBadPass))

	// 两种失败对外不可区分
	assert.Equal(t, errNoUser.Error(), errBadPass.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_CurrentUser(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	s := NewAuthService(db, cfg)

	// 有效 token，用户存在
	token, err := middleware.GenerateToken(9, "atual@example.com", time.Hour)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(9).
		WillReturnRows(userRows(9, "atual@example.com", "hash", 1000))
	user, err := s.CurrentUser(token)
	require.NoError(t, err)
	assert.Equal(t, uint(9), user.ID)

	// 过期 token，不触达数据库
	expired, err := middleware.GenerateToken(9, "atual@example.com", -time.Hour)
	require.NoError(t, err)
	_, err = s.CurrentUser(expired)
	require.Error(t, err)
	assert.Equal(t, KindAuth, KindOf(err))

	// token 有效但用户已被删除
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{}))
	_, err = s.CurrentUser(token)
	require.Error(t, err)
	assert.Equal(t, KindAuth, KindOf(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_UpdateSalary(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	s := NewAuthService(db, cfg)

	// 先取出用户
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(3).
		WillReturnRows(userRows(3, "eu@example.com", "hash", 1000))
	user, err := s.UserByID(3)
	require.NoError(t, err)

	// nil 不做修改
	same, err := s.UpdateSalary(user, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(1000), same.Salary)

	// 提供新值则覆盖，允许负数和零
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	newSalary := -50.0
	updated, err := s.UpdateSalary(user, &newSalary)
	require.NoError(t, err)
	assert.Equal(t, -50.0, updated.Salary)
	require.NoError(t, mock.ExpectationsWereMet())
}
