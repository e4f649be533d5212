package service

import (
	"time"

	"github.com/Bobnog/Controle-Finaceiro/models"

	"gorm.io/gorm"
)

// Summary 仪表盘汇总结果
type Summary struct {
	TotalIncome    float64 `json:"total_income" example:"3500.00"`    // 月薪基数 + 当期收入记录
	TotalExpense   float64 `json:"total_expense" example:"200.00"`    // 当期支出记录合计
	UnpaidInvoices float64 `json:"unpaid_invoices" example:"800.00"`  // 当期未支付账单合计
	CurrentBalance float64 `json:"current_balance" example:"3300.00"` // 收入 - 支出
	DebtScoreboard float64 `json:"debt_scoreboard" example:"2500.00"` // 余额再扣除未支付账单
}

// DashboardService 仪表盘聚合服务，只读，可并发调用
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// periodRange 返回指定月份的起止时间，终点为当月最后一秒
func periodRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// Summarize 汇总用户在 (month, year) 期间的收支与账单
// 收支记录按发生日期落入当月判断；账单只按其存储的 month/year 字段匹配，
// 三月的账单无论何时录入都算在三月
func (s *DashboardService) Summarize(user *models.User, month, year int) (Summary, error) {
	start, end := periodRange(month, year)

	var incomeSum float64
	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND kind = ? AND occurred_on >= ? AND occurred_on <= ?",
			user.ID, models.TransactionIncome, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&incomeSum).Error; err != nil {
		return Summary{}, err
	}

	var expenseSum float64
	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND kind = ? AND occurred_on >= ? AND occurred_on <= ?",
			user.ID, models.TransactionExpense, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&expenseSum).Error; err != nil {
		return Summary{}, err
	}

	var unpaidSum float64
	if err := s.db.Model(&models.Invoice{}).
		Where("user_id = ? AND paid = ? AND month = ? AND year = ?",
			user.ID, false, month, year).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&unpaidSum).Error; err != nil {
		return Summary{}, err
	}

	totalIncome := user.Salary + incomeSum
	currentBalance := totalIncome - expenseSum

	return Summary{
		TotalIncome:    totalIncome,
		TotalExpense:   expenseSum,
		UnpaidInvoices: unpaidSum,
		CurrentBalance: currentBalance,
		DebtScoreboard: currentBalance - unpaidSum,
	}, nil
}
