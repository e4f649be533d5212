package models

import (
	"time"
)

// 交易类型常量
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction 收支记录模型
type Transaction struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Kind        string    `json:"kind" gorm:"size:10;not null"` // income 或 expense
	Amount      float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Category    string    `json:"category" gorm:"size:50"`
	Description string    `json:"description" gorm:"size:255"`
	OccurredOn  time.Time `json:"occurred_on" gorm:"type:date;not null"` // 发生日期，不含时间部分
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}

// OwnerID 返回记录归属的用户ID
func (t *Transaction) OwnerID() uint {
	return t.UserID
}

// ValidTransactionKind 判断交易类型是否合法
func ValidTransactionKind(kind string) bool {
	return kind == TransactionIncome || kind == TransactionExpense
}
