package models

import (
	"time"
)

// User 用户模型
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:100;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"`
	Salary    float64   `json:"salary" gorm:"type:decimal(10,2);default:0"` // 月薪基数，参与仪表盘收入合计
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Transactions []Transaction `json:"transactions,omitempty" gorm:"foreignKey:UserID"`
	Invoices     []Invoice     `json:"invoices,omitempty" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}
