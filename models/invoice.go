package models

import (
	"time"
)

// Invoice 信用卡账单模型
// (user, institution, month, year) 不做唯一约束，允许同一机构同期多条账单
type Invoice struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Institution string    `json:"institution" gorm:"size:100;not null"`
	Amount      float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Month       int       `json:"month" gorm:"not null"` // 账单所属月份 1-12
	Year        int       `json:"year" gorm:"not null"`
	Paid        bool      `json:"paid" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Invoice) TableName() string {
	return "invoices"
}

// OwnerID 返回账单归属的用户ID
func (i *Invoice) OwnerID() uint {
	return i.UserID
}
