package models

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost bcrypt 工作因子
const PasswordCost = bcrypt.DefaultCost

// User 用户模型，PasswordHash 不参与序列化
type User struct {
	BaseModel
	Email        string  `json:"email" gorm:"uniqueIndex;not null;size:120"`
	PasswordHash string  `json:"-" gorm:"not null;size:255"`
	FirstName    string  `json:"first_name" gorm:"not null;size:100"`
	LastName     string  `json:"last_name" gorm:"not null;size:100"`
	Phone        *string `json:"phone" gorm:"size:20"`

	Organizations []Organization `gorm:"foreignKey:OwnerID" json:"organizations,omitempty"`
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// SetPassword 设置密码 - 数据操作方法
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码 - 数据操作方法
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
