package models

// Organization 组织（租户）模型
type Organization struct {
	BaseModel
	Name        string  `json:"name" gorm:"not null;size:100"`
	Description *string `json:"description" gorm:"type:text"`
	Website     *string `json:"website" gorm:"size:255"`
	Phone       *string `json:"phone" gorm:"size:20"`
	Address     *string `json:"address" gorm:"size:255"`
	Status      string  `json:"status" gorm:"default:'active';size:20"`
	OwnerID     uint    `json:"owner_id" gorm:"not null;index"`
}

// TableName 表名
func (o *Organization) TableName() string {
	return "organizations"
}

// 组织状态常量
const (
	OrganizationStatusActive   = "active"
	OrganizationStatusInactive = "inactive"
)
