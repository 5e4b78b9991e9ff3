package settings

import "time"

const KeyAdminPin = "admin_pin"

type Setting struct {
	Key       string    `gorm:"column:key;type:varchar(50);primaryKey"`
	Value     string    `gorm:"column:value;type:varchar(255);not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Setting) TableName() string {
	return "system_settings"
}
