package model

import (
	"time"
)

// BaseModel 所有实体共用的主键与时间戳，删除为物理删除
// swagger:model
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
