package model

import (
	"time"
)

type Note struct {
	Id               string    `gorm:"type:varchar(64);primaryKey"`
	UserId           string    `gorm:"type:varchar(16);not null;index"`
	Title            string    `gorm:"type:varchar(255);not null"`
	Content          string    `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
	ParentId         *string   `gorm:"type:varchar(64)"`
	IsArchived       bool      `gorm:"default:false"`
	OriginalParentId *string   `gorm:"type:varchar(64)"`
}

func (Note) TableName() string {
	return "notes"
}
