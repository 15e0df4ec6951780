package model

import (
	"time"
)

type User struct {
	Id         string    `gorm:"type:varchar(16);primaryKey"`
	Passphrase string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
