package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuthLog records one authentication or provisioning event.
type AuthLog struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID   string         `gorm:"index:idx_authlog_event;size:36;not null" json:"event_id"`
	AccountID *int64         `gorm:"index:idx_authlog_account" json:"account_id"`
	Email     string         `gorm:"size:128" json:"email"`
	Action    string         `gorm:"size:64;not null" json:"action"`
	Success   bool           `json:"success"`
	Detail    datatypes.JSON `json:"detail"`
	CreatedAt time.Time      `gorm:"index:idx_authlog_created;autoCreateTime:milli" json:"created_at"`
}
