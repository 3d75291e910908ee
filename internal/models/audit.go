package models

import (
	"time"
)

// AuditLog records who did what to a receipt or session
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Action    string    `gorm:"size:50;not null" json:"action"` // LOGIN, CREATE, UPDATE, VOID, RESTORE, EMAIL
	Entity    string    `gorm:"size:50;not null" json:"entity"` // Receipt, User
	EntityID  uint      `json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit actions
const (
	AuditActionLogin   = "LOGIN"
	AuditActionCreate  = "CREATE"
	AuditActionUpdate  = "UPDATE"
	AuditActionVoid    = "VOID"
	AuditActionRestore = "RESTORE"
	AuditActionEmail   = "EMAIL"
)

// Audit entities
const (
	AuditEntityReceipt = "Receipt"
	AuditEntityUser    = "User"
)
