package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "Pending"
	ClaimStatusApproved ClaimStatus = "Approved"
	ClaimStatusRejected ClaimStatus = "Rejected"
)

// Resolved reports whether the claim has already been approved or rejected.
func (s ClaimStatus) Resolved() bool {
	return s == ClaimStatusApproved || s == ClaimStatusRejected
}

type TaskClaim struct {
	ID             uint64          `gorm:"primarykey" json:"id"`
	EmployeeID     uint64          `gorm:"not null;index" json:"employee_id"`
	Platform       string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_claims_platform_task" json:"platform"`
	AccountName    string          `gorm:"type:varchar(100);not null" json:"account_name"`
	TaskExternalID string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_claims_platform_task" json:"task_external_id"`
	TimeSpentHours decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"time_spent_hours"`
	Screenshot     string          `gorm:"type:mediumtext" json:"-"`
	Status         ClaimStatus     `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	ManagerNotes   string          `gorm:"type:text" json:"manager_notes"`
	IsPaid         bool            `gorm:"not null;default:false" json:"is_paid"`
	SubmittedAt    time.Time       `gorm:"autoCreateTime" json:"submitted_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	Employee User `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}
