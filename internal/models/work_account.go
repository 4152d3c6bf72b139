package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AccountStatus string

const (
	AccountStatusAssigned AccountStatus = "Assigned"
	AccountStatusAccepted AccountStatus = "Accepted"
	AccountStatusPaused   AccountStatus = "Paused"
	AccountStatusLeft     AccountStatus = "Left"
)

// accountTransitions lists the employee-driven status changes. Manager
// (re)assignment resets status to Assigned outside this table.
var accountTransitions = map[AccountStatus][]AccountStatus{
	AccountStatusAssigned: {AccountStatusAccepted},
	AccountStatusAccepted: {AccountStatusPaused, AccountStatusLeft},
	AccountStatusPaused:   {AccountStatusAccepted, AccountStatusLeft},
	AccountStatusLeft:     {},
}

// CanTransitionTo reports whether an employee may move an account from s to next.
func (s AccountStatus) CanTransitionTo(next AccountStatus) bool {
	for _, allowed := range accountTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type WorkAccount struct {
	ID               uint64        `gorm:"primarykey" json:"id"`
	AccountName      string        `gorm:"type:varchar(100);not null" json:"account_name"`
	LoginDetails     string        `gorm:"type:text" json:"login_details"`
	BrowserType      string        `gorm:"type:varchar(50)" json:"browser_type"`
	Status           AccountStatus `gorm:"type:varchar(20);not null;default:'Assigned'" json:"status"`
	EmployeeID       *uint64       `gorm:"index" json:"employee_id"`
	RecentlyUnpaused bool          `gorm:"not null;default:false" json:"recently_unpaused"`

	InitialEarnings      *decimal.Decimal `gorm:"type:decimal(12,2)" json:"initial_earnings"`
	FinalEarnings        *decimal.Decimal `gorm:"type:decimal(12,2)" json:"final_earnings"`
	InitialEarningsProof string           `gorm:"type:mediumtext" json:"-"`
	FinalEarningsProof   string           `gorm:"type:mediumtext" json:"-"`
	InitialEarningsDate  *time.Time       `json:"initial_earnings_date"`
	FinalEarningsDate    *time.Time       `json:"final_earnings_date"`

	IsPaid     bool       `gorm:"not null;default:false" json:"is_paid"`
	PaidAt     *time.Time `json:"paid_at"`
	AssignedAt time.Time  `gorm:"autoCreateTime" json:"assigned_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Employee *User `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

// Earned returns the payout for a completed work session: final earnings minus
// initial earnings. Zero when no final earnings were recorded.
func (a *WorkAccount) Earned() decimal.Decimal {
	if a.FinalEarnings == nil {
		return decimal.Zero
	}
	initial := decimal.Zero
	if a.InitialEarnings != nil {
		initial = *a.InitialEarnings
	}
	return a.FinalEarnings.Sub(initial)
}

// Completed reports whether the account has been worked to completion. A
// completed account is closed history: reassigning it forks a new row.
func (a *WorkAccount) Completed() bool {
	return a.FinalEarnings != nil
}
