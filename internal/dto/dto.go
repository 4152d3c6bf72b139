package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/worksys/workforce-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64      `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// AccountDTO represents a work account in API responses
type AccountDTO struct {
	ID                  uint64               `json:"id"`
	AccountName         string               `json:"account_name"`
	LoginDetails        string               `json:"login_details"`
	BrowserType         string               `json:"browser_type"`
	Status              models.AccountStatus `json:"status"`
	EmployeeID          *uint64              `json:"employee_id"`
	RecentlyUnpaused    bool                 `json:"recently_unpaused"`
	InitialEarnings     *decimal.Decimal     `json:"initial_earnings"`
	FinalEarnings       *decimal.Decimal     `json:"final_earnings"`
	InitialEarningsDate *time.Time           `json:"initial_earnings_date"`
	FinalEarningsDate   *time.Time           `json:"final_earnings_date"`
	IsPaid              bool                 `json:"is_paid"`
	PaidAt              *time.Time           `json:"paid_at"`
	AssignedAt          time.Time            `json:"assigned_at"`
	Employee            *UserDTO             `json:"employee,omitempty"`
}

// ClaimDTO represents a task claim in API responses
type ClaimDTO struct {
	ID             uint64             `json:"id"`
	EmployeeID     uint64             `json:"employee_id"`
	Platform       string             `json:"platform"`
	AccountName    string             `json:"account_name"`
	TaskExternalID string             `json:"task_external_id"`
	TimeSpentHours decimal.Decimal    `json:"time_spent_hours"`
	Status         models.ClaimStatus `json:"status"`
	ManagerNotes   string             `json:"manager_notes"`
	IsPaid         bool               `json:"is_paid"`
	SubmittedAt    time.Time          `json:"submitted_at"`
	Employee       *UserDTO           `json:"employee,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}

// ToAccountDTO converts a WorkAccount model to AccountDTO
func ToAccountDTO(account models.WorkAccount) AccountDTO {
	dto := AccountDTO{
		ID:                  account.ID,
		AccountName:         account.AccountName,
		LoginDetails:        account.LoginDetails,
		BrowserType:         account.BrowserType,
		Status:              account.Status,
		EmployeeID:          account.EmployeeID,
		RecentlyUnpaused:    account.RecentlyUnpaused,
		InitialEarnings:     account.InitialEarnings,
		FinalEarnings:       account.FinalEarnings,
		InitialEarningsDate: account.InitialEarningsDate,
		FinalEarningsDate:   account.FinalEarningsDate,
		IsPaid:              account.IsPaid,
		PaidAt:              account.PaidAt,
		AssignedAt:          account.AssignedAt,
	}

	// Include owner if preloaded
	if account.Employee != nil {
		employee := ToUserDTO(*account.Employee)
		dto.Employee = &employee
	}

	return dto
}

// ToAccountDTOs converts a slice of accounts
func ToAccountDTOs(accounts []models.WorkAccount) []AccountDTO {
	dtos := make([]AccountDTO, len(accounts))
	for i, account := range accounts {
		dtos[i] = ToAccountDTO(account)
	}
	return dtos
}

// ToClaimDTO converts a TaskClaim model to ClaimDTO
func ToClaimDTO(claim models.TaskClaim) ClaimDTO {
	dto := ClaimDTO{
		ID:             claim.ID,
		EmployeeID:     claim.EmployeeID,
		Platform:       claim.Platform,
		AccountName:    claim.AccountName,
		TaskExternalID: claim.TaskExternalID,
		TimeSpentHours: claim.TimeSpentHours,
		Status:         claim.Status,
		ManagerNotes:   claim.ManagerNotes,
		IsPaid:         claim.IsPaid,
		SubmittedAt:    claim.SubmittedAt,
	}

	// Include employee if preloaded
	if claim.Employee.ID != 0 {
		employee := ToUserDTO(claim.Employee)
		dto.Employee = &employee
	}

	return dto
}

// ToClaimDTOs converts a slice of claims
func ToClaimDTOs(claims []models.TaskClaim) []ClaimDTO {
	dtos := make([]ClaimDTO, len(claims))
	for i, claim := range claims {
		dtos[i] = ToClaimDTO(claim)
	}
	return dtos
}
