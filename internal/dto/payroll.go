package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/worksys/workforce-api/internal/services"
)

// PayrollAccountDTO is one completed account inside a payroll group
type PayrollAccountDTO struct {
	ID                uint64           `json:"id"`
	AccountName       string           `json:"account_name"`
	InitialEarnings   *decimal.Decimal `json:"initial_earnings"`
	FinalEarnings     *decimal.Decimal `json:"final_earnings"`
	Earned            decimal.Decimal  `json:"earned"`
	FinalEarningsDate *time.Time       `json:"final_earnings_date"`
}

// PayrollEmployeeDTO is one employee's pending payout
type PayrollEmployeeDTO struct {
	Employee      UserDTO             `json:"employee"`
	Accounts      []PayrollAccountDTO `json:"accounts"`
	TotalEarned   decimal.Decimal     `json:"total_earned"`
	AccountsCount int                 `json:"accounts_count"`
}

// ToPayrollEmployeeDTO converts a payroll group
func ToPayrollEmployeeDTO(group services.EmployeePayroll) PayrollEmployeeDTO {
	accounts := make([]PayrollAccountDTO, len(group.Accounts))
	for i, account := range group.Accounts {
		accounts[i] = PayrollAccountDTO{
			ID:                account.ID,
			AccountName:       account.AccountName,
			InitialEarnings:   account.InitialEarnings,
			FinalEarnings:     account.FinalEarnings,
			Earned:            account.Earned(),
			FinalEarningsDate: account.FinalEarningsDate,
		}
	}

	return PayrollEmployeeDTO{
		Employee:      ToUserDTO(group.Employee),
		Accounts:      accounts,
		TotalEarned:   group.TotalEarned,
		AccountsCount: len(accounts),
	}
}

// EmployeeClaimsGroupDTO is one employee's pending claims on the dashboard
type EmployeeClaimsGroupDTO struct {
	Employee UserDTO    `json:"employee"`
	Claims   []ClaimDTO `json:"claims"`
}

// DashboardDTO is the manager overview payload
type DashboardDTO struct {
	PendingClaims    []EmployeeClaimsGroupDTO `json:"pending_claims"`
	PausedAccounts   []AccountDTO             `json:"paused_accounts"`
	LeftAccounts     []AccountDTO             `json:"left_accounts"`
	UnpausedAccounts []AccountDTO             `json:"unpaused_accounts"`
}

// ToDashboardDTO converts the dashboard overview
func ToDashboardDTO(overview services.Overview) DashboardDTO {
	groups := make([]EmployeeClaimsGroupDTO, len(overview.PendingClaims))
	for i, group := range overview.PendingClaims {
		groups[i] = EmployeeClaimsGroupDTO{
			Employee: ToUserDTO(group.Employee),
			Claims:   ToClaimDTOs(group.Claims),
		}
	}

	return DashboardDTO{
		PendingClaims:    groups,
		PausedAccounts:   ToAccountDTOs(overview.PausedAccounts),
		LeftAccounts:     ToAccountDTOs(overview.LeftAccounts),
		UnpausedAccounts: ToAccountDTOs(overview.UnpausedAccounts),
	}
}
