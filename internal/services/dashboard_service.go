package services

import (
	"fmt"

	"github.com/worksys/workforce-api/internal/models"
	"github.com/worksys/workforce-api/internal/repository"
)

// DashboardService assembles the manager overview.
type DashboardService struct {
	claimRepo   repository.ClaimRepository
	accountRepo repository.AccountRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(claimRepo repository.ClaimRepository, accountRepo repository.AccountRepository) *DashboardService {
	return &DashboardService{
		claimRepo:   claimRepo,
		accountRepo: accountRepo,
	}
}

// EmployeePendingClaims is one employee's pending claims, for review grouping.
type EmployeePendingClaims struct {
	Employee models.User
	Claims   []models.TaskClaim
}

// Overview is the manager dashboard payload: pending claims grouped by
// employee plus the account states that need attention.
type Overview struct {
	PendingClaims    []EmployeePendingClaims
	PausedAccounts   []models.WorkAccount
	LeftAccounts     []models.WorkAccount
	UnpausedAccounts []models.WorkAccount
}

// GetOverview builds the manager dashboard.
func (s *DashboardService) GetOverview() (*Overview, error) {
	pending := models.ClaimStatusPending
	claims, _, err := s.claimRepo.List(repository.ClaimFilter{Status: &pending})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending claims: %w", err)
	}

	byEmployee := make(map[uint64]int)
	groups := make([]EmployeePendingClaims, 0)
	for _, claim := range claims {
		idx, ok := byEmployee[claim.EmployeeID]
		if !ok {
			idx = len(groups)
			byEmployee[claim.EmployeeID] = idx
			groups = append(groups, EmployeePendingClaims{Employee: claim.Employee})
		}
		groups[idx].Claims = append(groups[idx].Claims, claim)
	}

	paused := models.AccountStatusPaused
	pausedAccounts, err := s.accountRepo.List(repository.AccountFilter{Status: &paused})
	if err != nil {
		return nil, fmt.Errorf("failed to list paused accounts: %w", err)
	}

	left := models.AccountStatusLeft
	leftAccounts, err := s.accountRepo.List(repository.AccountFilter{Status: &left})
	if err != nil {
		return nil, fmt.Errorf("failed to list left accounts: %w", err)
	}

	unpaused := true
	unpausedAccounts, err := s.accountRepo.List(repository.AccountFilter{RecentlyUnpaused: &unpaused})
	if err != nil {
		return nil, fmt.Errorf("failed to list unpaused accounts: %w", err)
	}

	return &Overview{
		PendingClaims:    groups,
		PausedAccounts:   pausedAccounts,
		LeftAccounts:     leftAccounts,
		UnpausedAccounts: unpausedAccounts,
	}, nil
}
