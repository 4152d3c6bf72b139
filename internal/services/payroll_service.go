package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/worksys/workforce-api/internal/models"
	"github.com/worksys/workforce-api/internal/repository"
	"gorm.io/gorm"
)

// PayrollService computes what each employee is owed. The source of truth is
// the earnings delta of completed accounts: Left, final earnings recorded, not
// yet paid out.
type PayrollService struct {
	accountRepo repository.AccountRepository
	userRepo    repository.UserRepository
}

// NewPayrollService creates a new PayrollService.
func NewPayrollService(accountRepo repository.AccountRepository, userRepo repository.UserRepository) *PayrollService {
	return &PayrollService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
	}
}

// EmployeePayroll is one employee's pending payout.
type EmployeePayroll struct {
	Employee    models.User
	Accounts    []models.WorkAccount
	TotalEarned decimal.Decimal
}

// Summary groups unpaid completed accounts by employee with per-account and
// total payouts, newest completion first within each group.
func (s *PayrollService) Summary() ([]EmployeePayroll, error) {
	accounts, err := s.accountRepo.ListUnpaidCompleted()
	if err != nil {
		return nil, fmt.Errorf("failed to list unpaid accounts: %w", err)
	}

	byEmployee := make(map[uint64]int)
	summary := make([]EmployeePayroll, 0)

	for _, account := range accounts {
		if account.EmployeeID == nil || account.Employee == nil {
			// Unattributable history rows never enter payroll.
			continue
		}

		idx, ok := byEmployee[*account.EmployeeID]
		if !ok {
			idx = len(summary)
			byEmployee[*account.EmployeeID] = idx
			summary = append(summary, EmployeePayroll{
				Employee:    *account.Employee,
				TotalEarned: decimal.Zero,
			})
		}

		summary[idx].Accounts = append(summary[idx].Accounts, account)
		summary[idx].TotalEarned = summary[idx].TotalEarned.Add(account.Earned())
	}

	return summary, nil
}

// MarkPaid settles all pending payouts for one employee. Returns the number of
// accounts settled; zero when nothing was owed, which is not an error.
func (s *PayrollService) MarkPaid(employeeID uint64) (int64, error) {
	employee, err := s.userRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrEmployeeNotFound
		}
		return 0, fmt.Errorf("failed to find employee: %w", err)
	}
	if employee.Role != models.RoleEmployee {
		return 0, ErrEmployeeNotFound
	}

	count, err := s.accountRepo.MarkPaidForEmployee(employeeID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to mark accounts paid: %w", err)
	}

	return count, nil
}
