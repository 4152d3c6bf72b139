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

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountNameRequired = errors.New("account name is required")
	ErrAssigneeNotFound    = errors.New("assignee employee not found")
	ErrInvalidStatusChange = errors.New("account status change not allowed")
)

// AccountService handles work account lifecycle logic.
type AccountService struct {
	accountRepo repository.AccountRepository
	userRepo    repository.UserRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo repository.AccountRepository, userRepo repository.UserRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
	}
}

// AccountInput holds the descriptive fields of a work account.
type AccountInput struct {
	AccountName  string
	LoginDetails string
	BrowserType  string
}

// Create inserts a new account with status Assigned and no owner.
func (s *AccountService) Create(input AccountInput) (*models.WorkAccount, error) {
	if input.AccountName == "" {
		return nil, ErrAccountNameRequired
	}

	account := &models.WorkAccount{
		AccountName:  input.AccountName,
		LoginDetails: input.LoginDetails,
		BrowserType:  input.BrowserType,
		Status:       models.AccountStatusAssigned,
	}

	if err := s.accountRepo.Create(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// List retrieves accounts, restricted to one owner when employeeID is set.
func (s *AccountService) List(employeeID *uint64) ([]models.WorkAccount, error) {
	accounts, err := s.accountRepo.List(repository.AccountFilter{EmployeeID: employeeID})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Edit overwrites the descriptive fields without touching status or owner.
func (s *AccountService) Edit(accountID uint64, input AccountInput) (*models.WorkAccount, error) {
	if input.AccountName == "" {
		return nil, ErrAccountNameRequired
	}

	account, err := s.findAccount(accountID)
	if err != nil {
		return nil, err
	}

	account.AccountName = input.AccountName
	account.LoginDetails = input.LoginDetails
	account.BrowserType = input.BrowserType

	if err := s.accountRepo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return account, nil
}

// Delete hard-removes an account.
func (s *AccountService) Delete(accountID uint64) error {
	if _, err := s.findAccount(accountID); err != nil {
		return err
	}

	if err := s.accountRepo.Delete(accountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return nil
}

// Assign sets or clears the owner and resets the status to Assigned.
func (s *AccountService) Assign(accountID uint64, employeeID *uint64) (*models.WorkAccount, error) {
	account, err := s.findAccount(accountID)
	if err != nil {
		return nil, err
	}

	if err := s.verifyAssignee(employeeID); err != nil {
		return nil, err
	}

	account.EmployeeID = employeeID
	account.Status = models.AccountStatusAssigned
	account.RecentlyUnpaused = false

	if err := s.accountRepo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to assign account: %w", err)
	}

	return account, nil
}

// Reassign moves an account to a new owner. An account already worked to
// completion is closed history: its descriptive fields are cloned into a fresh
// row for the new owner and the original is kept untouched.
func (s *AccountService) Reassign(accountID uint64, employeeID *uint64) (*models.WorkAccount, error) {
	account, err := s.findAccount(accountID)
	if err != nil {
		return nil, err
	}

	if err := s.verifyAssignee(employeeID); err != nil {
		return nil, err
	}

	if account.Completed() {
		clone := &models.WorkAccount{
			AccountName:  account.AccountName,
			LoginDetails: account.LoginDetails,
			BrowserType:  account.BrowserType,
			Status:       models.AccountStatusAssigned,
			EmployeeID:   employeeID,
		}
		if err := s.accountRepo.Create(clone); err != nil {
			return nil, fmt.Errorf("failed to fork account: %w", err)
		}
		return clone, nil
	}

	account.EmployeeID = employeeID
	account.Status = models.AccountStatusAssigned
	account.RecentlyUnpaused = false

	if err := s.accountRepo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to reassign account: %w", err)
	}

	return account, nil
}

// Unassign clears the owner and resets the status to Assigned.
func (s *AccountService) Unassign(accountID uint64) (*models.WorkAccount, error) {
	return s.Assign(accountID, nil)
}

// UnassignAll clears every owned account, returning how many were touched.
func (s *AccountService) UnassignAll() (int64, error) {
	count, err := s.accountRepo.UnassignAllOwned()
	if err != nil {
		return 0, fmt.Errorf("failed to unassign accounts: %w", err)
	}
	return count, nil
}

// EarningsCapture holds an optional earnings snapshot taken when accepting or
// leaving an account.
type EarningsCapture struct {
	Amount *decimal.Decimal
	Proof  string
}

// Accept marks an owned account as Accepted. Accepting out of Paused raises
// the recently-unpaused notification flag. An earnings capture records the
// account balance at the start of the work session.
func (s *AccountService) Accept(employeeID, accountID uint64, capture EarningsCapture) (*models.WorkAccount, error) {
	account, err := s.findOwnedAccount(accountID, employeeID)
	if err != nil {
		return nil, err
	}

	if !account.Status.CanTransitionTo(models.AccountStatusAccepted) {
		return nil, ErrInvalidStatusChange
	}

	if account.Status == models.AccountStatusPaused {
		account.RecentlyUnpaused = true
	}
	account.Status = models.AccountStatusAccepted

	if capture.Amount != nil {
		now := time.Now()
		account.InitialEarnings = capture.Amount
		account.InitialEarningsProof = capture.Proof
		account.InitialEarningsDate = &now
	}

	if err := s.accountRepo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to accept account: %w", err)
	}

	return account, nil
}

// Pause marks an owned account as Paused.
func (s *AccountService) Pause(employeeID, accountID uint64) (*models.WorkAccount, error) {
	account, err := s.findOwnedAccount(accountID, employeeID)
	if err != nil {
		return nil, err
	}

	if !account.Status.CanTransitionTo(models.AccountStatusPaused) {
		return nil, ErrInvalidStatusChange
	}
	account.Status = models.AccountStatusPaused

	if err := s.accountRepo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to pause account: %w", err)
	}

	return account, nil
}

// Leave marks an owned account as Left. With an earnings capture it records
// the final balance and returns the payout for the session, final minus
// initial. The owner is kept on the row so payroll can attribute the payout.
func (s *AccountService) Leave(employeeID, accountID uint64, capture EarningsCapture) (*models.WorkAccount, decimal.Decimal, error) {
	account, err := s.findOwnedAccount(accountID, employeeID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	if !account.Status.CanTransitionTo(models.AccountStatusLeft) {
		return nil, decimal.Zero, ErrInvalidStatusChange
	}
	account.Status = models.AccountStatusLeft

	payout := decimal.Zero
	if capture.Amount != nil {
		now := time.Now()
		account.FinalEarnings = capture.Amount
		account.FinalEarningsProof = capture.Proof
		account.FinalEarningsDate = &now
		payout = account.Earned()
	}

	if err := s.accountRepo.Update(account); err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to leave account: %w", err)
	}

	return account, payout, nil
}

// DismissUnpauseNotification clears the recently-unpaused flag.
func (s *AccountService) DismissUnpauseNotification(accountID uint64) (*models.WorkAccount, error) {
	account, err := s.findAccount(accountID)
	if err != nil {
		return nil, err
	}

	account.RecentlyUnpaused = false

	if err := s.accountRepo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to dismiss notification: %w", err)
	}

	return account, nil
}

func (s *AccountService) findAccount(accountID uint64) (*models.WorkAccount, error) {
	account, err := s.accountRepo.FindByID(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

// findOwnedAccount resolves an account only when it belongs to the caller;
// anything else reads as not found.
func (s *AccountService) findOwnedAccount(accountID, employeeID uint64) (*models.WorkAccount, error) {
	account, err := s.accountRepo.FindByIDForEmployee(accountID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

func (s *AccountService) verifyAssignee(employeeID *uint64) error {
	if employeeID == nil {
		return nil
	}

	user, err := s.userRepo.FindByID(*employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to verify assignee: %w", err)
	}
	if user.Role != models.RoleEmployee {
		return ErrAssigneeNotFound
	}

	return nil
}
