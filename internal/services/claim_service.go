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
	ErrClaimNotFound        = errors.New("claim not found")
	ErrDuplicateTask        = errors.New("this task ID already exists for this platform")
	ErrClaimAlreadyResolved = errors.New("claim has already been approved or rejected")
	ErrPlatformRequired     = errors.New("platform is required")
	ErrTaskIDRequired       = errors.New("task ID is required")
	ErrInvalidTimeSpent     = errors.New("time spent must be greater than zero")
)

var sixty = decimal.NewFromInt(60)

// ClaimService handles task claim lifecycle logic.
type ClaimService struct {
	claimRepo repository.ClaimRepository
	userRepo  repository.UserRepository
}

// NewClaimService creates a new ClaimService.
func NewClaimService(claimRepo repository.ClaimRepository, userRepo repository.UserRepository) *ClaimService {
	return &ClaimService{
		claimRepo: claimRepo,
		userRepo:  userRepo,
	}
}

// SubmitClaimInput holds the fields of a new claim.
type SubmitClaimInput struct {
	EmployeeID     uint64
	Platform       string
	AccountName    string
	TaskExternalID string
	Hours          int64
	Minutes        int64
	Screenshot     string
}

// Submit creates a Pending claim for the caller. A task may be claimed once
// system-wide per platform; duplicates surface as ErrDuplicateTask.
func (s *ClaimService) Submit(input SubmitClaimInput) (*models.TaskClaim, error) {
	if input.Platform == "" {
		return nil, ErrPlatformRequired
	}
	if input.TaskExternalID == "" {
		return nil, ErrTaskIDRequired
	}
	if input.Hours < 0 || input.Minutes < 0 || input.Minutes >= 60 || (input.Hours == 0 && input.Minutes == 0) {
		return nil, ErrInvalidTimeSpent
	}

	timeSpent := decimal.NewFromInt(input.Hours).
		Add(decimal.NewFromInt(input.Minutes).DivRound(sixty, 2))

	claim := &models.TaskClaim{
		EmployeeID:     input.EmployeeID,
		Platform:       input.Platform,
		AccountName:    input.AccountName,
		TaskExternalID: input.TaskExternalID,
		TimeSpentHours: timeSpent,
		Screenshot:     input.Screenshot,
		Status:         models.ClaimStatusPending,
	}

	if err := s.claimRepo.Create(claim); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTask
		}
		return nil, fmt.Errorf("failed to submit claim: %w", err)
	}

	return claim, nil
}

// List retrieves claims matching the filter.
func (s *ClaimService) List(filter repository.ClaimFilter) ([]models.TaskClaim, int64, error) {
	claims, total, err := s.claimRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list claims: %w", err)
	}
	return claims, total, nil
}

// Approve marks a Pending claim as Approved. Resolved claims stay resolved.
func (s *ClaimService) Approve(claimID uint64) (*models.TaskClaim, error) {
	claim, err := s.findClaim(claimID)
	if err != nil {
		return nil, err
	}

	if claim.Status.Resolved() {
		return nil, ErrClaimAlreadyResolved
	}
	claim.Status = models.ClaimStatusApproved

	if err := s.claimRepo.Update(claim); err != nil {
		return nil, fmt.Errorf("failed to approve claim: %w", err)
	}

	return claim, nil
}

// Reject marks a Pending claim as Rejected and stores the manager's reason.
func (s *ClaimService) Reject(claimID uint64, reason string) (*models.TaskClaim, error) {
	claim, err := s.findClaim(claimID)
	if err != nil {
		return nil, err
	}

	if claim.Status.Resolved() {
		return nil, ErrClaimAlreadyResolved
	}
	claim.Status = models.ClaimStatusRejected
	claim.ManagerNotes = reason

	if err := s.claimRepo.Update(claim); err != nil {
		return nil, fmt.Errorf("failed to reject claim: %w", err)
	}

	return claim, nil
}

// HistoryForDay returns an employee's claims submitted on the given day along
// with the total hours. Activity monitoring only; no pay is derived from it.
func (s *ClaimService) HistoryForDay(employeeID uint64, day time.Time) ([]models.TaskClaim, decimal.Decimal, error) {
	employee, err := s.userRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, ErrEmployeeNotFound
		}
		return nil, decimal.Zero, fmt.Errorf("failed to find employee: %w", err)
	}
	if employee.Role != models.RoleEmployee {
		return nil, decimal.Zero, ErrEmployeeNotFound
	}

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24 * time.Hour)

	claims, _, err := s.claimRepo.List(repository.ClaimFilter{
		EmployeeID:    &employeeID,
		SubmittedFrom: &from,
		SubmittedTo:   &to,
	})
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to list claims: %w", err)
	}

	total := decimal.Zero
	for _, claim := range claims {
		total = total.Add(claim.TimeSpentHours)
	}

	return claims, total, nil
}

func (s *ClaimService) findClaim(claimID uint64) (*models.TaskClaim, error) {
	claim, err := s.claimRepo.FindByID(claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to find claim: %w", err)
	}
	return claim, nil
}
