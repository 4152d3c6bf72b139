package repository

import (
	"time"

	"github.com/worksys/workforce-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// ListEmployees lists all users with the employee role, ordered by username
	ListEmployees() ([]models.User, error)

	// DeleteEmployeeCascade deletes an employee along with their claims and
	// accounts within a single transaction
	DeleteEmployeeCascade(id uint64) error
}

// AccountFilter holds filtering options for listing work accounts
type AccountFilter struct {
	EmployeeID       *uint64
	Status           *models.AccountStatus
	RecentlyUnpaused *bool
}

// AccountRepository defines the interface for work account data access
type AccountRepository interface {
	// Create creates a new work account
	Create(account *models.WorkAccount) error

	// FindByID finds an account by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.WorkAccount, error)

	// FindByIDForEmployee finds an account only if it is owned by the given
	// employee
	FindByIDForEmployee(id, employeeID uint64) (*models.WorkAccount, error)

	// List retrieves accounts matching the filter, newest assignment first
	List(filter AccountFilter) ([]models.WorkAccount, error)

	// Update updates an account
	Update(account *models.WorkAccount) error

	// Delete hard-deletes an account
	Delete(id uint64) error

	// UnassignAllOwned clears the owner and resets status to Assigned on every
	// currently-owned account except Left ones, returning the number of rows
	// touched
	UnassignAllOwned() (int64, error)

	// ListUnpaidCompleted lists Left accounts with final earnings recorded that
	// have not been paid out yet, employee preloaded
	ListUnpaidCompleted() ([]models.WorkAccount, error)

	// MarkPaidForEmployee flips is_paid and stamps paid_at on all unpaid
	// completed accounts of one employee, returning the number of rows touched
	MarkPaidForEmployee(employeeID uint64, paidAt time.Time) (int64, error)
}

// ClaimFilter holds filtering options for listing task claims
type ClaimFilter struct {
	EmployeeID    *uint64
	Status        *models.ClaimStatus
	SubmittedFrom *time.Time
	SubmittedTo   *time.Time
	Page          int
	PageSize      int
}

// ClaimRepository defines the interface for task claim data access
type ClaimRepository interface {
	// Create creates a new claim
	Create(claim *models.TaskClaim) error

	// FindByID finds a claim by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.TaskClaim, error)

	// List retrieves claims matching the filter, newest first
	List(filter ClaimFilter) ([]models.TaskClaim, int64, error)

	// Update updates a claim
	Update(claim *models.TaskClaim) error
}
