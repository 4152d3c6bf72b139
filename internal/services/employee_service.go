package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/worksys/workforce-api/internal/constants"
	"github.com/worksys/workforce-api/internal/models"
	"github.com/worksys/workforce-api/internal/repository"
	"github.com/worksys/workforce-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNotAnEmployee    = errors.New("user is not an employee")
)

// EmployeeService handles employee account management.
type EmployeeService struct {
	userRepo repository.UserRepository
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(userRepo repository.UserRepository) *EmployeeService {
	return &EmployeeService{
		userRepo: userRepo,
	}
}

// CreateEmployeeInput holds the fields for creating an employee. Password is
// optional; a random one is generated when absent.
type CreateEmployeeInput struct {
	Username string
	Password string
}

// CreateEmployee creates a user with the employee role. The returned string is
// the generated plaintext password to relay to the employee, empty when the
// manager supplied one.
func (s *EmployeeService) CreateEmployee(input CreateEmployeeInput) (*models.User, string, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, "", ErrUsernameRequired
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}

	password := input.Password
	generated := ""
	if password == "" {
		var err error
		password, err = utils.GeneratePassword(constants.GeneratedPasswordLength)
		if err != nil {
			return nil, "", fmt.Errorf("failed to generate password: %w", err)
		}
		generated = password
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", ErrFailedToHashPassword
	}

	employee := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleEmployee,
	}
	if err := s.userRepo.Create(employee); err != nil {
		// The unique index can still fire past the lookup above, e.g. on a
		// concurrent create or a lingering soft-deleted row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrUsernameTaken
		}
		return nil, "", fmt.Errorf("failed to create employee: %w", err)
	}

	return employee, generated, nil
}

// ListEmployees lists all employees.
func (s *EmployeeService) ListEmployees() ([]models.User, error) {
	employees, err := s.userRepo.ListEmployees()
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// DeleteEmployee removes an employee together with their claims and accounts.
func (s *EmployeeService) DeleteEmployee(id uint64) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to find employee: %w", err)
	}

	if user.Role != models.RoleEmployee {
		return ErrNotAnEmployee
	}

	if err := s.userRepo.DeleteEmployeeCascade(id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}
