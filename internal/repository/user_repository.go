package repository

import (
	"github.com/worksys/workforce-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// ListEmployees lists all employees ordered by username
func (r *GormUserRepository) ListEmployees() ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("role = ?", models.RoleEmployee).
		Order("username ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteEmployeeCascade deletes the employee's claims and accounts, then the
// user row, atomically. Rows are removed for real: a soft delete would keep
// the username and (platform, task_external_id) unique keys occupied.
func (r *GormUserRepository) DeleteEmployeeCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("employee_id = ?", id).Delete(&models.TaskClaim{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("employee_id = ?", id).Delete(&models.WorkAccount{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&models.User{}, id).Error
	})
}
