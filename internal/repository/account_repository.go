package repository

import (
	"time"

	"github.com/worksys/workforce-api/internal/models"
	"gorm.io/gorm"
)

// GormAccountRepository is a GORM implementation of AccountRepository
type GormAccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &GormAccountRepository{db: db}
}

// Create creates a new work account
func (r *GormAccountRepository) Create(account *models.WorkAccount) error {
	return r.db.Create(account).Error
}

// FindByID finds an account by ID with optional preloading
func (r *GormAccountRepository) FindByID(id uint64, preload ...string) (*models.WorkAccount, error) {
	var account models.WorkAccount
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&account, id).Error; err != nil {
		return nil, err
	}

	return &account, nil
}

// FindByIDForEmployee finds an account scoped to its owner, so an employee
// cannot reach another employee's account
func (r *GormAccountRepository) FindByIDForEmployee(id, employeeID uint64) (*models.WorkAccount, error) {
	var account models.WorkAccount
	if err := r.db.Where("id = ? AND employee_id = ?", id, employeeID).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// List retrieves accounts matching the filter, newest assignment first
func (r *GormAccountRepository) List(filter AccountFilter) ([]models.WorkAccount, error) {
	var accounts []models.WorkAccount

	query := r.db.Model(&models.WorkAccount{}).Preload("Employee")

	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.RecentlyUnpaused != nil {
		query = query.Where("recently_unpaused = ?", *filter.RecentlyUnpaused)
	}

	if err := query.Order("assigned_at DESC").Find(&accounts).Error; err != nil {
		return nil, err
	}

	return accounts, nil
}

// Update updates an account
func (r *GormAccountRepository) Update(account *models.WorkAccount) error {
	return r.db.Save(account).Error
}

// Delete hard-deletes an account
func (r *GormAccountRepository) Delete(id uint64) error {
	return r.db.Unscoped().Delete(&models.WorkAccount{}, id).Error
}

// UnassignAllOwned clears the owner on every owned account and resets its
// status, returning the number of rows touched. Left accounts are closed
// history and keep their owner for payroll attribution.
func (r *GormAccountRepository) UnassignAllOwned() (int64, error) {
	result := r.db.Model(&models.WorkAccount{}).
		Where("employee_id IS NOT NULL AND status <> ?", models.AccountStatusLeft).
		Updates(map[string]interface{}{
			"employee_id":       nil,
			"status":            models.AccountStatusAssigned,
			"recently_unpaused": false,
		})
	return result.RowsAffected, result.Error
}

// ListUnpaidCompleted lists Left accounts with final earnings that have not
// been paid out, newest completion first
func (r *GormAccountRepository) ListUnpaidCompleted() ([]models.WorkAccount, error) {
	var accounts []models.WorkAccount
	if err := r.db.Preload("Employee").
		Where("status = ? AND final_earnings IS NOT NULL AND is_paid = ?", models.AccountStatusLeft, false).
		Order("final_earnings_date DESC").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// MarkPaidForEmployee flips is_paid on all unpaid completed accounts of one
// employee. Touching zero rows is not an error, so the operation stays
// idempotent when nothing new has been completed.
func (r *GormAccountRepository) MarkPaidForEmployee(employeeID uint64, paidAt time.Time) (int64, error) {
	result := r.db.Model(&models.WorkAccount{}).
		Where("employee_id = ? AND status = ? AND final_earnings IS NOT NULL AND is_paid = ?",
			employeeID, models.AccountStatusLeft, false).
		Updates(map[string]interface{}{
			"is_paid": true,
			"paid_at": paidAt,
		})
	return result.RowsAffected, result.Error
}
