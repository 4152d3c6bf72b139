package repository

import (
	"github.com/worksys/workforce-api/internal/database"
	"github.com/worksys/workforce-api/internal/models"
	"github.com/worksys/workforce-api/internal/utils"
	"gorm.io/gorm"
)

// GormClaimRepository is a GORM implementation of ClaimRepository
type GormClaimRepository struct {
	db *gorm.DB
}

// NewClaimRepository creates a new ClaimRepository
func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &GormClaimRepository{db: db}
}

// Create creates a new claim
func (r *GormClaimRepository) Create(claim *models.TaskClaim) error {
	return r.db.Create(claim).Error
}

// FindByID finds a claim by ID with optional preloading
func (r *GormClaimRepository) FindByID(id uint64, preload ...string) (*models.TaskClaim, error) {
	var claim models.TaskClaim
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&claim, id).Error; err != nil {
		return nil, err
	}

	return &claim, nil
}

// List retrieves claims matching the filter, newest first
func (r *GormClaimRepository) List(filter ClaimFilter) ([]models.TaskClaim, int64, error) {
	var claims []models.TaskClaim

	query := r.db.Model(&models.TaskClaim{})

	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SubmittedFrom != nil {
		query = query.Where("submitted_at >= ?", *filter.SubmittedFrom)
	}
	if filter.SubmittedTo != nil {
		query = query.Where("submitted_at < ?", *filter.SubmittedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("submitted_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Preload("Employee").Find(&claims).Error; err != nil {
		return nil, 0, err
	}

	return claims, total, nil
}

// Update updates a claim
func (r *GormClaimRepository) Update(claim *models.TaskClaim) error {
	return r.db.Save(claim).Error
}
