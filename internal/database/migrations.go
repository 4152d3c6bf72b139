package database

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Work account indexes for owner filtering and payroll aggregation
		{"work_accounts", "idx_work_accounts_employee_status", "employee_id, status"},
		{"work_accounts", "idx_work_accounts_status_paid", "status, is_paid"},
		{"work_accounts", "idx_work_accounts_assigned_at", "assigned_at"},

		// Task claim indexes for dashboard grouping and history lookups
		{"task_claims", "idx_task_claims_employee_status", "employee_id, status"},
		{"task_claims", "idx_task_claims_submitted_at", "submitted_at"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, idx.table, idx.name).Scan(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			log.Debugf("index %s already exists, skipping", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Infof("created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
