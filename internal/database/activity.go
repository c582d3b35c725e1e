package database

import (
	"nexus-engine/internal/models"

	"gorm.io/gorm"
)

// ActivityRepo stores gateway calls and dashboard actions.
type ActivityRepo struct {
	db *gorm.DB
}

func NewActivityRepo(db *gorm.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Record(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

// Recent returns the newest entries first. A non-empty campaignID filters by campaign.
func (r *ActivityRepo) Recent(campaignID string, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := r.db.Order("id DESC").Limit(limit)
	if campaignID != "" {
		q = q.Where("campaign_id = ?", campaignID)
	}

	logs := []models.ActivityLog{}
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Counts returns the number of successful entries per operation.
func (r *ActivityRepo) Counts(campaignID string) (map[string]int64, error) {
	var rows []struct {
		Operation string
		Total     int64
	}
	q := r.db.Model(&models.ActivityLog{}).
		Select("operation, count(*) as total").
		Where("success = ?", true).
		Group("operation")
	if campaignID != "" {
		q = q.Where("campaign_id = ?", campaignID)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Operation] = row.Total
	}
	return out, nil
}
