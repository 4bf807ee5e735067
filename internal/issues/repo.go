package issues

import (
	"context"

	"github.com/pitlanehq/garage-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wraps issue report persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository returns a repository bound to the given gorm handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, filter IssueFilter) ([]models.IssueReport, error) {
	query := r.db.WithContext(ctx).Model(&models.IssueReport{}).
		Preload("TeamCar").
		Preload("ReportedByUser").
		Order("reported_at DESC, id DESC")
	if filter.TeamCarID > 0 {
		query = query.Where("team_car_id = ?", filter.TeamCarID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}

	var rows []models.IssueReport
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.IssueReport, error) {
	var issue models.IssueReport
	err := r.db.WithContext(ctx).
		Preload("TeamCar").
		Preload("ReportedByUser").
		First(&issue, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *Repository) Create(ctx context.Context, issue *models.IssueReport) error {
	return r.db.WithContext(ctx).Create(issue).Error
}

func (r *Repository) Save(ctx context.Context, issue *models.IssueReport) error {
	return r.db.WithContext(ctx).Save(issue).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.IssueReport{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) TeamCarExists(ctx context.Context, id int64) (bool, error) {
	return r.rowExists(ctx, &models.TeamCar{}, id)
}

func (r *Repository) CarSessionExists(ctx context.Context, id int64) (bool, error) {
	return r.rowExists(ctx, &models.CarSession{}, id)
}

func (r *Repository) WorkOrderExists(ctx context.Context, id int64) (bool, error) {
	return r.rowExists(ctx, &models.WorkOrder{}, id)
}

func (r *Repository) rowExists(ctx context.Context, model any, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
