package fleet

import (
	"context"

	"github.com/pitlanehq/garage-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes fleet persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a fleet repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCars returns all cars ordered by car number.
func (r *Repository) ListCars(ctx context.Context) ([]models.TeamCar, error) {
	var rows []models.TeamCar
	if err := r.db.WithContext(ctx).Order("car_number ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindCarByID loads one car.
func (r *Repository) FindCarByID(ctx context.Context, id int64) (*models.TeamCar, error) {
	var car models.TeamCar
	if err := r.db.WithContext(ctx).First(&car, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

// CreateCar inserts a new car row.
func (r *Repository) CreateCar(ctx context.Context, car *models.TeamCar) error {
	return r.db.WithContext(ctx).Create(car).Error
}

// SaveCar persists all fields of an existing car row.
func (r *Repository) SaveCar(ctx context.Context, car *models.TeamCar) error {
	return r.db.WithContext(ctx).Save(car).Error
}

// DeleteCar removes the car row and reports whether it existed.
func (r *Repository) DeleteCar(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.TeamCar{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListSessions returns outings, optionally scoped to a car, newest first.
func (r *Repository) ListSessions(ctx context.Context, teamCarID int64) ([]models.CarSession, error) {
	query := r.db.WithContext(ctx).
		Preload("TeamCar").
		Preload("DriverUser").
		Order("date DESC, id DESC")
	if teamCarID > 0 {
		query = query.Where("team_car_id = ?", teamCarID)
	}
	var rows []models.CarSession
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindSessionByID loads one outing with display joins.
func (r *Repository) FindSessionByID(ctx context.Context, id int64) (*models.CarSession, error) {
	var session models.CarSession
	if err := r.db.WithContext(ctx).
		Preload("TeamCar").
		Preload("DriverUser").
		First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// CreateSession inserts a new outing row.
func (r *Repository) CreateSession(ctx context.Context, session *models.CarSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// SaveSession persists all fields of an existing outing row.
func (r *Repository) SaveSession(ctx context.Context, session *models.CarSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// DeleteSession removes the outing row and reports whether it existed.
func (r *Repository) DeleteSession(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.CarSession{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// LatestSessionForCar returns the most recent outing, nil when none exists.
func (r *Repository) LatestSessionForCar(ctx context.Context, teamCarID int64) (*models.CarSession, error) {
	var session models.CarSession
	err := r.db.WithContext(ctx).
		Preload("DriverUser").
		Where("team_car_id = ?", teamCarID).
		Order("date DESC, id DESC").
		First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// OpenIssuesForCar returns unresolved issue reports, most severe work first
// is left to the caller; ordering here is newest first.
func (r *Repository) OpenIssuesForCar(ctx context.Context, teamCarID int64) ([]models.IssueReport, error) {
	var rows []models.IssueReport
	if err := r.db.WithContext(ctx).
		Where("team_car_id = ? AND closed_at IS NULL", teamCarID).
		Order("reported_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// OpenWorkOrdersForCar returns work orders that have not been closed yet.
func (r *Repository) OpenWorkOrdersForCar(ctx context.Context, teamCarID int64) ([]models.WorkOrder, error) {
	var rows []models.WorkOrder
	if err := r.db.WithContext(ctx).
		Where("team_car_id = ? AND closed_at IS NULL", teamCarID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UserExists reports whether a user row is present.
func (r *Repository) UserExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
