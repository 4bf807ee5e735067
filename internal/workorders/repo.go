package workorders

import (
	"context"

	"github.com/pitlanehq/garage-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes work order persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a work orders repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns work orders matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter WorkOrderFilter) ([]models.WorkOrder, error) {
	query := r.db.WithContext(ctx).
		Preload("TeamCar").
		Preload("CreatedByUser").
		Preload("AssignedToUser").
		Order("created_at DESC, id DESC")
	if filter.TeamCarID > 0 {
		query = query.Where("team_car_id = ?", filter.TeamCarID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	var rows []models.WorkOrder
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads one work order with display joins.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.WorkOrder, error) {
	var order models.WorkOrder
	if err := r.db.WithContext(ctx).
		Preload("TeamCar").
		Preload("CreatedByUser").
		Preload("AssignedToUser").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Create inserts a new work order row.
func (r *Repository) Create(ctx context.Context, order *models.WorkOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Save persists all fields of an existing work order row.
func (r *Repository) Save(ctx context.Context, order *models.WorkOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// Delete removes the work order row and reports whether it existed.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.WorkOrder{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// TeamCarExists reports whether the car row is present.
func (r *Repository) TeamCarExists(ctx context.Context, id int64) (bool, error) {
	return r.rowExists(ctx, &models.TeamCar{}, id)
}

// UserExists reports whether the user row is present.
func (r *Repository) UserExists(ctx context.Context, id int64) (bool, error) {
	return r.rowExists(ctx, &models.User{}, id)
}

// CarSessionExists reports whether the session row is present.
func (r *Repository) CarSessionExists(ctx context.Context, id int64) (bool, error) {
	return r.rowExists(ctx, &models.CarSession{}, id)
}

// WorkOrderExists reports whether the work order row is present.
func (r *Repository) WorkOrderExists(ctx context.Context, id int64) (bool, error) {
	return r.rowExists(ctx, &models.WorkOrder{}, id)
}

// TaskExists reports whether the task row is present.
func (r *Repository) TaskExists(ctx context.Context, id int64) (bool, error) {
	return r.rowExists(ctx, &models.WorkOrderTask{}, id)
}

func (r *Repository) rowExists(ctx context.Context, model any, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListTasks returns tasks, optionally scoped to a work order, in sort order.
func (r *Repository) ListTasks(ctx context.Context, workOrderID int64) ([]models.WorkOrderTask, error) {
	query := r.db.WithContext(ctx).Order("sort_order ASC, id ASC")
	if workOrderID > 0 {
		query = query.Where("work_order_id = ?", workOrderID)
	}
	var rows []models.WorkOrderTask
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindTaskByID loads one task.
func (r *Repository) FindTaskByID(ctx context.Context, id int64) (*models.WorkOrderTask, error) {
	var task models.WorkOrderTask
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask inserts a new task row.
func (r *Repository) CreateTask(ctx context.Context, task *models.WorkOrderTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// SaveTask persists all fields of an existing task row.
func (r *Repository) SaveTask(ctx context.Context, task *models.WorkOrderTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// DeleteTask removes the task row and reports whether it existed.
func (r *Repository) DeleteTask(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.WorkOrderTask{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListLaborLogs returns labor logs, optionally scoped to a task, newest first.
func (r *Repository) ListLaborLogs(ctx context.Context, taskID int64) ([]models.LaborLog, error) {
	query := r.db.WithContext(ctx).
		Preload("MechanicUser").
		Order("log_date DESC, id DESC")
	if taskID > 0 {
		query = query.Where("work_order_task_id = ?", taskID)
	}
	var rows []models.LaborLog
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// LaborLogsForWorkOrder returns all labor across the work order's tasks.
func (r *Repository) LaborLogsForWorkOrder(ctx context.Context, workOrderID int64) ([]models.LaborLog, error) {
	var rows []models.LaborLog
	if err := r.db.WithContext(ctx).
		Preload("MechanicUser").
		Joins("JOIN work_order_tasks ON work_order_tasks.id = labor_logs.work_order_task_id").
		Where("work_order_tasks.work_order_id = ?", workOrderID).
		Order("labor_logs.log_date DESC, labor_logs.id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindLaborLogByID loads one labor log with the mechanic joined.
func (r *Repository) FindLaborLogByID(ctx context.Context, id int64) (*models.LaborLog, error) {
	var log models.LaborLog
	if err := r.db.WithContext(ctx).
		Preload("MechanicUser").
		First(&log, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// CreateLaborLog inserts a new labor log row.
func (r *Repository) CreateLaborLog(ctx context.Context, log *models.LaborLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// SaveLaborLog persists all fields of an existing labor log row.
func (r *Repository) SaveLaborLog(ctx context.Context, log *models.LaborLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

// DeleteLaborLog removes the labor log row and reports whether it existed.
func (r *Repository) DeleteLaborLog(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.LaborLog{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// InstallationsForWorkOrder returns installations with parts for costing.
func (r *Repository) InstallationsForWorkOrder(ctx context.Context, workOrderID int64) ([]models.PartInstallation, error) {
	var rows []models.PartInstallation
	if err := r.db.WithContext(ctx).
		Preload("Part").
		Where("work_order_id = ?", workOrderID).
		Order("installed_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
