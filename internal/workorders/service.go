package workorders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pitlanehq/garage-backend/pkg/db/models"
	pkgerrors "github.com/pitlanehq/garage-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Statuses are free text, but these values close a work order or task and
// stamp the matching timestamp.
var closingStatuses = map[string]bool{
	"closed":    true,
	"done":      true,
	"completed": true,
}

// Service exposes work order, task, and labor log operations.
type Service interface {
	List(ctx context.Context, filter WorkOrderFilter) ([]WorkOrderView, error)
	Get(ctx context.Context, id int64) (*WorkOrderView, error)
	Create(ctx context.Context, actorID int64, input CreateWorkOrderInput) (*WorkOrderView, error)
	Update(ctx context.Context, id int64, input UpdateWorkOrderInput) (*WorkOrderView, error)
	Delete(ctx context.Context, id int64) error
	Details(ctx context.Context, id int64) (*WorkOrderDetailsView, error)

	ListTasks(ctx context.Context, workOrderID int64) ([]TaskView, error)
	GetTask(ctx context.Context, id int64) (*TaskView, error)
	CreateTask(ctx context.Context, input CreateTaskInput) (*TaskView, error)
	UpdateTask(ctx context.Context, id int64, input UpdateTaskInput) (*TaskView, error)
	DeleteTask(ctx context.Context, id int64) error

	ListLaborLogs(ctx context.Context, taskID int64) ([]LaborLogView, error)
	GetLaborLog(ctx context.Context, id int64) (*LaborLogView, error)
	CreateLaborLog(ctx context.Context, actorID int64, input CreateLaborLogInput) (*LaborLogView, error)
	UpdateLaborLog(ctx context.Context, actorID int64, isManager bool, id int64, input UpdateLaborLogInput) (*LaborLogView, error)
	DeleteLaborLog(ctx context.Context, actorID int64, isManager bool, id int64) error
}

type service struct {
	repo *Repository
}

// NewService constructs a work orders service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("work orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filter WorkOrderFilter) ([]WorkOrderView, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list work orders")
	}
	views := make([]WorkOrderView, 0, len(rows))
	for i := range rows {
		views = append(views, *workOrderView(&rows[i]))
	}
	return views, nil
}

func (s *service) Get(ctx context.Context, id int64) (*WorkOrderView, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return workOrderView(order), nil
}

func (s *service) Create(ctx context.Context, actorID int64, input CreateWorkOrderInput) (*WorkOrderView, error) {
	if actorID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity required")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.TeamCarID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team car id must be positive")
	}
	if err := s.checkReference(ctx, s.repo.TeamCarExists, input.TeamCarID, "team car"); err != nil {
		return nil, err
	}
	if input.AssignedToUserID != nil {
		if err := s.checkReference(ctx, s.repo.UserExists, *input.AssignedToUserID, "user"); err != nil {
			return nil, err
		}
	}
	if input.CarSessionID != nil {
		if err := s.checkReference(ctx, s.repo.CarSessionExists, *input.CarSessionID, "session"); err != nil {
			return nil, err
		}
	}

	priority := strings.TrimSpace(input.Priority)
	if priority == "" {
		priority = "Medium"
	}
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = "Open"
	}

	order := &models.WorkOrder{
		TeamCarID:        input.TeamCarID,
		CreatedByUserID:  actorID,
		AssignedToUserID: input.AssignedToUserID,
		CarSessionID:     input.CarSessionID,
		Title:            title,
		Description:      input.Description,
		Priority:         priority,
		Status:           status,
		DueDate:          input.DueDate,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create work order")
	}
	return s.Get(ctx, order.ID)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateWorkOrderInput) (*WorkOrderView, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.AssignedToUserID != nil {
		if err := s.checkReference(ctx, s.repo.UserExists, *input.AssignedToUserID, "user"); err != nil {
			return nil, err
		}
		order.AssignedToUserID = input.AssignedToUserID
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		order.Title = title
	}
	if input.Description != nil {
		order.Description = *input.Description
	}
	if input.Priority != nil {
		order.Priority = *input.Priority
	}
	if input.Status != nil {
		order.Status = *input.Status
		if closingStatuses[strings.ToLower(*input.Status)] {
			if order.ClosedAt == nil {
				now := time.Now().UTC()
				order.ClosedAt = &now
			}
		} else {
			order.ClosedAt = nil
		}
	}
	if input.DueDate != nil {
		order.DueDate = input.DueDate
	}

	order.TeamCar = nil
	order.CreatedByUser = nil
	order.AssignedToUser = nil
	if err := s.repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update work order")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "work order id must be positive")
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete work order")
	}
	if !found {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "work order %d not found", id)
	}
	return nil
}

func (s *service) Details(ctx context.Context, id int64) (*WorkOrderDetailsView, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListTasks(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tasks")
	}
	labor, err := s.repo.LaborLogsForWorkOrder(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list labor")
	}
	installations, err := s.repo.InstallationsForWorkOrder(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list installations")
	}

	laborByTask := map[int64][]LaborLogView{}
	totalMinutes := 0
	for i := range labor {
		view := laborLogView(&labor[i])
		laborByTask[view.WorkOrderTaskID] = append(laborByTask[view.WorkOrderTaskID], *view)
		totalMinutes += view.Minutes
	}

	details := &WorkOrderDetailsView{
		WorkOrder:         *workOrderView(order),
		Tasks:             make([]TaskDetail, 0, len(tasks)),
		Installations:     make([]InstallationLine, 0, len(installations)),
		TotalLaborMinutes: totalMinutes,
		TotalPartsCost:    decimal.Zero,
	}
	for i := range tasks {
		detail := TaskDetail{TaskView: *taskView(&tasks[i])}
		if logs, ok := laborByTask[tasks[i].ID]; ok {
			detail.LaborLogs = logs
		} else {
			detail.LaborLogs = []LaborLogView{}
		}
		details.Tasks = append(details.Tasks, detail)
	}
	for i := range installations {
		line := InstallationLine{
			ID:          installations[i].ID,
			PartID:      installations[i].PartID,
			Quantity:    installations[i].Quantity,
			InstalledAt: installations[i].InstalledAt,
		}
		if part := installations[i].Part; part != nil {
			line.PartSKU = part.SKU
			line.PartName = part.Name
			line.UnitCost = part.UnitCost
		}
		line.LineTotal = line.UnitCost.Mul(decimal.NewFromInt(int64(line.Quantity)))
		details.TotalPartsCost = details.TotalPartsCost.Add(line.LineTotal)
		details.Installations = append(details.Installations, line)
	}
	return details, nil
}

func (s *service) ListTasks(ctx context.Context, workOrderID int64) ([]TaskView, error) {
	rows, err := s.repo.ListTasks(ctx, workOrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tasks")
	}
	views := make([]TaskView, 0, len(rows))
	for i := range rows {
		views = append(views, *taskView(&rows[i]))
	}
	return views, nil
}

func (s *service) GetTask(ctx context.Context, id int64) (*TaskView, error) {
	task, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return taskView(task), nil
}

func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*TaskView, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.WorkOrderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "work order id must be positive")
	}
	if err := s.checkReference(ctx, s.repo.WorkOrderExists, input.WorkOrderID, "work order"); err != nil {
		return nil, err
	}
	if input.EstimatedMinutes != nil && *input.EstimatedMinutes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimated minutes must be positive")
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = "Todo"
	}

	task := &models.WorkOrderTask{
		WorkOrderID:      input.WorkOrderID,
		Title:            title,
		Description:      input.Description,
		Status:           status,
		SortOrder:        input.SortOrder,
		EstimatedMinutes: input.EstimatedMinutes,
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create task")
	}
	return taskView(task), nil
}

func (s *service) UpdateTask(ctx context.Context, id int64, input UpdateTaskInput) (*TaskView, error) {
	task, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
		if closingStatuses[strings.ToLower(*input.Status)] {
			if task.CompletedAt == nil {
				now := time.Now().UTC()
				task.CompletedAt = &now
			}
		} else {
			task.CompletedAt = nil
		}
	}
	if input.SortOrder != nil {
		task.SortOrder = *input.SortOrder
	}
	if input.EstimatedMinutes != nil {
		if *input.EstimatedMinutes <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimated minutes must be positive")
		}
		task.EstimatedMinutes = input.EstimatedMinutes
	}

	task.WorkOrder = nil
	if err := s.repo.SaveTask(ctx, task); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update task")
	}
	return taskView(task), nil
}

func (s *service) DeleteTask(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "task id must be positive")
	}
	found, err := s.repo.DeleteTask(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete task")
	}
	if !found {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "task %d not found", id)
	}
	return nil
}

func (s *service) ListLaborLogs(ctx context.Context, taskID int64) ([]LaborLogView, error) {
	rows, err := s.repo.ListLaborLogs(ctx, taskID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list labor logs")
	}
	views := make([]LaborLogView, 0, len(rows))
	for i := range rows {
		views = append(views, *laborLogView(&rows[i]))
	}
	return views, nil
}

func (s *service) GetLaborLog(ctx context.Context, id int64) (*LaborLogView, error) {
	log, err := s.loadLaborLog(ctx, id)
	if err != nil {
		return nil, err
	}
	return laborLogView(log), nil
}

func (s *service) CreateLaborLog(ctx context.Context, actorID int64, input CreateLaborLogInput) (*LaborLogView, error) {
	if actorID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity required")
	}
	if input.WorkOrderTaskID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task id must be positive")
	}
	if input.Minutes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minutes must be positive")
	}
	if input.LogDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "log date is required")
	}
	if err := s.checkReference(ctx, s.repo.TaskExists, input.WorkOrderTaskID, "task"); err != nil {
		return nil, err
	}

	mechanicID := actorID
	if input.MechanicUserID != nil {
		if err := s.checkReference(ctx, s.repo.UserExists, *input.MechanicUserID, "mechanic"); err != nil {
			return nil, err
		}
		mechanicID = *input.MechanicUserID
	}

	log := &models.LaborLog{
		WorkOrderTaskID: input.WorkOrderTaskID,
		MechanicUserID:  mechanicID,
		Minutes:         input.Minutes,
		LogDate:         input.LogDate,
		Comment:         input.Comment,
	}
	if err := s.repo.CreateLaborLog(ctx, log); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create labor log")
	}
	return s.GetLaborLog(ctx, log.ID)
}

func (s *service) UpdateLaborLog(ctx context.Context, actorID int64, isManager bool, id int64, input UpdateLaborLogInput) (*LaborLogView, error) {
	log, err := s.loadLaborLog(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLaborEdit(log, actorID, isManager); err != nil {
		return nil, err
	}

	if input.Minutes != nil {
		if *input.Minutes <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "minutes must be positive")
		}
		log.Minutes = *input.Minutes
	}
	if input.LogDate != nil {
		if input.LogDate.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "log date cannot be empty")
		}
		log.LogDate = *input.LogDate
	}
	if input.Comment != nil {
		log.Comment = *input.Comment
	}

	log.WorkOrderTask = nil
	log.MechanicUser = nil
	if err := s.repo.SaveLaborLog(ctx, log); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update labor log")
	}
	return s.GetLaborLog(ctx, id)
}

func (s *service) DeleteLaborLog(ctx context.Context, actorID int64, isManager bool, id int64) error {
	log, err := s.loadLaborLog(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeLaborEdit(log, actorID, isManager); err != nil {
		return err
	}
	if _, err := s.repo.DeleteLaborLog(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete labor log")
	}
	return nil
}

// authorizeLaborEdit lets managers touch any log; everyone else only their own.
func (s *service) authorizeLaborEdit(log *models.LaborLog, actorID int64, isManager bool) error {
	if isManager {
		return nil
	}
	if log.MechanicUserID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "labor logs can only be edited by their owner")
	}
	return nil
}

func (s *service) loadOrder(ctx context.Context, id int64) (*models.WorkOrder, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "work order id must be positive")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "work order %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load work order")
	}
	return order, nil
}

func (s *service) loadTask(ctx context.Context, id int64) (*models.WorkOrderTask, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task id must be positive")
	}
	task, err := s.repo.FindTaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "task %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load task")
	}
	return task, nil
}

func (s *service) loadLaborLog(ctx context.Context, id int64) (*models.LaborLog, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "labor log id must be positive")
	}
	log, err := s.repo.FindLaborLogByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "labor log %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load labor log")
	}
	return log, nil
}

func (s *service) checkReference(ctx context.Context, check func(context.Context, int64) (bool, error), id int64, label string) error {
	if id <= 0 {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "%s id must be positive", label)
	}
	exists, err := check(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load "+label)
	}
	if !exists {
		return pkgerrors.Newf(pkgerrors.CodeReferenceNotFound, "%s %d not found", label, id)
	}
	return nil
}
