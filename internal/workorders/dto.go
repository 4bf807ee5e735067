package workorders

import (
	"time"

	"github.com/pitlanehq/garage-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// WorkOrderView is the transport shape for a work order.
type WorkOrderView struct {
	ID               int64      `json:"id"`
	TeamCarID        int64      `json:"teamCarId"`
	CarNumber        string     `json:"carNumber,omitempty"`
	CreatedByUserID  int64      `json:"createdByUserId"`
	CreatedByName    string     `json:"createdByName,omitempty"`
	AssignedToUserID *int64     `json:"assignedToUserId,omitempty"`
	AssignedToName   string     `json:"assignedToName,omitempty"`
	CarSessionID     *int64     `json:"carSessionId,omitempty"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Priority         string     `json:"priority"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
	ClosedAt         *time.Time `json:"closedAt,omitempty"`
}

// CreateWorkOrderInput holds the validated payload to open a work order.
type CreateWorkOrderInput struct {
	TeamCarID        int64
	AssignedToUserID *int64
	CarSessionID     *int64
	Title            string
	Description      string
	Priority         string
	Status           string
	DueDate          *time.Time
}

// UpdateWorkOrderInput holds optional mutation values for a work order.
type UpdateWorkOrderInput struct {
	AssignedToUserID *int64
	Title            *string
	Description      *string
	Priority         *string
	Status           *string
	DueDate          *time.Time
}

// WorkOrderFilter narrows work order listings. Zero values mean "no filter".
type WorkOrderFilter struct {
	TeamCarID int64
	Status    string
	Priority  string
}

// TaskView is the transport shape for a work order line item.
type TaskView struct {
	ID               int64      `json:"id"`
	WorkOrderID      int64      `json:"workOrderId"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Status           string     `json:"status"`
	SortOrder        int        `json:"sortOrder"`
	EstimatedMinutes *int       `json:"estimatedMinutes,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

// CreateTaskInput holds the validated payload to add a task.
type CreateTaskInput struct {
	WorkOrderID      int64
	Title            string
	Description      string
	Status           string
	SortOrder        int
	EstimatedMinutes *int
}

// UpdateTaskInput holds optional mutation values for a task.
type UpdateTaskInput struct {
	Title            *string
	Description      *string
	Status           *string
	SortOrder        *int
	EstimatedMinutes *int
}

// LaborLogView is the transport shape for logged mechanic time.
type LaborLogView struct {
	ID              int64     `json:"id"`
	WorkOrderTaskID int64     `json:"workOrderTaskId"`
	MechanicUserID  int64     `json:"mechanicUserId"`
	MechanicName    string    `json:"mechanicName,omitempty"`
	Minutes         int       `json:"minutes"`
	LogDate         time.Time `json:"logDate"`
	Comment         string    `json:"comment"`
}

// CreateLaborLogInput holds the validated payload to log time. MechanicUserID
// defaults to the acting user when omitted.
type CreateLaborLogInput struct {
	WorkOrderTaskID int64
	MechanicUserID  *int64
	Minutes         int
	LogDate         time.Time
	Comment         string
}

// UpdateLaborLogInput holds optional mutation values for a labor log.
type UpdateLaborLogInput struct {
	Minutes *int
	LogDate *time.Time
	Comment *string
}

// TaskDetail pairs a task with its labor logs for the details view.
type TaskDetail struct {
	TaskView
	LaborLogs []LaborLogView `json:"laborLogs"`
}

// InstallationLine is one consumed part with its cost extension.
type InstallationLine struct {
	ID          int64           `json:"id"`
	PartID      int64           `json:"partId"`
	PartSKU     string          `json:"partSku"`
	PartName    string          `json:"partName"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	InstalledAt time.Time       `json:"installedAt"`
}

// WorkOrderDetailsView is the full aggregation served by the details endpoint.
type WorkOrderDetailsView struct {
	WorkOrder         WorkOrderView      `json:"workOrder"`
	Tasks             []TaskDetail       `json:"tasks"`
	Installations     []InstallationLine `json:"installations"`
	TotalLaborMinutes int                `json:"totalLaborMinutes"`
	TotalPartsCost    decimal.Decimal    `json:"totalPartsCost"`
}

func workOrderView(order *models.WorkOrder) *WorkOrderView {
	view := &WorkOrderView{
		ID:               order.ID,
		TeamCarID:        order.TeamCarID,
		CreatedByUserID:  order.CreatedByUserID,
		AssignedToUserID: order.AssignedToUserID,
		CarSessionID:     order.CarSessionID,
		Title:            order.Title,
		Description:      order.Description,
		Priority:         order.Priority,
		Status:           order.Status,
		CreatedAt:        order.CreatedAt,
		DueDate:          order.DueDate,
		ClosedAt:         order.ClosedAt,
	}
	if order.TeamCar != nil {
		view.CarNumber = order.TeamCar.CarNumber
	}
	if order.CreatedByUser != nil {
		view.CreatedByName = order.CreatedByUser.Name
	}
	if order.AssignedToUser != nil {
		view.AssignedToName = order.AssignedToUser.Name
	}
	return view
}

func taskView(task *models.WorkOrderTask) *TaskView {
	return &TaskView{
		ID:               task.ID,
		WorkOrderID:      task.WorkOrderID,
		Title:            task.Title,
		Description:      task.Description,
		Status:           task.Status,
		SortOrder:        task.SortOrder,
		EstimatedMinutes: task.EstimatedMinutes,
		CompletedAt:      task.CompletedAt,
	}
}

func laborLogView(log *models.LaborLog) *LaborLogView {
	view := &LaborLogView{
		ID:              log.ID,
		WorkOrderTaskID: log.WorkOrderTaskID,
		MechanicUserID:  log.MechanicUserID,
		Minutes:         log.Minutes,
		LogDate:         log.LogDate,
		Comment:         log.Comment,
	}
	if log.MechanicUser != nil {
		view.MechanicName = log.MechanicUser.Name
	}
	return view
}
