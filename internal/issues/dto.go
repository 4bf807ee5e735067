package issues

import (
	"time"

	"github.com/pitlanehq/garage-backend/pkg/db/models"
)

// IssueView is the transport shape for an issue report.
type IssueView struct {
	ID                int64      `json:"id"`
	TeamCarID         int64      `json:"teamCarId"`
	CarNumber         string     `json:"carNumber,omitempty"`
	CarSessionID      *int64     `json:"carSessionId,omitempty"`
	ReportedByUserID  int64      `json:"reportedByUserId"`
	ReportedByName    string     `json:"reportedByName,omitempty"`
	LinkedWorkOrderID *int64     `json:"linkedWorkOrderId,omitempty"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Severity          string     `json:"severity"`
	Status            string     `json:"status"`
	ReportedAt        time.Time  `json:"reportedAt"`
	ClosedAt          *time.Time `json:"closedAt,omitempty"`
}

// CreateIssueInput holds the validated payload to report an issue.
type CreateIssueInput struct {
	TeamCarID         int64
	CarSessionID      *int64
	LinkedWorkOrderID *int64
	Title             string
	Description       string
	Severity          string
}

// UpdateIssueInput holds optional mutation values for an issue.
type UpdateIssueInput struct {
	Title             *string
	Description       *string
	Severity          *string
	Status            *string
	LinkedWorkOrderID *int64
}

// IssueFilter narrows issue listings.
type IssueFilter struct {
	TeamCarID int64
	Status    string
	Severity  string
}

func issueView(issue *models.IssueReport) *IssueView {
	view := &IssueView{
		ID:                issue.ID,
		TeamCarID:         issue.TeamCarID,
		CarSessionID:      issue.CarSessionID,
		ReportedByUserID:  issue.ReportedByUserID,
		LinkedWorkOrderID: issue.LinkedWorkOrderID,
		Title:             issue.Title,
		Description:       issue.Description,
		Severity:          issue.Severity,
		Status:            issue.Status,
		ReportedAt:        issue.ReportedAt,
		ClosedAt:          issue.ClosedAt,
	}
	if issue.TeamCar != nil {
		view.CarNumber = issue.TeamCar.CarNumber
	}
	if issue.ReportedByUser != nil {
		view.ReportedByName = issue.ReportedByUser.Name
	}
	return view
}
