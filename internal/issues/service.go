package issues

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pitlanehq/garage-backend/pkg/db/models"
	pkgerrors "github.com/pitlanehq/garage-backend/pkg/errors"
	"gorm.io/gorm"
)

// Statuses are free text, but these values close an issue and stamp the
// closed timestamp.
var closingStatuses = map[string]bool{
	"closed":    true,
	"done":      true,
	"completed": true,
	"resolved":  true,
}

// Service exposes issue report operations.
type Service interface {
	List(ctx context.Context, filter IssueFilter) ([]IssueView, error)
	Get(ctx context.Context, id int64) (*IssueView, error)
	Create(ctx context.Context, actorID int64, input CreateIssueInput) (*IssueView, error)
	Update(ctx context.Context, id int64, input UpdateIssueInput) (*IssueView, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo *Repository
}

// NewService constructs an issues service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("issues repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filter IssueFilter) ([]IssueView, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list issues")
	}
	views := make([]IssueView, 0, len(rows))
	for i := range rows {
		views = append(views, *issueView(&rows[i]))
	}
	return views, nil
}

func (s *service) Get(ctx context.Context, id int64) (*IssueView, error) {
	issue, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return issueView(issue), nil
}

func (s *service) Create(ctx context.Context, actorID int64, input CreateIssueInput) (*IssueView, error) {
	if actorID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity required")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if err := s.checkReference(ctx, s.repo.TeamCarExists, input.TeamCarID, "team car"); err != nil {
		return nil, err
	}
	if input.CarSessionID != nil {
		if err := s.checkReference(ctx, s.repo.CarSessionExists, *input.CarSessionID, "session"); err != nil {
			return nil, err
		}
	}
	if input.LinkedWorkOrderID != nil {
		if err := s.checkReference(ctx, s.repo.WorkOrderExists, *input.LinkedWorkOrderID, "work order"); err != nil {
			return nil, err
		}
	}

	severity := strings.TrimSpace(input.Severity)
	if severity == "" {
		severity = "Medium"
	}

	issue := &models.IssueReport{
		TeamCarID:         input.TeamCarID,
		CarSessionID:      input.CarSessionID,
		ReportedByUserID:  actorID,
		LinkedWorkOrderID: input.LinkedWorkOrderID,
		Title:             title,
		Description:       input.Description,
		Severity:          severity,
		Status:            "Open",
	}
	if err := s.repo.Create(ctx, issue); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create issue")
	}
	return s.Get(ctx, issue.ID)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateIssueInput) (*IssueView, error) {
	issue, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		issue.Title = title
	}
	if input.Description != nil {
		issue.Description = *input.Description
	}
	if input.Severity != nil {
		issue.Severity = *input.Severity
	}
	if input.LinkedWorkOrderID != nil {
		if err := s.checkReference(ctx, s.repo.WorkOrderExists, *input.LinkedWorkOrderID, "work order"); err != nil {
			return nil, err
		}
		issue.LinkedWorkOrderID = input.LinkedWorkOrderID
	}
	if input.Status != nil {
		issue.Status = *input.Status
		if closingStatuses[strings.ToLower(*input.Status)] {
			if issue.ClosedAt == nil {
				now := time.Now().UTC()
				issue.ClosedAt = &now
			}
		} else {
			issue.ClosedAt = nil
		}
	}

	issue.TeamCar = nil
	issue.CarSession = nil
	issue.ReportedByUser = nil
	issue.LinkedWorkOrder = nil
	if err := s.repo.Save(ctx, issue); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update issue")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "issue id must be positive")
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete issue")
	}
	if !found {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "issue %d not found", id)
	}
	return nil
}

func (s *service) load(ctx context.Context, id int64) (*models.IssueReport, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "issue id must be positive")
	}
	issue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "issue %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load issue")
	}
	return issue, nil
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
