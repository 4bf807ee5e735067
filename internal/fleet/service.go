package fleet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pitlanehq/garage-backend/pkg/db"
	"github.com/pitlanehq/garage-backend/pkg/db/models"
	pkgerrors "github.com/pitlanehq/garage-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes fleet car and session management operations.
type Service interface {
	ListCars(ctx context.Context) ([]TeamCarView, error)
	GetCar(ctx context.Context, id int64) (*TeamCarView, error)
	CreateCar(ctx context.Context, input CreateTeamCarInput) (*TeamCarView, error)
	UpdateCar(ctx context.Context, id int64, input UpdateTeamCarInput) (*TeamCarView, error)
	DeleteCar(ctx context.Context, id int64) error
	CarDashboard(ctx context.Context, id int64) (*CarDashboardView, error)

	ListSessions(ctx context.Context, teamCarID int64) ([]CarSessionView, error)
	GetSession(ctx context.Context, id int64) (*CarSessionView, error)
	CreateSession(ctx context.Context, input CreateCarSessionInput) (*CarSessionView, error)
	UpdateSession(ctx context.Context, id int64, input UpdateCarSessionInput) (*CarSessionView, error)
	DeleteSession(ctx context.Context, id int64) error
}

type service struct {
	repo *Repository
}

// NewService constructs a fleet service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("fleet repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListCars(ctx context.Context) ([]TeamCarView, error) {
	rows, err := s.repo.ListCars(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cars")
	}
	views := make([]TeamCarView, 0, len(rows))
	for i := range rows {
		views = append(views, *teamCarView(&rows[i]))
	}
	return views, nil
}

func (s *service) GetCar(ctx context.Context, id int64) (*TeamCarView, error) {
	car, err := s.loadCar(ctx, id)
	if err != nil {
		return nil, err
	}
	return teamCarView(car), nil
}

func (s *service) CreateCar(ctx context.Context, input CreateTeamCarInput) (*TeamCarView, error) {
	number := strings.TrimSpace(input.CarNumber)
	if number == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "car number is required")
	}
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = "Active"
	}

	car := &models.TeamCar{
		CarNumber:  number,
		Nickname:   input.Nickname,
		Make:       input.Make,
		Model:      input.Model,
		Year:       input.Year,
		CarClass:   input.CarClass,
		Status:     status,
		OdometerKm: input.OdometerKm,
	}
	if err := s.repo.CreateCar(ctx, car); err != nil {
		if db.IsUniqueViolation(err, "team_cars_car_number_key") {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "car number %s already registered", number)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create car")
	}
	return teamCarView(car), nil
}

func (s *service) UpdateCar(ctx context.Context, id int64, input UpdateTeamCarInput) (*TeamCarView, error) {
	car, err := s.loadCar(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CarNumber != nil {
		number := strings.TrimSpace(*input.CarNumber)
		if number == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "car number cannot be empty")
		}
		car.CarNumber = number
	}
	if input.Nickname != nil {
		car.Nickname = *input.Nickname
	}
	if input.Make != nil {
		car.Make = *input.Make
	}
	if input.Model != nil {
		car.Model = *input.Model
	}
	if input.Year != nil {
		car.Year = *input.Year
	}
	if input.CarClass != nil {
		car.CarClass = *input.CarClass
	}
	if input.Status != nil {
		car.Status = *input.Status
	}
	if input.OdometerKm != nil {
		if *input.OdometerKm < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "odometer cannot be negative")
		}
		car.OdometerKm = *input.OdometerKm
	}

	if err := s.repo.SaveCar(ctx, car); err != nil {
		if db.IsUniqueViolation(err, "team_cars_car_number_key") {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "car number %s already registered", car.CarNumber)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update car")
	}
	return teamCarView(car), nil
}

func (s *service) DeleteCar(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "car id must be positive")
	}
	found, err := s.repo.DeleteCar(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete car")
	}
	if !found {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "car %d not found", id)
	}
	return nil
}

func (s *service) CarDashboard(ctx context.Context, id int64) (*CarDashboardView, error) {
	car, err := s.loadCar(ctx, id)
	if err != nil {
		return nil, err
	}

	latest, err := s.repo.LatestSessionForCar(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load latest session")
	}
	issues, err := s.repo.OpenIssuesForCar(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load open issues")
	}
	orders, err := s.repo.OpenWorkOrdersForCar(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load open work orders")
	}

	dashboard := &CarDashboardView{
		Car:            *teamCarView(car),
		OpenIssues:     make([]OpenIssueSummary, 0, len(issues)),
		OpenWorkOrders: make([]OpenWorkOrderSummary, 0, len(orders)),
	}
	if latest != nil {
		dashboard.LatestSession = carSessionView(latest)
	}
	for _, issue := range issues {
		dashboard.OpenIssues = append(dashboard.OpenIssues, OpenIssueSummary{
			ID:         issue.ID,
			Title:      issue.Title,
			Severity:   issue.Severity,
			Status:     issue.Status,
			ReportedAt: issue.ReportedAt,
		})
	}
	for _, order := range orders {
		dashboard.OpenWorkOrders = append(dashboard.OpenWorkOrders, OpenWorkOrderSummary{
			ID:       order.ID,
			Title:    order.Title,
			Priority: order.Priority,
			Status:   order.Status,
			DueDate:  order.DueDate,
		})
	}
	return dashboard, nil
}

func (s *service) ListSessions(ctx context.Context, teamCarID int64) ([]CarSessionView, error) {
	rows, err := s.repo.ListSessions(ctx, teamCarID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sessions")
	}
	views := make([]CarSessionView, 0, len(rows))
	for i := range rows {
		views = append(views, *carSessionView(&rows[i]))
	}
	return views, nil
}

func (s *service) GetSession(ctx context.Context, id int64) (*CarSessionView, error) {
	session, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return carSessionView(session), nil
}

func (s *service) CreateSession(ctx context.Context, input CreateCarSessionInput) (*CarSessionView, error) {
	if input.TeamCarID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team car id must be positive")
	}
	if input.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session date is required")
	}
	if input.Laps < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "laps cannot be negative")
	}
	if _, err := s.loadCar(ctx, input.TeamCarID); err != nil {
		return nil, asReference(err)
	}
	if err := s.checkDriver(ctx, input.DriverUserID); err != nil {
		return nil, err
	}

	sessionType := strings.TrimSpace(input.SessionType)
	if sessionType == "" {
		sessionType = "Practice"
	}

	session := &models.CarSession{
		TeamCarID:    input.TeamCarID,
		SessionType:  sessionType,
		Date:         input.Date,
		TrackName:    input.TrackName,
		DriverUserID: input.DriverUserID,
		Laps:         input.Laps,
		Notes:        input.Notes,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create session")
	}
	return s.GetSession(ctx, session.ID)
}

func (s *service) UpdateSession(ctx context.Context, id int64, input UpdateCarSessionInput) (*CarSessionView, error) {
	session, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.SessionType != nil {
		session.SessionType = *input.SessionType
	}
	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "session date cannot be empty")
		}
		session.Date = *input.Date
	}
	if input.TrackName != nil {
		session.TrackName = *input.TrackName
	}
	if input.DriverUserID != nil {
		if err := s.checkDriver(ctx, input.DriverUserID); err != nil {
			return nil, err
		}
		session.DriverUserID = input.DriverUserID
	}
	if input.Laps != nil {
		if *input.Laps < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "laps cannot be negative")
		}
		session.Laps = *input.Laps
	}
	if input.Notes != nil {
		session.Notes = *input.Notes
	}

	session.TeamCar = nil
	session.DriverUser = nil
	if err := s.repo.SaveSession(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update session")
	}
	return s.GetSession(ctx, id)
}

func (s *service) DeleteSession(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id must be positive")
	}
	found, err := s.repo.DeleteSession(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete session")
	}
	if !found {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "session %d not found", id)
	}
	return nil
}

func (s *service) loadCar(ctx context.Context, id int64) (*models.TeamCar, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "car id must be positive")
	}
	car, err := s.repo.FindCarByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "car %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load car")
	}
	return car, nil
}

func (s *service) loadSession(ctx context.Context, id int64) (*models.CarSession, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id must be positive")
	}
	session, err := s.repo.FindSessionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "session %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load session")
	}
	return session, nil
}

func (s *service) checkDriver(ctx context.Context, driverID *int64) error {
	if driverID == nil {
		return nil
	}
	if *driverID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "driver user id must be positive")
	}
	exists, err := s.repo.UserExists(ctx, *driverID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load driver")
	}
	if !exists {
		return pkgerrors.Newf(pkgerrors.CodeReferenceNotFound, "driver %d not found", *driverID)
	}
	return nil
}

// asReference downgrades a NOT_FOUND on a parent lookup to the 400-class
// reference failure a create sees.
func asReference(err error) error {
	typed := pkgerrors.As(err)
	if typed != nil && typed.Code() == pkgerrors.CodeNotFound {
		return pkgerrors.New(pkgerrors.CodeReferenceNotFound, typed.Message())
	}
	return err
}
