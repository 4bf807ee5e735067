package fleet

import (
	"time"

	"github.com/pitlanehq/garage-backend/pkg/db/models"
)

// TeamCarView is the transport shape for a fleet car.
type TeamCarView struct {
	ID         int64     `json:"id"`
	CarNumber  string    `json:"carNumber"`
	Nickname   string    `json:"nickname"`
	Make       string    `json:"make"`
	Model      string    `json:"model"`
	Year       int       `json:"year"`
	CarClass   string    `json:"carClass"`
	Status     string    `json:"status"`
	OdometerKm int       `json:"odometerKm"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateTeamCarInput holds the validated payload to register a car.
type CreateTeamCarInput struct {
	CarNumber  string
	Nickname   string
	Make       string
	Model      string
	Year       int
	CarClass   string
	Status     string
	OdometerKm int
}

// UpdateTeamCarInput holds optional mutation values for a car.
type UpdateTeamCarInput struct {
	CarNumber  *string
	Nickname   *string
	Make       *string
	Model      *string
	Year       *int
	CarClass   *string
	Status     *string
	OdometerKm *int
}

// CarSessionView is the transport shape for a track outing.
type CarSessionView struct {
	ID           int64     `json:"id"`
	TeamCarID    int64     `json:"teamCarId"`
	CarNumber    string    `json:"carNumber,omitempty"`
	SessionType  string    `json:"sessionType"`
	Date         time.Time `json:"date"`
	TrackName    string    `json:"trackName"`
	DriverUserID *int64    `json:"driverUserId,omitempty"`
	DriverName   string    `json:"driverName,omitempty"`
	Laps         int       `json:"laps"`
	Notes        string    `json:"notes"`
}

// CreateCarSessionInput holds the validated payload to log an outing.
type CreateCarSessionInput struct {
	TeamCarID    int64
	SessionType  string
	Date         time.Time
	TrackName    string
	DriverUserID *int64
	Laps         int
	Notes        string
}

// UpdateCarSessionInput holds optional mutation values for an outing.
type UpdateCarSessionInput struct {
	SessionType  *string
	Date         *time.Time
	TrackName    *string
	DriverUserID *int64
	Laps         *int
	Notes        *string
}

// OpenIssueSummary is the dashboard's slice of an unresolved issue report.
type OpenIssueSummary struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Severity   string    `json:"severity"`
	Status     string    `json:"status"`
	ReportedAt time.Time `json:"reportedAt"`
}

// OpenWorkOrderSummary is the dashboard's slice of an unfinished work order.
type OpenWorkOrderSummary struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	Priority string     `json:"priority"`
	Status   string     `json:"status"`
	DueDate  *time.Time `json:"dueDate,omitempty"`
}

// CarDashboardView aggregates the car with its latest outing and open work.
type CarDashboardView struct {
	Car            TeamCarView            `json:"car"`
	LatestSession  *CarSessionView        `json:"latestSession,omitempty"`
	OpenIssues     []OpenIssueSummary     `json:"openIssues"`
	OpenWorkOrders []OpenWorkOrderSummary `json:"openWorkOrders"`
}

func teamCarView(car *models.TeamCar) *TeamCarView {
	return &TeamCarView{
		ID:         car.ID,
		CarNumber:  car.CarNumber,
		Nickname:   car.Nickname,
		Make:       car.Make,
		Model:      car.Model,
		Year:       car.Year,
		CarClass:   car.CarClass,
		Status:     car.Status,
		OdometerKm: car.OdometerKm,
		CreatedAt:  car.CreatedAt,
	}
}

func carSessionView(session *models.CarSession) *CarSessionView {
	view := &CarSessionView{
		ID:           session.ID,
		TeamCarID:    session.TeamCarID,
		SessionType:  session.SessionType,
		Date:         session.Date,
		TrackName:    session.TrackName,
		DriverUserID: session.DriverUserID,
		Laps:         session.Laps,
		Notes:        session.Notes,
	}
	if session.TeamCar != nil {
		view.CarNumber = session.TeamCar.CarNumber
	}
	if session.DriverUser != nil {
		view.DriverName = session.DriverUser.Name
	}
	return view
}
