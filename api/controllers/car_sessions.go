package controllers

import (
	"net/http"
	"time"

	"github.com/pitlanehq/garage-backend/api/responses"
	"github.com/pitlanehq/garage-backend/api/validators"
	"github.com/pitlanehq/garage-backend/internal/fleet"
	"github.com/pitlanehq/garage-backend/pkg/logger"
)

type createCarSessionPayload struct {
	TeamCarID    int64      `json:"teamCarId" validate:"required,gt=0"`
	SessionType  string     `json:"sessionType"`
	Date         *time.Time `json:"date" validate:"required"`
	TrackName    string     `json:"trackName"`
	DriverUserID *int64     `json:"driverUserId"`
	Laps         int        `json:"laps" validate:"omitempty,min=0"`
	Notes        string     `json:"notes"`
}

type updateCarSessionPayload struct {
	SessionType  *string    `json:"sessionType"`
	Date         *time.Time `json:"date"`
	TrackName    *string    `json:"trackName"`
	DriverUserID *int64     `json:"driverUserId"`
	Laps         *int       `json:"laps"`
	Notes        *string    `json:"notes"`
}

func ListCarSessions(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		teamCarID, err := validators.ParseQueryID(r, "teamCarId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		views, err := svc.ListSessions(ctx, teamCarID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"carSessions": views})
	}
}

func GetCarSession(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.GetSession(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CreateCarSession(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload createCarSessionPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		input := fleet.CreateCarSessionInput{
			TeamCarID:    payload.TeamCarID,
			SessionType:  payload.SessionType,
			TrackName:    payload.TrackName,
			DriverUserID: payload.DriverUserID,
			Laps:         payload.Laps,
			Notes:        payload.Notes,
		}
		if payload.Date != nil {
			input.Date = *payload.Date
		}
		view, err := svc.CreateSession(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func UpdateCarSession(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload updateCarSessionPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.UpdateSession(ctx, id, fleet.UpdateCarSessionInput{
			SessionType:  payload.SessionType,
			Date:         payload.Date,
			TrackName:    payload.TrackName,
			DriverUserID: payload.DriverUserID,
			Laps:         payload.Laps,
			Notes:        payload.Notes,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func DeleteCarSession(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.DeleteSession(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
