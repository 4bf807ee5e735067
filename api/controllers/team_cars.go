package controllers

import (
	"net/http"

	"github.com/pitlanehq/garage-backend/api/responses"
	"github.com/pitlanehq/garage-backend/api/validators"
	"github.com/pitlanehq/garage-backend/internal/fleet"
	"github.com/pitlanehq/garage-backend/pkg/logger"
)

type createTeamCarPayload struct {
	CarNumber  string `json:"carNumber" validate:"required"`
	Nickname   string `json:"nickname"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	Year       int    `json:"year" validate:"omitempty,min=1900"`
	CarClass   string `json:"carClass"`
	Status     string `json:"status"`
	OdometerKm int    `json:"odometerKm" validate:"omitempty,min=0"`
}

type updateTeamCarPayload struct {
	CarNumber  *string `json:"carNumber"`
	Nickname   *string `json:"nickname"`
	Make       *string `json:"make"`
	Model      *string `json:"model"`
	Year       *int    `json:"year"`
	CarClass   *string `json:"carClass"`
	Status     *string `json:"status"`
	OdometerKm *int    `json:"odometerKm"`
}

func ListTeamCars(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		views, err := svc.ListCars(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"teamCars": views})
	}
}

func GetTeamCar(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.GetCar(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CreateTeamCar(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload createTeamCarPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.CreateCar(ctx, fleet.CreateTeamCarInput{
			CarNumber:  payload.CarNumber,
			Nickname:   payload.Nickname,
			Make:       payload.Make,
			Model:      payload.Model,
			Year:       payload.Year,
			CarClass:   payload.CarClass,
			Status:     payload.Status,
			OdometerKm: payload.OdometerKm,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func UpdateTeamCar(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload updateTeamCarPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.UpdateCar(ctx, id, fleet.UpdateTeamCarInput{
			CarNumber:  payload.CarNumber,
			Nickname:   payload.Nickname,
			Make:       payload.Make,
			Model:      payload.Model,
			Year:       payload.Year,
			CarClass:   payload.CarClass,
			Status:     payload.Status,
			OdometerKm: payload.OdometerKm,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func DeleteTeamCar(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.DeleteCar(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func TeamCarDashboard(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.CarDashboard(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
