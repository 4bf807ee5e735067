package controllers

import (
	"net/http"
	"time"

	"github.com/pitlanehq/garage-backend/api/middleware"
	"github.com/pitlanehq/garage-backend/api/responses"
	"github.com/pitlanehq/garage-backend/api/validators"
	"github.com/pitlanehq/garage-backend/internal/workorders"
	"github.com/pitlanehq/garage-backend/pkg/enums"
	pkgerrors "github.com/pitlanehq/garage-backend/pkg/errors"
	"github.com/pitlanehq/garage-backend/pkg/logger"
)

type createLaborLogPayload struct {
	WorkOrderTaskID int64      `json:"workOrderTaskId" validate:"required,gt=0"`
	MechanicUserID  *int64     `json:"mechanicUserId"`
	Minutes         int        `json:"minutes" validate:"required,gt=0"`
	LogDate         *time.Time `json:"logDate" validate:"required"`
	Comment         string     `json:"comment"`
}

type updateLaborLogPayload struct {
	Minutes *int       `json:"minutes"`
	LogDate *time.Time `json:"logDate"`
	Comment *string    `json:"comment"`
}

func ListLaborLogs(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		taskID, err := validators.ParseQueryID(r, "workOrderTaskId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if taskID == 0 {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "workOrderTaskId query parameter is required"))
			return
		}
		views, err := svc.ListLaborLogs(ctx, taskID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"laborLogs": views})
	}
}

func GetLaborLog(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.GetLaborLog(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CreateLaborLog(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload createLaborLogPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		input := workorders.CreateLaborLogInput{
			WorkOrderTaskID: payload.WorkOrderTaskID,
			MechanicUserID:  payload.MechanicUserID,
			Minutes:         payload.Minutes,
			Comment:         payload.Comment,
		}
		if payload.LogDate != nil {
			input.LogDate = *payload.LogDate
		}
		view, err := svc.CreateLaborLog(ctx, middleware.UserIDFromContext(ctx), input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func UpdateLaborLog(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload updateLaborLogPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.UpdateLaborLog(ctx, middleware.UserIDFromContext(ctx), middleware.HasRole(ctx, enums.RoleManager), id, workorders.UpdateLaborLogInput{
			Minutes: payload.Minutes,
			LogDate: payload.LogDate,
			Comment: payload.Comment,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func DeleteLaborLog(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.DeleteLaborLog(ctx, middleware.UserIDFromContext(ctx), middleware.HasRole(ctx, enums.RoleManager), id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
