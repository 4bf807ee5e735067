package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/pitlanehq/garage-backend/api/middleware"
	"github.com/pitlanehq/garage-backend/api/responses"
	"github.com/pitlanehq/garage-backend/api/validators"
	"github.com/pitlanehq/garage-backend/internal/workorders"
	"github.com/pitlanehq/garage-backend/pkg/logger"
)

type createWorkOrderPayload struct {
	TeamCarID        int64      `json:"teamCarId" validate:"required,gt=0"`
	AssignedToUserID *int64     `json:"assignedToUserId"`
	CarSessionID     *int64     `json:"carSessionId"`
	Title            string     `json:"title" validate:"required"`
	Description      string     `json:"description"`
	Priority         string     `json:"priority"`
	Status           string     `json:"status"`
	DueDate          *time.Time `json:"dueDate"`
}

type updateWorkOrderPayload struct {
	AssignedToUserID *int64     `json:"assignedToUserId"`
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Priority         *string    `json:"priority"`
	Status           *string    `json:"status"`
	DueDate          *time.Time `json:"dueDate"`
}

func ListWorkOrders(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		teamCarID, err := validators.ParseQueryID(r, "teamCarId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		filter := workorders.WorkOrderFilter{
			TeamCarID: teamCarID,
			Status:    strings.TrimSpace(r.URL.Query().Get("status")),
			Priority:  strings.TrimSpace(r.URL.Query().Get("priority")),
		}
		views, err := svc.List(ctx, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"workOrders": views})
	}
}

func GetWorkOrder(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CreateWorkOrder(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload createWorkOrderPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.Create(ctx, middleware.UserIDFromContext(ctx), workorders.CreateWorkOrderInput{
			TeamCarID:        payload.TeamCarID,
			AssignedToUserID: payload.AssignedToUserID,
			CarSessionID:     payload.CarSessionID,
			Title:            payload.Title,
			Description:      payload.Description,
			Priority:         payload.Priority,
			Status:           payload.Status,
			DueDate:          payload.DueDate,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func UpdateWorkOrder(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload updateWorkOrderPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.Update(ctx, id, workorders.UpdateWorkOrderInput{
			AssignedToUserID: payload.AssignedToUserID,
			Title:            payload.Title,
			Description:      payload.Description,
			Priority:         payload.Priority,
			Status:           payload.Status,
			DueDate:          payload.DueDate,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func DeleteWorkOrder(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func WorkOrderDetails(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.Details(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
