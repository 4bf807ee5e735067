package controllers

import (
	"net/http"

	"github.com/pitlanehq/garage-backend/api/responses"
	"github.com/pitlanehq/garage-backend/api/validators"
	"github.com/pitlanehq/garage-backend/internal/workorders"
	pkgerrors "github.com/pitlanehq/garage-backend/pkg/errors"
	"github.com/pitlanehq/garage-backend/pkg/logger"
)

type createTaskPayload struct {
	WorkOrderID      int64  `json:"workOrderId" validate:"required,gt=0"`
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description"`
	Status           string `json:"status"`
	SortOrder        int    `json:"sortOrder"`
	EstimatedMinutes *int   `json:"estimatedMinutes"`
}

type updateTaskPayload struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	Status           *string `json:"status"`
	SortOrder        *int    `json:"sortOrder"`
	EstimatedMinutes *int    `json:"estimatedMinutes"`
}

func ListWorkOrderTasks(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		workOrderID, err := validators.ParseQueryID(r, "workOrderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if workOrderID == 0 {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "workOrderId query parameter is required"))
			return
		}
		views, err := svc.ListTasks(ctx, workOrderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"tasks": views})
	}
}

func GetWorkOrderTask(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.GetTask(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CreateWorkOrderTask(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload createTaskPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.CreateTask(ctx, workorders.CreateTaskInput{
			WorkOrderID:      payload.WorkOrderID,
			Title:            payload.Title,
			Description:      payload.Description,
			Status:           payload.Status,
			SortOrder:        payload.SortOrder,
			EstimatedMinutes: payload.EstimatedMinutes,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func UpdateWorkOrderTask(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload updateTaskPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.UpdateTask(ctx, id, workorders.UpdateTaskInput{
			Title:            payload.Title,
			Description:      payload.Description,
			Status:           payload.Status,
			SortOrder:        payload.SortOrder,
			EstimatedMinutes: payload.EstimatedMinutes,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func DeleteWorkOrderTask(svc workorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.DeleteTask(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
