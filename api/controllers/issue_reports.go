package controllers

import (
	"net/http"
	"strings"

	"github.com/pitlanehq/garage-backend/api/middleware"
	"github.com/pitlanehq/garage-backend/api/responses"
	"github.com/pitlanehq/garage-backend/api/validators"
	"github.com/pitlanehq/garage-backend/internal/issues"
	"github.com/pitlanehq/garage-backend/pkg/logger"
)

type createIssuePayload struct {
	TeamCarID         int64  `json:"teamCarId" validate:"required,gt=0"`
	CarSessionID      *int64 `json:"carSessionId"`
	LinkedWorkOrderID *int64 `json:"linkedWorkOrderId"`
	Title             string `json:"title" validate:"required"`
	Description       string `json:"description"`
	Severity          string `json:"severity"`
}

type updateIssuePayload struct {
	Title             *string `json:"title"`
	Description       *string `json:"description"`
	Severity          *string `json:"severity"`
	Status            *string `json:"status"`
	LinkedWorkOrderID *int64  `json:"linkedWorkOrderId"`
}

func ListIssueReports(svc issues.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		teamCarID, err := validators.ParseQueryID(r, "teamCarId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		filter := issues.IssueFilter{
			TeamCarID: teamCarID,
			Status:    strings.TrimSpace(r.URL.Query().Get("status")),
			Severity:  strings.TrimSpace(r.URL.Query().Get("severity")),
		}
		views, err := svc.List(ctx, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"issueReports": views})
	}
}

func GetIssueReport(svc issues.Service, logg *logger.Logger) http.HandlerFunc {
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

func CreateIssueReport(svc issues.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload createIssuePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.Create(ctx, middleware.UserIDFromContext(ctx), issues.CreateIssueInput{
			TeamCarID:         payload.TeamCarID,
			CarSessionID:      payload.CarSessionID,
			LinkedWorkOrderID: payload.LinkedWorkOrderID,
			Title:             payload.Title,
			Description:       payload.Description,
			Severity:          payload.Severity,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func UpdateIssueReport(svc issues.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload updateIssuePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.Update(ctx, id, issues.UpdateIssueInput{
			Title:             payload.Title,
			Description:       payload.Description,
			Severity:          payload.Severity,
			Status:            payload.Status,
			LinkedWorkOrderID: payload.LinkedWorkOrderID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func DeleteIssueReport(svc issues.Service, logg *logger.Logger) http.HandlerFunc {
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
