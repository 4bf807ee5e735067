package controllers

import (
	"fmt"
	"net/http"

	"github.com/pitlanehq/garage-backend/api/middleware"
	"github.com/pitlanehq/garage-backend/api/responses"
	"github.com/pitlanehq/garage-backend/api/validators"
	"github.com/pitlanehq/garage-backend/internal/inventory"
	"github.com/pitlanehq/garage-backend/pkg/logger"
)

type consumePartPayload struct {
	WorkOrderID         int64  `json:"workOrderId" validate:"required,gt=0"`
	PartID              int64  `json:"partId" validate:"required,gt=0"`
	InventoryLocationID int64  `json:"inventoryLocationId" validate:"required,gt=0"`
	Quantity            int    `json:"quantity" validate:"required,gt=0"`
	Notes               string `json:"notes"`
}

func ListPartInstallations(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		workOrderID, err := validators.ParseQueryID(r, "workOrderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		views, err := svc.ListInstallations(ctx, workOrderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"partInstallations": views})
	}
}

func GetPartInstallation(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.GetInstallation(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CreatePartInstallation(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload consumePartPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.Consume(ctx, middleware.UserIDFromContext(ctx), inventory.ConsumePartInput{
			WorkOrderID:         payload.WorkOrderID,
			PartID:              payload.PartID,
			InventoryLocationID: payload.InventoryLocationID,
			Quantity:            payload.Quantity,
			Notes:               payload.Notes,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		w.Header().Set("Location", fmt.Sprintf("/api/v1/part-installations/%d", view.ID))
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}
