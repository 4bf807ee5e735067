package controllers

import (
	"net/http"

	"github.com/pitlanehq/garage-backend/api/middleware"
	"github.com/pitlanehq/garage-backend/api/responses"
	"github.com/pitlanehq/garage-backend/api/validators"
	"github.com/pitlanehq/garage-backend/internal/inventory"
	"github.com/pitlanehq/garage-backend/pkg/logger"
)

type adjustStockPayload struct {
	PartID              int64  `json:"partId" validate:"required,gt=0"`
	InventoryLocationID int64  `json:"inventoryLocationId" validate:"required,gt=0"`
	QuantityChange      int    `json:"quantityChange" validate:"required,ne=0"`
	Reason              string `json:"reason"`
	WorkOrderID         *int64 `json:"workOrderId"`
	Notes               string `json:"notes"`
}

func ListInventoryStock(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		partID, err := validators.ParseQueryID(r, "partId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		locationID, err := validators.ParseQueryID(r, "locationId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		views, err := svc.ListStock(ctx, inventory.StockFilter{
			PartID:              partID,
			InventoryLocationID: locationID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"inventoryStock": views})
	}
}

func AdjustInventoryStock(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload adjustStockPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.Adjust(ctx, middleware.UserIDFromContext(ctx), inventory.AdjustStockInput{
			PartID:              payload.PartID,
			InventoryLocationID: payload.InventoryLocationID,
			QuantityChange:      payload.QuantityChange,
			Reason:              payload.Reason,
			WorkOrderID:         payload.WorkOrderID,
			Notes:               payload.Notes,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
