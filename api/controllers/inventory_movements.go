package controllers

import (
	"net/http"
	"strings"

	"github.com/pitlanehq/garage-backend/api/responses"
	"github.com/pitlanehq/garage-backend/api/validators"
	"github.com/pitlanehq/garage-backend/internal/inventory"
	"github.com/pitlanehq/garage-backend/pkg/logger"
	"github.com/pitlanehq/garage-backend/pkg/pagination"
)

func ListInventoryMovements(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
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
		workOrderID, err := validators.ParseQueryID(r, "workOrderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.ListMovements(ctx, inventory.MovementFilter{
			PartID:              partID,
			InventoryLocationID: locationID,
			WorkOrderID:         workOrderID,
			Reason:              strings.TrimSpace(r.URL.Query().Get("reason")),
			Limit:               limit,
			Cursor:              strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
