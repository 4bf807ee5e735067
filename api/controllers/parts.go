package controllers

import (
	"net/http"
	"strings"

	"github.com/pitlanehq/garage-backend/api/responses"
	"github.com/pitlanehq/garage-backend/api/validators"
	"github.com/pitlanehq/garage-backend/internal/catalog"
	"github.com/pitlanehq/garage-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type createPartPayload struct {
	Name         string           `json:"name" validate:"required"`
	SKU          string           `json:"sku" validate:"required"`
	Category     string           `json:"category"`
	UnitCost     *decimal.Decimal `json:"unitCost"`
	ReorderPoint *int             `json:"reorderPoint"`
	SupplierID   *int64           `json:"supplierId"`
}

type updatePartPayload struct {
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	UnitCost     *decimal.Decimal `json:"unitCost"`
	ReorderPoint *int             `json:"reorderPoint"`
	SupplierID   *int64           `json:"supplierId"`
	IsActive     *bool            `json:"isActive"`
}

func ListParts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		activeOnly, err := validators.ParseQueryBool(r, "activeOnly", false)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		supplierID, err := validators.ParseQueryID(r, "supplierId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		locationID, err := validators.ParseQueryID(r, "locationId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		needsReorder, err := validators.ParseQueryBool(r, "needsReorder", false)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		views, err := svc.ListParts(ctx, catalog.PartFilter{
			ActiveOnly:   activeOnly,
			Category:     strings.TrimSpace(r.URL.Query().Get("category")),
			SupplierID:   supplierID,
			Query:        strings.TrimSpace(r.URL.Query().Get("q")),
			LocationID:   locationID,
			NeedsReorder: needsReorder,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"parts": views})
	}
}

func GetPart(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.GetPart(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CreatePart(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload createPartPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		input := catalog.CreatePartInput{
			Name:         payload.Name,
			SKU:          payload.SKU,
			Category:     payload.Category,
			ReorderPoint: payload.ReorderPoint,
			SupplierID:   payload.SupplierID,
		}
		if payload.UnitCost != nil {
			input.UnitCost = *payload.UnitCost
		}
		view, err := svc.CreatePart(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func UpdatePart(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload updatePartPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.UpdatePart(ctx, id, catalog.UpdatePartInput{
			Name:         payload.Name,
			Category:     payload.Category,
			UnitCost:     payload.UnitCost,
			ReorderPoint: payload.ReorderPoint,
			SupplierID:   payload.SupplierID,
			IsActive:     payload.IsActive,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func DeletePart(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.DeactivatePart(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}
