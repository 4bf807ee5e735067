package controllers

import (
	"net/http"

	"github.com/pitlanehq/garage-backend/api/responses"
	"github.com/pitlanehq/garage-backend/api/validators"
	"github.com/pitlanehq/garage-backend/internal/catalog"
	"github.com/pitlanehq/garage-backend/pkg/logger"
)

type createSupplierPayload struct {
	Name         string `json:"name" validate:"required"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

type updateSupplierPayload struct {
	Name         *string `json:"name"`
	ContactEmail *string `json:"contactEmail"`
	Phone        *string `json:"phone"`
	AddressLine1 *string `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2"`
	City         *string `json:"city"`
	Country      *string `json:"country"`
	IsActive     *bool   `json:"isActive"`
}

func ListSuppliers(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		activeOnly, err := validators.ParseQueryBool(r, "activeOnly", false)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		views, err := svc.ListSuppliers(ctx, activeOnly)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"suppliers": views})
	}
}

func GetSupplier(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.GetSupplier(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CreateSupplier(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload createSupplierPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.CreateSupplier(ctx, catalog.CreateSupplierInput{
			Name:         payload.Name,
			ContactEmail: payload.ContactEmail,
			Phone:        payload.Phone,
			AddressLine1: payload.AddressLine1,
			AddressLine2: payload.AddressLine2,
			City:         payload.City,
			Country:      payload.Country,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func UpdateSupplier(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload updateSupplierPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.UpdateSupplier(ctx, id, catalog.UpdateSupplierInput{
			Name:         payload.Name,
			ContactEmail: payload.ContactEmail,
			Phone:        payload.Phone,
			AddressLine1: payload.AddressLine1,
			AddressLine2: payload.AddressLine2,
			City:         payload.City,
			Country:      payload.Country,
			IsActive:     payload.IsActive,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func DeleteSupplier(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.DeactivateSupplier(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}
