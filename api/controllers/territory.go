package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rahulmehta/fieldcrm-backend/api/responses"
	"github.com/rahulmehta/fieldcrm-backend/api/validators"
	"github.com/rahulmehta/fieldcrm-backend/internal/territory"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
)

func ListSalesmen(svc territory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		salesmen, err := svc.ListSalesmen(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, salesmen)
	}
}

func GetLocationByPincode(svc territory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		location, err := svc.GetLocationByPincode(ctx, chi.URLParam(r, "pincode"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, location)
	}
}

func AssignAreas(svc territory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req territory.AssignAreasRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		resp, err := svc.AssignAreas(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

func ListAssignmentsBySalesman(svc territory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		salesmanID, err := uuidParam(r, "salesmanId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		assignments, err := svc.ListAssignmentsBySalesman(ctx, salesmanID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, assignments)
	}
}

func UpdateAssignment(svc territory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuidParam(r, "assignmentId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var req territory.UpdateAssignmentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		assignment, err := svc.UpdateAssignment(ctx, id, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, assignment)
	}
}

func DeleteAssignment(svc territory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuidParam(r, "assignmentId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.DeleteAssignment(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Assignment deleted successfully", nil)
	}
}

func SearchBusinesses(svc territory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req territory.SearchBusinessesRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		resp, err := svc.SearchBusinesses(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

func SaveShops(svc territory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req territory.SaveShopsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		resp, err := svc.SaveShops(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

func shopFilterFromQuery(r *http.Request) (territory.ShopFilter, error) {
	filter := territory.ShopFilter{
		Stage:        r.URL.Query().Get("stage"),
		BusinessType: r.URL.Query().Get("businessType"),
	}
	assignedTo, err := uuidQuery(r, "assignedTo")
	if err != nil {
		return territory.ShopFilter{}, err
	}
	filter.AssignedTo = assignedTo
	return filter, nil
}

func ListShopsBySalesman(svc territory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		salesmanID, err := uuidParam(r, "salesmanId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		filter, err := shopFilterFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		filter.SalesmanID = &salesmanID

		shops, err := svc.ListShops(ctx, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, shops)
	}
}

func ListShopsByPincode(svc territory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		filter, err := shopFilterFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		filter.Pincode = chi.URLParam(r, "pincode")

		shops, err := svc.ListShops(ctx, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, shops)
	}
}

func UpdateShopStage(svc territory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		shopID, err := uuidParam(r, "shopId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var req territory.UpdateShopStageRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		shop, err := svc.UpdateShopStage(ctx, shopID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	}
}
