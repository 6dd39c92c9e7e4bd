package controllers

import (
	"net/http"

	"github.com/rahulmehta/fieldcrm-backend/api/responses"
	"github.com/rahulmehta/fieldcrm-backend/api/validators"
	"github.com/rahulmehta/fieldcrm-backend/internal/masters"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
)

func ListDepartments(svc masters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		departments, err := svc.ListDepartments(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, departments)
	}
}

func ListFunctionalRoles(svc masters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		departmentID, err := uuidQuery(r, "departmentId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		roles, err := svc.ListFunctionalRoles(ctx, departmentID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, roles)
	}
}

func GetFunctionalRole(svc masters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuidParam(r, "roleId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		role, err := svc.GetFunctionalRole(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, role)
	}
}

func CreateFunctionalRole(svc masters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req masters.CreateFunctionalRoleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		role, err := svc.CreateFunctionalRole(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, role)
	}
}

func UpdateFunctionalRole(svc masters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuidParam(r, "roleId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var req masters.UpdateFunctionalRoleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		role, err := svc.UpdateFunctionalRole(ctx, id, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, role)
	}
}

func DeleteFunctionalRole(svc masters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuidParam(r, "roleId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.DeleteFunctionalRole(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Role deleted successfully", nil)
	}
}
