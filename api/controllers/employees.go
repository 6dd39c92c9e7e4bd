package controllers

import (
	"net/http"
	"strings"

	"github.com/rahulmehta/fieldcrm-backend/api/responses"
	"github.com/rahulmehta/fieldcrm-backend/api/validators"
	"github.com/rahulmehta/fieldcrm-backend/internal/employees"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
)

func CreateEmployee(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req employees.CreateEmployeeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		employee, err := svc.Create(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, employee)
	}
}

func GetEmployee(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuidParam(r, "employeeId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		employee, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, employee)
	}
}

func ListEmployees(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		departmentID, err := uuidQuery(r, "departmentId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		filter := employees.ListFilter{
			DepartmentID: departmentID,
			Search:       strings.TrimSpace(r.URL.Query().Get("search")),
			Pagination:   params,
		}
		if raw := r.URL.Query().Get("isActive"); raw != "" {
			active := raw == "true"
			filter.IsActive = &active
		}

		result, err := svc.List(ctx, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func UpdateEmployee(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuidParam(r, "employeeId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var req employees.UpdateEmployeeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		employee, err := svc.Update(ctx, id, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, employee)
	}
}

func DeleteEmployee(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuidParam(r, "employeeId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Employee deleted successfully", nil)
	}
}
