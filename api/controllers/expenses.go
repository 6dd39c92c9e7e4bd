package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rahulmehta/fieldcrm-backend/api/middleware"
	"github.com/rahulmehta/fieldcrm-backend/api/responses"
	"github.com/rahulmehta/fieldcrm-backend/api/validators"
	"github.com/rahulmehta/fieldcrm-backend/internal/expenses"
	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
)

func currentUserID(r *http.Request) (uuid.UUID, error) {
	userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Authentication required")
	}
	return userID, nil
}

func expenseFilterFromQuery(r *http.Request) (expenses.ListFilter, error) {
	params, err := validators.ParsePagination(r)
	if err != nil {
		return expenses.ListFilter{}, err
	}
	filter := expenses.ListFilter{
		Status:      r.URL.Query().Get("status"),
		ExpenseType: r.URL.Query().Get("expenseType"),
		Pagination:  params,
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return expenses.ListFilter{}, pkgerrors.New(pkgerrors.CodeValidation, "Invalid from date, expected YYYY-MM-DD")
		}
		filter.From = &from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return expenses.ListFilter{}, pkgerrors.New(pkgerrors.CodeValidation, "Invalid to date, expected YYYY-MM-DD")
		}
		filter.To = &to
	}
	return filter, nil
}

func CreateExpense(svc expenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var req expenses.CreateExpenseRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		expense, err := svc.Create(ctx, userID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, expense)
	}
}

func GetExpense(svc expenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuidParam(r, "expenseId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		expense, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, expense)
	}
}

// MyExpenses lists only the authenticated employee's own claims.
func MyExpenses(svc expenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		filter, err := expenseFilterFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		filter.EmployeeID = &userID

		result, err := svc.List(ctx, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ListExpenses(svc expenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		filter, err := expenseFilterFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		employeeID, err := uuidQuery(r, "employeeId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		filter.EmployeeID = employeeID

		result, err := svc.List(ctx, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func UpdateExpense(svc expenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := uuidParam(r, "expenseId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var req expenses.UpdateExpenseRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		expense, err := svc.Update(ctx, id, userID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, expense)
	}
}

func DeleteExpense(svc expenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := uuidParam(r, "expenseId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.Delete(ctx, id, userID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Expense deleted successfully", nil)
	}
}

// UpdateExpenseStatus moves an expense through the approval workflow.
func UpdateExpenseStatus(svc expenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		approverID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := uuidParam(r, "expenseId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var req expenses.UpdateStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		expense, err := svc.UpdateStatus(ctx, id, approverID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, expense)
	}
}

func ExpenseStatistics(svc expenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		stats, err := svc.Statistics(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
