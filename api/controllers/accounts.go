package controllers

import (
	"net/http"
	"strings"

	"github.com/rahulmehta/fieldcrm-backend/api/responses"
	"github.com/rahulmehta/fieldcrm-backend/api/validators"
	"github.com/rahulmehta/fieldcrm-backend/internal/accounts"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
)

func CreateAccount(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req accounts.CreateAccountRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		account, err := svc.Create(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, account)
	}
}

func GetAccount(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuidParam(r, "accountId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		account, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}

func ListAccounts(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		areaID, err := uintQuery(r, "areaId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		assignedTo, err := uuidQuery(r, "assignedToId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.List(ctx, accounts.ListFilter{
			AreaID:        areaID,
			AssignedToID:  assignedTo,
			CustomerStage: r.URL.Query().Get("customerStage"),
			FunnelStage:   r.URL.Query().Get("funnelStage"),
			Search:        strings.TrimSpace(r.URL.Query().Get("search")),
			Pagination:    params,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func UpdateAccount(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuidParam(r, "accountId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var req accounts.UpdateAccountRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		account, err := svc.Update(ctx, id, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}

func DeleteAccount(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuidParam(r, "accountId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Account deleted successfully", nil)
	}
}

func AccountStats(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
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

func BulkAssignAccounts(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req accounts.BulkAssignRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		affected, err := svc.BulkAssign(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"assigned": affected})
	}
}
