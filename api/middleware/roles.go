package middleware

import (
	"net/http"
	"strings"

	"github.com/rahulmehta/fieldcrm-backend/api/responses"
	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
)

// RequireRole rejects requests whose actor holds none of the allowed roles.
// Role comparison is case-insensitive and considers both the primary role and
// the roles array.
func RequireRole(logg *logger.Logger, allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actorRoles := append([]string{RoleFromContext(r.Context())}, RolesFromContext(r.Context())...)
			for _, want := range allowed {
				for _, have := range actorRoles {
					if strings.EqualFold(have, want) {
						next.ServeHTTP(w, r)
						return
					}
				}
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
		})
	}
}
