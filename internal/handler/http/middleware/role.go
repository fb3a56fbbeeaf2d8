package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jfraser77/hrops-backend/internal/domain/user"
	"github.com/jfraser77/hrops-backend/internal/handler/http/response"
)

func roleFromClaims(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}

	return user.Role(roleStr), true
}

// RequireStaff requires any recognized staff role
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok {
			response.HandleError(w, user.ErrStaffAccessRequired)
			return
		}

		if role != user.RoleAdmin && role != user.RoleIT && role != user.RoleHR {
			response.HandleError(w, user.ErrStaffAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireIT requires IT or admin role
func RequireIT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok {
			response.HandleError(w, user.ErrITAccessRequired)
			return
		}

		if role != user.RoleAdmin && role != user.RoleIT {
			response.HandleError(w, user.ErrITAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin requires admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		if role != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
