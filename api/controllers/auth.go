package controllers

import (
	"net/http"

	"github.com/angelmondragon/universe-backend/api/middleware"
	"github.com/angelmondragon/universe-backend/api/responses"
	"github.com/angelmondragon/universe-backend/api/validators"
	"github.com/angelmondragon/universe-backend/internal/auth"
	"github.com/angelmondragon/universe-backend/pkg/auth/session"
	pkgerrors "github.com/angelmondragon/universe-backend/pkg/errors"
	"github.com/angelmondragon/universe-backend/pkg/logger"
)

// AuthSignup creates a student account.
func AuthSignup(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.SignupRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Signup(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		client := session.Client{
			UserAgent: r.UserAgent(),
			IP:        middleware.ClientIP(r),
		}
		result, err := svc.Login(r.Context(), body, client)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
