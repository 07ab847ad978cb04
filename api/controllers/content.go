package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/universe-backend/api/responses"
	"github.com/angelmondragon/universe-backend/api/validators"
	"github.com/angelmondragon/universe-backend/internal/content"
	pkgerrors "github.com/angelmondragon/universe-backend/pkg/errors"
	"github.com/angelmondragon/universe-backend/pkg/logger"
	"github.com/angelmondragon/universe-backend/pkg/types"
)

const (
	queryParamSearch   = "q"
	queryParamLocation = "location"
	queryParamSubject  = "subject"

	// IDParam is the chi URL parameter holding a record id.
	IDParam = "id"
	// EndpointParam names the path segment used by the catch-all routes.
	EndpointParam = "endpoint"
)

// resolveEndpoint prefers the endpoint bound at registration time and falls
// back to the path segment, so unknown names reach the service and get its
// NotFound error.
func resolveEndpoint(r *http.Request, endpoint string) string {
	if endpoint != "" {
		return endpoint
	}
	return chi.URLParam(r, EndpointParam)
}

// ContentList returns the filtered records of one endpoint.
func ContentList(svc content.Service, endpoint string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}
		endpoint := resolveEndpoint(r, endpoint)
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithEndpoint(ctx, endpoint)
		}

		params := content.ListParams{
			Query:    validators.OptionalQuery(r, queryParamSearch),
			Location: validators.OptionalQuery(r, queryParamLocation),
			Subject:  validators.OptionalQuery(r, queryParamSubject),
		}
		records, err := svc.List(ctx, endpoint, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, records)
	}
}

// ContentCreate stores the posted record and echoes it back with its id.
func ContentCreate(svc content.Service, endpoint string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}
		endpoint := resolveEndpoint(r, endpoint)
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithEndpoint(ctx, endpoint)
		}

		decode := func(dest any) error {
			return validators.DecodeJSONBodyIgnoreUnknown(r, dest)
		}
		record, err := svc.Create(ctx, endpoint, decode)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// ContentDelete removes one record by id.
func ContentDelete(svc content.Service, endpoint string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}
		endpoint := resolveEndpoint(r, endpoint)
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithEndpoint(ctx, endpoint)
		}

		if err := svc.Delete(ctx, endpoint, chi.URLParam(r, IDParam)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.SuccessResponse{Success: true})
	}
}
