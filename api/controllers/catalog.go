package controllers

import (
	"math"
	"net/http"

	"github.com/angelmondragon/partsdesk-backend/api/responses"
	"github.com/angelmondragon/partsdesk-backend/api/validators"
	"github.com/angelmondragon/partsdesk-backend/internal/session"
	"github.com/angelmondragon/partsdesk-backend/internal/storefront"
	pkgerrors "github.com/angelmondragon/partsdesk-backend/pkg/errors"
	"github.com/angelmondragon/partsdesk-backend/pkg/logger"
)

const maxSearchLength = 100

type searchPayload struct {
	Query string `json:"query" validate:"max=400"`
}

type originPayload struct {
	Origin string `json:"origin" validate:"max=200"`
}

type pagePayload struct {
	Page *int `json:"page" validate:"required"`
}

// pageIndex turns a 1-based page into the service's 0-based index. Pages
// below one map to -1, which the service resets to the first page.
func pageIndex(page int) int {
	if page < 1 {
		return -1
	}
	return page - 1
}

// CatalogView returns the session's current page. ?page=N (1-based) moves
// to that page first; a page that does not exist shows the first one.
func CatalogView(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(svc, logg, func(r *http.Request, st *session.State) (any, error) {
		if !r.URL.Query().Has("page") {
			return svc.View(r.Context(), st)
		}
		page, err := validators.ParseQueryInt(r, "page", 1, math.MinInt, math.MaxInt)
		if err != nil {
			return nil, err
		}
		return svc.SetPage(r.Context(), st, pageIndex(page))
	})
}

// CatalogOrigins lists the origin filter choices.
func CatalogOrigins(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront service unavailable"))
			return
		}
		resp, err := svc.Origins(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// CatalogSearch sets the search text and returns the first page.
func CatalogSearch(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(svc, logg, func(r *http.Request, st *session.State) (any, error) {
		var payload searchPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		return svc.SetSearch(r.Context(), st, validators.SanitizeString(payload.Query, maxSearchLength))
	})
}

// CatalogOrigin sets the origin filter and returns the first page.
func CatalogOrigin(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(svc, logg, func(r *http.Request, st *session.State) (any, error) {
		var payload originPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		return svc.SetOriginFilter(r.Context(), st, validators.SanitizeString(payload.Origin, maxSearchLength))
	})
}

// CatalogPage moves to a 1-based page, falling back to the first page when
// it is out of range.
func CatalogPage(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(svc, logg, func(r *http.Request, st *session.State) (any, error) {
		var payload pagePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		return svc.SetPage(r.Context(), st, pageIndex(*payload.Page))
	})
}

// CatalogRefresh drops the cached catalog and reloads it.
func CatalogRefresh(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront service unavailable"))
			return
		}
		resp, err := svc.Refresh(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			logg.Info(logg.WithFields(ctx, map[string]any{
				"available": resp.Available,
				"products":  resp.Products,
			}), "catalog.refreshed")
		}
		responses.WriteSuccess(w, resp)
	}
}
