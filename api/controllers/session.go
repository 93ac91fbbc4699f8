package controllers

import (
	"net/http"

	"github.com/angelmondragon/partsdesk-backend/api/middleware"
	"github.com/angelmondragon/partsdesk-backend/api/responses"
	"github.com/angelmondragon/partsdesk-backend/internal/session"
	"github.com/angelmondragon/partsdesk-backend/internal/storefront"
	pkgerrors "github.com/angelmondragon/partsdesk-backend/pkg/errors"
	"github.com/angelmondragon/partsdesk-backend/pkg/logger"
)

type sessionFunc func(r *http.Request, st *session.State) (any, error)

// sessionHandler runs fn against the request's session and saves the state
// before writing fn's result.
func sessionHandler(svc storefront.Service, logg *logger.Logger, fn sessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront service unavailable"))
			return
		}

		st := middleware.SessionFromContext(ctx)
		if st == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		resp, err := fn(r, st)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := middleware.SaveSession(ctx); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
