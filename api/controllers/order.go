package controllers

import (
	"net/http"
	"time"

	"github.com/angelmondragon/partsdesk-backend/internal/session"
	"github.com/angelmondragon/partsdesk-backend/internal/storefront"
	"github.com/angelmondragon/partsdesk-backend/pkg/logger"
)

// OrderCreate formats the cart into the order message and its deep link.
func OrderCreate(svc storefront.Service, logg *logger.Logger, now func() time.Time) http.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return sessionHandler(svc, logg, func(r *http.Request, st *session.State) (any, error) {
		return svc.Checkout(r.Context(), st, now())
	})
}
