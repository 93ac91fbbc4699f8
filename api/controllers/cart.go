package controllers

import (
	"net/http"

	"github.com/angelmondragon/partsdesk-backend/api/validators"
	"github.com/angelmondragon/partsdesk-backend/internal/session"
	"github.com/angelmondragon/partsdesk-backend/internal/storefront"
	"github.com/angelmondragon/partsdesk-backend/pkg/logger"
)

const productIDParam = "productId"

type adjustPayload struct {
	Delta *int `json:"delta" validate:"required,ne=0,min=-1000,max=1000"`
}

func CartGet(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(svc, logg, func(r *http.Request, st *session.State) (any, error) {
		return svc.Cart(r.Context(), st)
	})
}

func CartIncrement(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(svc, logg, func(r *http.Request, st *session.State) (any, error) {
		id, err := validators.ParsePathInt(r, productIDParam)
		if err != nil {
			return nil, err
		}
		return svc.Increment(r.Context(), st, id)
	})
}

func CartDecrement(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(svc, logg, func(r *http.Request, st *session.State) (any, error) {
		id, err := validators.ParsePathInt(r, productIDParam)
		if err != nil {
			return nil, err
		}
		return svc.Decrement(r.Context(), st, id)
	})
}

// CartAdjust applies an arbitrary delta to one product.
func CartAdjust(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(svc, logg, func(r *http.Request, st *session.State) (any, error) {
		id, err := validators.ParsePathInt(r, productIDParam)
		if err != nil {
			return nil, err
		}
		var payload adjustPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		return svc.Adjust(r.Context(), st, id, *payload.Delta)
	})
}

// CartReset starts a new order.
func CartReset(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(svc, logg, func(r *http.Request, st *session.State) (any, error) {
		return svc.ResetCart(r.Context(), st)
	})
}
