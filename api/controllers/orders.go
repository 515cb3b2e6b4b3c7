package controllers

import (
	"net/http"

	"github.com/borealis-store/borealis-backend/api/responses"
	"github.com/borealis-store/borealis-backend/api/validators"
	"github.com/borealis-store/borealis-backend/internal/checkout"
	"github.com/borealis-store/borealis-backend/internal/orders"
	"github.com/borealis-store/borealis-backend/pkg/logger"
)

// OrdersList returns the caller's order history, newest first.
func OrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "order")
			return
		}

		userID, ok := callerID(w, r, logg)
		if !ok {
			return
		}

		list, err := svc.ListForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// OrderPlace checks out the caller's cart.
func OrderPlace(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "checkout")
			return
		}

		userID, ok := callerID(w, r, logg)
		if !ok {
			return
		}

		var body checkout.PlaceOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithUserID(ctx, userID.String())
		}

		result, err := svc.PlaceOrder(ctx, userID, body)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithOrderID(ctx, result.OrderID.String()), "checkout.order_placed")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
