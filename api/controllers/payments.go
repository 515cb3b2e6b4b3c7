package controllers

import (
	"net/http"

	"github.com/borealis-store/borealis-backend/api/responses"
	"github.com/borealis-store/borealis-backend/internal/payments"
	"github.com/borealis-store/borealis-backend/pkg/logger"
)

// CreatePaymentIntent returns a client secret for the caller's cart total.
func CreatePaymentIntent(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "payment")
			return
		}

		userID, ok := callerID(w, r, logg)
		if !ok {
			return
		}

		intent, err := svc.CreateIntent(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, intent)
	}
}
