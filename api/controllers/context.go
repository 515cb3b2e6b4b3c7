package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/borealis-store/borealis-backend/api/middleware"
	"github.com/borealis-store/borealis-backend/api/responses"
	pkgerrors "github.com/borealis-store/borealis-backend/pkg/errors"
	"github.com/borealis-store/borealis-backend/pkg/logger"
)

// callerID resolves the authenticated user id or writes a 401.
func callerID(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (uuid.UUID, bool) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user context"))
		return uuid.Nil, false
	}
	return id, true
}

func unavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger, name string) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, name+" service unavailable"))
}
