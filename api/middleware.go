package api

import (
	"net/http"

	"SellerPulse/api/auth"
	"SellerPulse/api/constants"
	"SellerPulse/internal/validation"
)

// RequireTenant resolves the owning tenant from the user_id form value (the
// upload forms post it alongside the files) and rejects requests without an
// active session. The resolved session is handed to the wrapped handler.
func RequireTenant(next func(w http.ResponseWriter, r *http.Request, session *auth.UserSession)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validation.ExtractUserID(r)
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, constants.ErrUserIDRequired)
			return
		}
		session := auth.ResolveTenant(userID)
		if session == nil {
			RespondWithError(w, http.StatusUnauthorized, constants.ErrInvalidSession)
			return
		}
		next(w, r, session)
	}
}
