package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/bizdesk/internal/api/middleware"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/utils"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/validator"
)

// maxBodyBytes bounds request bodies. Drafts may carry a data-URI logo.
const maxBodyBytes = 2 << 20

// requireUser returns the authenticated user id or writes 401
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.NotAuthenticated())
		return 0, false
	}
	return userID, true
}

// decodeJSON reads the body into dst and validates it
func decodeJSON(w http.ResponseWriter, r *http.Request, v *validator.Validator, dst interface{}) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return false
	}
	if validationErrs := v.Validate(dst); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return false
	}
	return true
}

// idParam parses the {id} URL parameter
func idParam(w http.ResponseWriter, r *http.Request, resource string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		utils.WriteError(w, errors.BadRequest("Invalid "+resource+" ID"))
		return 0, false
	}
	return id, true
}

// writeServiceError renders err, wrapping anything that is not an AppError
func writeServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := errors.As(err); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal(errors.FallbackMessage, err))
}
