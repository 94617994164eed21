package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/photoapp/photoapp/internal/auth"
	"github.com/photoapp/photoapp/internal/validate"
)

// decodeJSON reads the request body into dst. A false return means the 400
// has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// idParam parses a positive integer URL parameter. A false return means the
// 400 (per-field shape, matching body validation) has already been written.
func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeValidationErrors(w, validate.Errors{
			{Field: name, Message: name + " has to be an integer"},
		})
		return 0, false
	}
	return id, true
}

// requireIdentity fetches the identity placed in the context by the auth
// guard. The guard rejects unauthenticated requests before handlers run, so
// a missing identity means the route was wired without RequireAuth - we
// still answer 401 rather than panic.
func requireIdentity(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeFail(w, http.StatusUnauthorized, authRequiredMessage)
		return nil, false
	}
	return identity, true
}
