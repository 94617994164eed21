package handler

import (
	"log/slog"
	"net/http"

	"github.com/photoapp/photoapp/internal/service"
	"github.com/photoapp/photoapp/internal/validate"
)

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	svc    *service.ProfileService
	logger *slog.Logger
}

func NewProfileHandler(svc *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, logger: logger}
}

// HandleGet returns the caller's profile.
//
// HTTP: GET /profile
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	user, err := h.svc.Get(r.Context(), identity.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

// HandleUpdate applies a partial update to the caller's profile.
//
// HTTP: PATCH /profile
// BODY: any subset of {"first_name","last_name","email","password"}
//
// Pointer fields distinguish "absent" from "empty": only provided fields
// are validated and changed. A provided password is re-hashed.
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v := validate.New()
	v.OptionalMinLength("first_name", req.FirstName, 3)
	v.OptionalMinLength("last_name", req.LastName, 3)
	v.OptionalEmail("email", req.Email)
	v.OptionalMinLength("password", req.Password, 6)
	if err := v.Err(); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.svc.Update(r.Context(), identity.ID, service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user)
}
